package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// PageInput identifies the session to render.
type PageInput struct {
	SessionID string `json:"session_id"`
}

// PageQuery renders a full page for an existing session.
type PageQuery struct {
	sessions dashboard.SessionSource
}

// NewPageQuery builds the query.
func NewPageQuery(sessions dashboard.SessionSource) *PageQuery {
	return &PageQuery{sessions: sessions}
}

var _ gocommand.Querier[PageInput, dashboard.Page] = (*PageQuery)(nil)

// Query renders every mounted card of the session.
func (q *PageQuery) Query(ctx context.Context, input PageInput) (dashboard.Page, error) {
	controls, err := resolve(ctx, q.sessions, input.SessionID)
	if err != nil {
		return dashboard.Page{}, err
	}
	return controls.Render(ctx)
}

// ViewerPageQuery opens or resumes the viewer's session and renders it.
type ViewerPageQuery struct {
	source dashboard.PageSource
}

// NewViewerPageQuery builds the query.
func NewViewerPageQuery(source dashboard.PageSource) *ViewerPageQuery {
	return &ViewerPageQuery{source: source}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.Page] = (*ViewerPageQuery)(nil)

// Query resolves the page for the viewer.
func (q *ViewerPageQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.Page, error) {
	if q.source == nil {
		return dashboard.Page{}, errors.New("queries: page source is required")
	}
	controls, err := q.source.Attach(ctx, viewer)
	if err != nil {
		return dashboard.Page{}, err
	}
	return controls.Render(ctx)
}
