package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// SearchInput is the text typed into the header search box.
type SearchInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// SearchQuery stores the search box text and returns the matching card and
// insight titles. Storing the text is the only side effect; no data changes.
type SearchQuery struct {
	sessions dashboard.SessionSource
}

// NewSearchQuery builds the query.
func NewSearchQuery(sessions dashboard.SessionSource) *SearchQuery {
	return &SearchQuery{sessions: sessions}
}

var _ gocommand.Querier[SearchInput, dashboard.SearchResult] = (*SearchQuery)(nil)

func (q *SearchQuery) Query(ctx context.Context, input SearchInput) (dashboard.SearchResult, error) {
	controls, err := resolve(ctx, q.sessions, input.SessionID)
	if err != nil {
		return dashboard.SearchResult{}, err
	}
	return controls.SetSearch(ctx, input.Query)
}
