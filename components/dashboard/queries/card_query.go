package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// CardInput identifies a mounted card of a session.
type CardInput struct {
	SessionID string           `json:"session_id"`
	CardID    dashboard.CardID `json:"card_id"`
}

// CardQuery renders a single card, e.g. after a timer tick pushed over the
// broadcast hook.
type CardQuery struct {
	sessions dashboard.SessionSource
}

// NewCardQuery builds the query.
func NewCardQuery(sessions dashboard.SessionSource) *CardQuery {
	return &CardQuery{sessions: sessions}
}

var _ gocommand.Querier[CardInput, dashboard.CardFrame] = (*CardQuery)(nil)

func (q *CardQuery) Query(ctx context.Context, input CardInput) (dashboard.CardFrame, error) {
	controls, err := resolve(ctx, q.sessions, input.SessionID)
	if err != nil {
		return dashboard.CardFrame{}, err
	}
	return controls.RenderCard(ctx, input.CardID)
}

// TooltipInput names the hovered data point of a chart card.
type TooltipInput struct {
	SessionID string           `json:"session_id"`
	CardID    dashboard.CardID `json:"card_id"`
	Label     string           `json:"label"`
}

// TooltipQuery explains one data point.
type TooltipQuery struct {
	sessions dashboard.SessionSource
}

// NewTooltipQuery builds the query.
func NewTooltipQuery(sessions dashboard.SessionSource) *TooltipQuery {
	return &TooltipQuery{sessions: sessions}
}

var _ gocommand.Querier[TooltipInput, []dashboard.TooltipLine] = (*TooltipQuery)(nil)

func (q *TooltipQuery) Query(ctx context.Context, input TooltipInput) ([]dashboard.TooltipLine, error) {
	controls, err := resolve(ctx, q.sessions, input.SessionID)
	if err != nil {
		return nil, err
	}
	return controls.Tooltip(ctx, input.CardID, input.Label)
}
