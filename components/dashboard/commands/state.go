package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// SetTimeRangeInput selects the time range of a session.
type SetTimeRangeInput struct {
	SessionID string `json:"session_id"`
	TimeRange string `json:"time_range"`
}

// SetTimeRangeCommand wraps Controls.SetTimeRange.
type SetTimeRangeCommand struct {
	sessions  dashboard.SessionSource
	telemetry Telemetry
}

// NewSetTimeRangeCommand creates the command.
func NewSetTimeRangeCommand(sessions dashboard.SessionSource, telemetry Telemetry) *SetTimeRangeCommand {
	return &SetTimeRangeCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetTimeRangeInput] = (*SetTimeRangeCommand)(nil)

// Execute relabels the session's time-range dependent cards.
func (c *SetTimeRangeCommand) Execute(ctx context.Context, msg SetTimeRangeInput) error {
	controls, err := resolve(ctx, c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	if err := controls.SetTimeRange(ctx, msg.TimeRange); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventSetTimeRange, map[string]any{
		"session":    msg.SessionID,
		"time_range": msg.TimeRange,
	})
	return nil
}

// SetActiveTabInput switches the visible tab of a session.
type SetActiveTabInput struct {
	SessionID string `json:"session_id"`
	Tab       string `json:"tab"`
}

// SetActiveTabCommand wraps Controls.SetActiveTab.
type SetActiveTabCommand struct {
	sessions  dashboard.SessionSource
	telemetry Telemetry
}

// NewSetActiveTabCommand creates the command.
func NewSetActiveTabCommand(sessions dashboard.SessionSource, telemetry Telemetry) *SetActiveTabCommand {
	return &SetActiveTabCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetActiveTabInput] = (*SetActiveTabCommand)(nil)

// Execute remounts the cards of the requested tab.
func (c *SetActiveTabCommand) Execute(ctx context.Context, msg SetActiveTabInput) error {
	controls, err := resolve(ctx, c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	if err := controls.SetActiveTab(ctx, msg.Tab); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventSetActiveTab, map[string]any{
		"session": msg.SessionID,
		"tab":     msg.Tab,
	})
	return nil
}

// TriggerRefreshInput starts the refresh spinner of a session.
type TriggerRefreshInput struct {
	SessionID string `json:"session_id"`
}

// TriggerRefreshCommand wraps Controls.TriggerRefresh.
type TriggerRefreshCommand struct {
	sessions  dashboard.SessionSource
	telemetry Telemetry
}

// NewTriggerRefreshCommand creates the command.
func NewTriggerRefreshCommand(sessions dashboard.SessionSource, telemetry Telemetry) *TriggerRefreshCommand {
	return &TriggerRefreshCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[TriggerRefreshInput] = (*TriggerRefreshCommand)(nil)

// Execute fails with dashboard.ErrRefreshInProgress while a refresh runs.
func (c *TriggerRefreshCommand) Execute(ctx context.Context, msg TriggerRefreshInput) error {
	controls, err := resolve(ctx, c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	if err := controls.TriggerRefresh(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventTriggerRefresh, map[string]any{"session": msg.SessionID})
	return nil
}
