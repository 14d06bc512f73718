package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// ToggleDarkModeInput flips the theme of a session.
type ToggleDarkModeInput struct {
	SessionID string `json:"session_id"`
}

// ToggleDarkModeCommand wraps Controls.ToggleDarkMode.
type ToggleDarkModeCommand struct {
	sessions  dashboard.SessionSource
	telemetry Telemetry
}

// NewToggleDarkModeCommand creates the command.
func NewToggleDarkModeCommand(sessions dashboard.SessionSource, telemetry Telemetry) *ToggleDarkModeCommand {
	return &ToggleDarkModeCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleDarkModeInput] = (*ToggleDarkModeCommand)(nil)

func (c *ToggleDarkModeCommand) Execute(ctx context.Context, msg ToggleDarkModeInput) error {
	controls, err := resolve(ctx, c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	dark, err := controls.ToggleDarkMode(ctx)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventToggleDarkMode, map[string]any{
		"session":   msg.SessionID,
		"dark_mode": dark,
	})
	return nil
}

// SelectNavInput highlights a sidebar entry.
type SelectNavInput struct {
	SessionID string `json:"session_id"`
	Label     string `json:"label"`
}

// SelectNavCommand wraps Controls.SelectNav.
type SelectNavCommand struct {
	sessions  dashboard.SessionSource
	telemetry Telemetry
}

// NewSelectNavCommand creates the command.
func NewSelectNavCommand(sessions dashboard.SessionSource, telemetry Telemetry) *SelectNavCommand {
	return &SelectNavCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectNavInput] = (*SelectNavCommand)(nil)

func (c *SelectNavCommand) Execute(ctx context.Context, msg SelectNavInput) error {
	if msg.Label == "" {
		return errors.New("select nav command requires label")
	}
	controls, err := resolve(ctx, c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	if err := controls.SelectNav(ctx, msg.Label); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventSelectNav, map[string]any{
		"session": msg.SessionID,
		"label":   msg.Label,
	})
	return nil
}

// SetSearchInput stores the header search box text.
type SetSearchInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// SetSearchCommand wraps Controls.SetSearch. Matches are discarded; read
// them back with queries.SearchQuery.
type SetSearchCommand struct {
	sessions  dashboard.SessionSource
	telemetry Telemetry
}

// NewSetSearchCommand creates the command.
func NewSetSearchCommand(sessions dashboard.SessionSource, telemetry Telemetry) *SetSearchCommand {
	return &SetSearchCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetSearchInput] = (*SetSearchCommand)(nil)

func (c *SetSearchCommand) Execute(ctx context.Context, msg SetSearchInput) error {
	controls, err := resolve(ctx, c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	result, err := controls.SetSearch(ctx, msg.Query)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventSetSearch, map[string]any{
		"session":  msg.SessionID,
		"query":    result.Query,
		"cards":    len(result.Cards),
		"insights": len(result.Insights),
	})
	return nil
}
