package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// CardActionInput routes a raw action payload to a mounted card. The payload
// is validated against the card's schema by the shell.
type CardActionInput struct {
	SessionID string           `json:"session_id"`
	CardID    dashboard.CardID `json:"card_id"`
	Payload   map[string]any   `json:"payload"`
}

// CardActionCommand wraps Controls.Dispatch.
type CardActionCommand struct {
	sessions  dashboard.SessionSource
	telemetry Telemetry
}

// NewCardActionCommand creates the command.
func NewCardActionCommand(sessions dashboard.SessionSource, telemetry Telemetry) *CardActionCommand {
	return &CardActionCommand{sessions: sessions, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CardActionInput] = (*CardActionCommand)(nil)

// Execute dispatches the payload to the card.
func (c *CardActionCommand) Execute(ctx context.Context, msg CardActionInput) error {
	if msg.CardID == "" {
		return errors.New("card action command requires card id")
	}
	controls, err := resolve(ctx, c.sessions, msg.SessionID)
	if err != nil {
		return err
	}
	if err := controls.Dispatch(ctx, msg.CardID, msg.Payload); err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventCardAction, map[string]any{
		"session": msg.SessionID,
		"card":    string(msg.CardID),
		"action":  msg.Payload["action"],
	})
	return nil
}
