package queries

import (
	"context"
	"errors"
	"fmt"

	dashboard "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

var errNoSessions = errors.New("queries: session source is required")

func resolve(ctx context.Context, sessions dashboard.SessionSource, id string) (dashboard.Controls, error) {
	if sessions == nil {
		return nil, errNoSessions
	}
	if id == "" {
		return nil, fmt.Errorf("queries: session id is required: %w", dashboard.ErrUnknownSession)
	}
	return sessions.Session(ctx, id)
}
