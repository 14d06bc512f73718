package commands

import "context"

// Command telemetry events. Shells record their own domain events; these
// mark which transport-facing command drove the change.
const (
	EventSetTimeRange   = "dashboard.command.time_range"
	EventSetActiveTab   = "dashboard.command.tab"
	EventTriggerRefresh = "dashboard.command.refresh"
	EventToggleDarkMode = "dashboard.command.theme"
	EventSelectNav      = "dashboard.command.nav"
	EventSetSearch      = "dashboard.command.search"
	EventCardAction     = "dashboard.command.card_action"
)

// Telemetry allows commands to emit structured events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
