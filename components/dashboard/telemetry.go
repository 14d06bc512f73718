package dashboard

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// Telemetry event names.
const (
	EventSessionOpen   = "dashboard.session.open"
	EventSessionClose  = "dashboard.session.close"
	EventTimeRangeSet  = "dashboard.time_range.set"
	EventTabSet        = "dashboard.tab.set"
	EventRefreshStart  = "dashboard.refresh.start"
	EventRefreshFinish = "dashboard.refresh.finish"
	EventThemeToggle   = "dashboard.theme.toggle"
	EventNavSelect     = "dashboard.nav.select"
	EventCardAction    = "dashboard.card.action"
	EventRenderError   = "dashboard.card.render_error"
)

// Telemetry records dashboard events for observability.
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

// ZapTelemetry writes telemetry events as structured zap log entries.
// Render errors log at warn level, everything else at info.
type ZapTelemetry struct {
	logger *zap.Logger
}

// NewZapTelemetry wraps logger; a nil logger discards events.
func NewZapTelemetry(logger *zap.Logger) *ZapTelemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTelemetry{logger: logger.Named("telemetry")}
}

// Record implements Telemetry.
func (t *ZapTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys)+1)
	fields = append(fields, zap.String("event", event))
	for _, key := range keys {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	if event == EventRenderError {
		t.logger.Warn(event, fields...)
		return
	}
	t.logger.Info(event, fields...)
}
