package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapTelemetryRecord(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	telemetry := NewZapTelemetry(zap.New(core))

	telemetry.Record(context.Background(), EventTabSet, map[string]any{"tab": "sectors", "previous": "overview"})
	telemetry.Record(context.Background(), EventRenderError, map[string]any{"card": "radar", "error": "boom"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "telemetry", entries[0].LoggerName)
	fields := entries[0].ContextMap()
	assert.Equal(t, EventTabSet, fields["event"])
	assert.Equal(t, "sectors", fields["tab"])
	assert.Equal(t, "previous", entries[0].Context[1].Key, "payload keys are sorted")

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestZapTelemetryNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		NewZapTelemetry(nil).Record(context.Background(), EventThemeToggle, nil)
	})
	assert.IsType(t, noopTelemetry{}, normalizeTelemetry(nil))
}
