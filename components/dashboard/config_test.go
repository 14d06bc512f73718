package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadRuntimeConfigDefaults(t *testing.T) {
	cfg, err := LoadRuntimeConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/analytics", cfg.BasePath)
	assert.Equal(t, time.Minute, cfg.ClockInterval)
	assert.Equal(t, 5*time.Second, cfg.KPIInterval)
	assert.Equal(t, 8*time.Second, cfg.InsightInterval)
	assert.Equal(t, 10*time.Second, cfg.EnhancedInsightInterval)
	assert.Equal(t, 2*time.Second, cfg.RefreshDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.ChartCacheTTL)
	assert.Equal(t, "chalk", cfg.DarkChartTheme)
	assert.Equal(t, 3, cfg.NotificationCount)
}

func TestLoadRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("INSIGHTS_ADDR", ":9090")
	t.Setenv("INSIGHTS_KPI_INTERVAL", "250ms")
	t.Setenv("INSIGHTS_LOG_LEVEL", "debug")

	cfg, err := LoadRuntimeConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Timings().KPIInterval)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)
}

func TestLoadRuntimeConfigRejectsBadValues(t *testing.T) {
	t.Setenv("INSIGHTS_REFRESH_DELAY", "0s")
	_, err := LoadRuntimeConfig()
	assert.ErrorContains(t, err, "INSIGHTS_REFRESH_DELAY")
}

func TestRuntimeConfigValidate(t *testing.T) {
	cfg, err := LoadRuntimeConfig()
	require.NoError(t, err)

	bad := *cfg
	bad.LogLevel = "loud"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.BasePath = "analytics"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.ChartCacheTTL = -time.Second
	assert.Error(t, bad.Validate())
}

func TestRuntimeConfigSessionOptions(t *testing.T) {
	cfg, err := LoadRuntimeConfig()
	require.NoError(t, err)
	cfg.LightChartTheme = "vintage"

	opts, err := cfg.SessionOptions(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, opts.Shell.Layout)
	assert.NotNil(t, opts.Shell.Charts)
	assert.Equal(t, "vintage", opts.Shell.Themes.Light.ChartTheme)
	assert.Equal(t, 30*time.Minute, opts.IdleTimeout)

	cfg.LayoutPath = "/does/not/exist.yaml"
	_, err = cfg.SessionOptions(nil, nil)
	assert.Error(t, err)
}
