package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every runtime environment variable.
const EnvPrefix = "INSIGHTS"

// RuntimeConfig holds the process-level settings of the dashboard.
type RuntimeConfig struct {
	Addr     string `envconfig:"ADDR" default:":8080"`
	BasePath string `envconfig:"BASE_PATH" default:"/analytics"`

	ClockInterval           time.Duration `envconfig:"CLOCK_INTERVAL" default:"1m"`
	KPIInterval             time.Duration `envconfig:"KPI_INTERVAL" default:"5s"`
	InsightInterval         time.Duration `envconfig:"INSIGHT_INTERVAL" default:"8s"`
	EnhancedInsightInterval time.Duration `envconfig:"ENHANCED_INSIGHT_INTERVAL" default:"10s"`
	RegenerateDelay         time.Duration `envconfig:"REGENERATE_DELAY" default:"2s"`
	RefreshDelay            time.Duration `envconfig:"REFRESH_DELAY" default:"2s"`

	SessionIdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m"`
	ReapInterval       time.Duration `envconfig:"REAP_INTERVAL" default:"1m"`

	ChartCacheTTL   time.Duration `envconfig:"CHART_CACHE_TTL" default:"5m"`
	ChartAssetsHost string        `envconfig:"CHART_ASSETS_HOST"`
	DarkChartTheme  string        `envconfig:"DARK_CHART_THEME" default:"chalk"`
	LightChartTheme string        `envconfig:"LIGHT_CHART_THEME" default:"westeros"`

	LayoutPath        string `envconfig:"LAYOUT_PATH"`
	TemplateDir       string `envconfig:"TEMPLATE_DIR"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	NotificationCount int    `envconfig:"NOTIFICATION_COUNT" default:"3"`
}

// LoadRuntimeConfig reads INSIGHTS_* variables and validates the result.
func LoadRuntimeConfig() (*RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("dashboard: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects non-positive intervals and unknown log levels.
func (c *RuntimeConfig) Validate() error {
	intervals := []struct {
		name  string
		value time.Duration
	}{
		{"CLOCK_INTERVAL", c.ClockInterval},
		{"KPI_INTERVAL", c.KPIInterval},
		{"INSIGHT_INTERVAL", c.InsightInterval},
		{"ENHANCED_INSIGHT_INTERVAL", c.EnhancedInsightInterval},
		{"REGENERATE_DELAY", c.RegenerateDelay},
		{"REFRESH_DELAY", c.RefreshDelay},
		{"SESSION_IDLE_TIMEOUT", c.SessionIdleTimeout},
		{"REAP_INTERVAL", c.ReapInterval},
	}
	for _, iv := range intervals {
		if iv.value <= 0 {
			return fmt.Errorf("dashboard: %s_%s must be positive, got %s", EnvPrefix, iv.name, iv.value)
		}
	}
	if c.ChartCacheTTL < 0 {
		return fmt.Errorf("dashboard: %s_CHART_CACHE_TTL must not be negative", EnvPrefix)
	}
	if c.NotificationCount < 0 {
		return fmt.Errorf("dashboard: %s_NOTIFICATION_COUNT must not be negative", EnvPrefix)
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("dashboard: %s_BASE_PATH must start with /", EnvPrefix)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *RuntimeConfig) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("dashboard: %s_LOG_LEVEL: %w", EnvPrefix, err)
	}
	return level, nil
}

// Timings maps the card intervals.
func (c *RuntimeConfig) Timings() Timings {
	return Timings{
		KPIInterval:             c.KPIInterval,
		InsightInterval:         c.InsightInterval,
		EnhancedInsightInterval: c.EnhancedInsightInterval,
		RegenerateDelay:         c.RegenerateDelay,
	}
}

// ChartRenderer builds the go-echarts renderer configured by the chart
// settings. A zero TTL disables the markup cache.
func (c *RuntimeConfig) ChartRenderer() *EChartsRenderer {
	var cache RenderCache
	if c.ChartCacheTTL > 0 {
		cache = NewChartCache(c.ChartCacheTTL)
	}
	return NewEChartsRenderer(WithChartCache(cache), WithChartAssetsHost(c.ChartAssetsHost))
}

// Layout loads LayoutPath, or the embedded default when it is empty.
func (c *RuntimeConfig) Layout() (*LayoutManifest, error) {
	if c.LayoutPath == "" {
		return DefaultLayout()
	}
	return ReadLayout(c.LayoutPath)
}

// SessionOptions assembles the manager options for this configuration.
func (c *RuntimeConfig) SessionOptions(telemetry Telemetry, hook EventHook) (SessionOptions, error) {
	layout, err := c.Layout()
	if err != nil {
		return SessionOptions{}, err
	}
	return SessionOptions{
		Shell: ShellOptions{
			Registry:          NewRegistry(),
			Layout:            layout,
			Timings:           c.Timings(),
			RefreshDelay:      c.RefreshDelay,
			ClockInterval:     c.ClockInterval,
			Charts:            c.ChartRenderer(),
			Themes:            DefaultThemes(c.DarkChartTheme, c.LightChartTheme),
			NotificationCount: c.NotificationCount,
		},
		IdleTimeout: c.SessionIdleTimeout,
		Telemetry:   telemetry,
		Hook:        hook,
	}, nil
}
