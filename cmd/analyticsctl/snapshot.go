package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
)

type snapshotCmd struct {
	Tab       string `default:"overview" enum:"overview,sectors,performance,ai-insights" help:"Tab to render."`
	TimeRange string `name:"range" default:"7d" enum:"24h,7d,30d,90d,1y" help:"Time range selection."`
	Locale    string `default:"en-US" help:"Locale used for numbers and currency."`
	Light     bool   `help:"Render the light theme."`
	Charts    bool   `help:"Include go-echarts markup in chart cards."`
	Format    string `default:"json" enum:"json,yaml" help:"Output format."`
	Out       string `type:"path" help:"Write to a file instead of stdout."`
}

func (c *snapshotCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	page, err := c.render(ctx, cfg)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if c.Out != "" {
		file, err := os.Create(c.Out) //nolint:gosec
		if err != nil {
			return fmt.Errorf("analyticsctl: create %s: %w", c.Out, err)
		}
		defer file.Close()
		w = file
	}
	return writePage(w, page, c.Format)
}

// render builds a throwaway shell on a manual scheduler so no timer fires
// while the page is captured.
func (c *snapshotCmd) render(ctx context.Context, cfg *dashboard.RuntimeConfig) (dashboard.Page, error) {
	layout, err := cfg.Layout()
	if err != nil {
		return dashboard.Page{}, err
	}
	opts := dashboard.ShellOptions{
		SessionID:         "snapshot",
		Viewer:            dashboard.ViewerContext{SessionID: "snapshot", Locale: c.Locale},
		Layout:            layout,
		Scheduler:         dashboard.NewManualScheduler(time.Now()),
		Timings:           cfg.Timings(),
		RefreshDelay:      cfg.RefreshDelay,
		ClockInterval:     cfg.ClockInterval,
		Themes:            dashboard.DefaultThemes(cfg.DarkChartTheme, cfg.LightChartTheme),
		NotificationCount: cfg.NotificationCount,
		StartInLightMode:  c.Light,
	}
	if c.Charts {
		opts.Charts = cfg.ChartRenderer()
	}
	shell, err := dashboard.NewShell(opts)
	if err != nil {
		return dashboard.Page{}, err
	}
	defer shell.Close()

	if err := shell.SetTimeRange(ctx, c.TimeRange); err != nil {
		return dashboard.Page{}, err
	}
	if err := shell.SetActiveTab(ctx, c.Tab); err != nil {
		return dashboard.Page{}, err
	}
	return shell.Render(ctx)
}

func writePage(w io.Writer, page dashboard.Page, format string) error {
	switch format {
	case "yaml":
		// go through JSON so the YAML keys follow the json tags
		raw, err := json.Marshal(page)
		if err != nil {
			return fmt.Errorf("analyticsctl: encode page: %w", err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("analyticsctl: encode page: %w", err)
		}
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("analyticsctl: write yaml: %w", err)
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(page); err != nil {
			return fmt.Errorf("analyticsctl: write json: %w", err)
		}
		return nil
	}
}
