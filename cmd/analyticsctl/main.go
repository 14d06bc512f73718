package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// Globals are flags shared by every command. Set values override the
// INSIGHTS_* environment.
type Globals struct {
	Dev        bool   `help:"Use the development logger (console encoding, debug caller info)."`
	LogLevel   string `name:"log-level" help:"Override INSIGHTS_LOG_LEVEL (debug, info, warn, error)."`
	LayoutFile string `name:"layout-file" type:"path" help:"Override INSIGHTS_LAYOUT_PATH with a layout manifest file."`
}

type cli struct {
	Globals

	Serve    serveCmd    `cmd:"" help:"Serve the analytics dashboard over HTTP and WebSocket."`
	Snapshot snapshotCmd `cmd:"" help:"Render one dashboard page and print it as JSON or YAML."`
	TUI      tuiCmd      `cmd:"" name:"tui" help:"Open the dashboard in the terminal."`
	Layout   layoutCmd   `cmd:"" help:"Layout manifest utilities."`
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Name("analyticsctl"),
		kong.Description("AI analytics dashboard server and tooling."),
		kong.UsageOnError(),
		kong.Bind(&root.Globals),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// config loads the environment and applies the global overrides.
func (g *Globals) config() (*dashboard.RuntimeConfig, error) {
	cfg, err := dashboard.LoadRuntimeConfig()
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.LayoutFile != "" {
		cfg.LayoutPath = g.LayoutFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logger builds the zap logger for cfg. outputs replaces the default stderr
// sink when set.
func (g *Globals) logger(cfg *dashboard.RuntimeConfig, outputs ...string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if g.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if len(outputs) > 0 {
		zc.OutputPaths = outputs
		zc.ErrorOutputPaths = outputs
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("analyticsctl: build logger: %w", err)
	}
	return logger.Named("analyticsctl"), nil
}
