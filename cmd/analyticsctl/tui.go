package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/tui"
)

type tuiCmd struct {
	Locale  string `default:"en-US" help:"Locale used for numbers and currency."`
	Light   bool   `help:"Start in light mode."`
	LogFile string `name:"log-file" type:"path" help:"Write telemetry to this file; discarded when empty."`
}

func (c *tuiCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}

	var telemetry dashboard.Telemetry
	if c.LogFile != "" {
		logger, err := g.logger(cfg, c.LogFile)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		telemetry = dashboard.NewZapTelemetry(logger)
	}

	hook := dashboard.NewBroadcastHook()
	opts, err := cfg.SessionOptions(telemetry, hook)
	if err != nil {
		return err
	}
	opts.Shell.StartInLightMode = c.Light
	sessions := dashboard.NewSessionManager(opts)
	defer sessions.Close()

	shell, err := sessions.Open(ctx, dashboard.ViewerContext{Locale: c.Locale})
	if err != nil {
		return err
	}
	events, cancel := hook.Subscribe(shell.ID())
	defer cancel()

	model := tui.New(tui.Options{Controls: shell, Events: events, Context: ctx})
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
