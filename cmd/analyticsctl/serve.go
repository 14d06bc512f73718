package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-insights-dashboard/pkg/goadmin"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	Addr     string `help:"Override INSIGHTS_ADDR."`
	BasePath string `name:"base-path" help:"Override INSIGHTS_BASE_PATH."`
	Menu     string `default:"admin.main" help:"Admin menu the dashboard entry is seeded into."`
}

func (c *serveCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.BasePath != "" {
		cfg.BasePath = c.BasePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := g.logger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	telemetry := dashboard.NewZapTelemetry(logger)
	hook := dashboard.NewBroadcastHook()
	opts, err := cfg.SessionOptions(telemetry, hook)
	if err != nil {
		return err
	}
	sessions := dashboard.NewSessionManager(opts)
	defer sessions.Close()

	renderer, err := dashboard.NewTemplateRenderer(cfg.TemplateDir)
	if err != nil {
		return err
	}
	pages := dashboard.NewPageController(dashboard.PageControllerOptions{
		Sessions: sessions,
		Renderer: renderer,
	})

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:    server.Router(),
		Pages:     pages,
		API:       httpapi.NewCommandExecutor(sessions, telemetry),
		Broadcast: hook,
		BasePath:  cfg.BasePath,
	}); err != nil {
		return err
	}

	admin, err := goadmin.New(goadmin.Config{
		Enabled:     true,
		MenuCode:    c.Menu,
		MenuBuilder: menuLogger{logger: logger},
		Sessions:    sessions,
		MenuItem:    goadmin.MenuItem{Route: cfg.BasePath + "/dashboard"},
	})
	if err != nil {
		return err
	}
	if err := admin.Bootstrap(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("dashboard listening",
			zap.String("addr", cfg.Addr),
			zap.String("page", cfg.BasePath+"/dashboard"),
			zap.String("ws", cfg.BasePath+"/dashboard/ws"),
		)
		return server.Serve(cfg.Addr)
	})
	group.Go(func() error {
		err := sessions.Run(gctx, cfg.ReapInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

// menuLogger records seeded menu entries in the log; the standalone server
// has no admin navigation store.
type menuLogger struct {
	logger *zap.Logger
}

func (m menuLogger) EnsureMenuItem(_ context.Context, menuCode string, item goadmin.MenuItem) error {
	m.logger.Info("menu item ensured",
		zap.String("menu", menuCode),
		zap.String("label", item.Label),
		zap.String("route", item.Route),
		zap.String("icon", item.Icon),
	)
	return nil
}
