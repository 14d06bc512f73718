package goadmin

import (
	"context"
	"errors"

	dashboardpkg "github.com/goliatone/go-insights-dashboard/pkg/dashboard"
)

// MenuBuilder ensures the analytics entry exists within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures dashboard link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
	Badge    int
}

// Config wires the dashboard sessions and the menu into an admin shell.
type Config struct {
	Enabled     bool
	MenuCode    string
	MenuBuilder MenuBuilder
	Sessions    *dashboardpkg.SessionManager
	MenuItem    MenuItem
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed the analytics menu entry.
func New(cfg Config) (*Admin, error) {
	if cfg.Enabled && cfg.Sessions == nil {
		return nil, errors.New("goadmin: session manager is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.MenuItem.Label == "" {
		cfg.MenuItem.Label = "Analytics"
	}
	if cfg.MenuItem.Route == "" {
		cfg.MenuItem.Route = "/analytics/dashboard"
	}
	if cfg.MenuItem.Icon == "" {
		cfg.MenuItem.Icon = "bar-chart-3"
	}
	return &Admin{cfg: cfg}, nil
}

// Sessions exposes the configured session manager when enabled.
func (a *Admin) Sessions() *dashboardpkg.SessionManager {
	if !a.cfg.Enabled {
		return nil
	}
	return a.cfg.Sessions
}

// Bootstrap seeds the menu entry when the dashboard is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.Enabled || a.cfg.MenuBuilder == nil {
		return nil
	}
	return a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.MenuItem)
}
