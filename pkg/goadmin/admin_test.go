package goadmin_test

import (
	"context"
	"testing"

	dashboardpkg "github.com/goliatone/go-insights-dashboard/pkg/dashboard"
	"github.com/goliatone/go-insights-dashboard/pkg/goadmin"
)

type stubMenuBuilder struct {
	calls []goadmin.MenuItem
	menu  string
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, menu string, item goadmin.MenuItem) error {
	s.menu = menu
	s.calls = append(s.calls, item)
	return nil
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	sessions := dashboardpkg.NewSessionManager(dashboardpkg.SessionOptions{})
	defer sessions.Close()

	admin, err := goadmin.New(goadmin.Config{
		Enabled:     true,
		Sessions:    sessions,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(builder.calls))
	}
	item := builder.calls[0]
	if builder.menu != "admin.main" || item.Label != "Analytics" || item.Route != "/analytics/dashboard" {
		t.Fatalf("unexpected defaults: %s %+v", builder.menu, item)
	}
	if admin.Sessions() != sessions {
		t.Fatalf("expected session manager")
	}
}

func TestAdminRequiresSessionsWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{Enabled: true}); err == nil {
		t.Fatalf("expected error without a session manager")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		Enabled:     false,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.calls) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.calls))
	}
	if admin.Sessions() != nil {
		t.Fatalf("expected nil sessions when disabled")
	}
}
