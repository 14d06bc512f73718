package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	dashboard "github.com/goliatone/go-insights-dashboard/components/dashboard"
)

func newManager(t *testing.T) *dashboard.SessionManager {
	t.Helper()
	mgr := dashboard.NewSessionManager(dashboard.SessionOptions{
		Shell: dashboard.ShellOptions{
			Scheduler: dashboard.NewManualScheduler(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)),
		},
	})
	t.Cleanup(mgr.Close)
	if _, err := mgr.Open(context.Background(), dashboard.ViewerContext{SessionID: "s-1", Locale: "en"}); err != nil {
		t.Fatalf("open session: %v", err)
	}
	return mgr
}

func TestPageQuery(t *testing.T) {
	query := NewPageQuery(newManager(t))
	page, err := query.Query(context.Background(), PageInput{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if page.SessionID != "s-1" {
		t.Fatalf("expected session s-1, got %q", page.SessionID)
	}
	if page.State.ActiveTab != dashboard.TabOverview {
		t.Fatalf("expected overview tab, got %s", page.State.ActiveTab)
	}

	_, err = query.Query(context.Background(), PageInput{SessionID: "nope"})
	if !errors.Is(err, dashboard.ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}

func TestViewerPageQueryOpensSession(t *testing.T) {
	mgr := newManager(t)
	query := NewViewerPageQuery(mgr)
	page, err := query.Query(context.Background(), dashboard.ViewerContext{SessionID: "s-2"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if page.SessionID == "s-2" || len(page.SessionID) != 36 || mgr.Len() != 2 {
		t.Fatalf("expected a second server-issued session, got %q (%d live)", page.SessionID, mgr.Len())
	}

	resumed, err := query.Query(context.Background(), dashboard.ViewerContext{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if resumed.SessionID != "s-1" || mgr.Len() != 2 {
		t.Fatalf("expected s-1 to be resumed, got %q (%d live)", resumed.SessionID, mgr.Len())
	}

	if _, err := NewViewerPageQuery(nil).Query(context.Background(), dashboard.ViewerContext{}); err == nil {
		t.Fatalf("expected error without a page source")
	}
}

func TestCardAndTooltipQueries(t *testing.T) {
	mgr := newManager(t)
	ctx := context.Background()

	frame, err := NewCardQuery(mgr).Query(ctx, CardInput{SessionID: "s-1", CardID: dashboard.CardFunnel})
	if err != nil {
		t.Fatalf("card query: %v", err)
	}
	if frame.Data["conversion"] != "6.29%" {
		t.Fatalf("expected 6.29%% conversion, got %v", frame.Data["conversion"])
	}

	lines, err := NewTooltipQuery(mgr).Query(ctx, TooltipInput{SessionID: "s-1", CardID: dashboard.CardRevenue, Label: "Dec"})
	if err != nil {
		t.Fatalf("tooltip query: %v", err)
	}
	if len(lines) == 0 || lines[0].Value != "$95,000" {
		t.Fatalf("unexpected tooltip lines: %+v", lines)
	}

	_, err = NewTooltipQuery(mgr).Query(ctx, TooltipInput{SessionID: "s-1", CardID: dashboard.CardRadar, Label: "Revenue"})
	if !errors.Is(err, dashboard.ErrCardNotMounted) {
		t.Fatalf("expected ErrCardNotMounted, got %v", err)
	}
}

func TestSearchQuery(t *testing.T) {
	result, err := NewSearchQuery(newManager(t)).Query(context.Background(), SearchInput{SessionID: "s-1", Query: "heatmap"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(result.Cards) != 1 || result.Cards[0].ID != dashboard.CardHeatmap {
		t.Fatalf("expected the heatmap card, got %+v", result.Cards)
	}
	if result.Cards[0].Tab != dashboard.TabSectors {
		t.Fatalf("expected sectors tab, got %s", result.Cards[0].Tab)
	}
}

func TestMetricsQuery(t *testing.T) {
	report, err := NewMetricsQuery().Query(context.Background(), MetricsInput{})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if report.Revenue.Month != "Dec" || report.Revenue.Display != "73.1%" {
		t.Fatalf("unexpected revenue summary: %+v", report.Revenue)
	}
	if report.Funnel.Conversion != 6.29 || report.Funnel.TotalRevenue != "$253,205" {
		t.Fatalf("unexpected funnel summary: %+v", report.Funnel)
	}
	if report.Heatmap.PeakValue != 55 {
		t.Fatalf("expected peak 55, got %v", report.Heatmap.PeakValue)
	}
	if len(report.Sectors) != 6 || len(report.Radar) != 3 {
		t.Fatalf("expected 6 sectors and 3 radar insights")
	}
	if report.SectorTotal != "$877,000" {
		t.Fatalf("expected $877,000, got %s", report.SectorTotal)
	}
}
