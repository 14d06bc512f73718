package dashboard

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHook struct {
	mu     sync.Mutex
	events []ViewEvent
}

func (h *recordingHook) ViewUpdated(_ context.Context, event ViewEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHook) reasons() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.events))
	for _, event := range h.events {
		out = append(out, event.Reason)
	}
	return out
}

type stubTelemetry struct {
	mu     sync.Mutex
	events []string
	last   map[string]map[string]any
}

func (s *stubTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if s.last == nil {
		s.last = map[string]map[string]any{}
	}
	s.last[event] = payload
}

func (s *stubTelemetry) recorded(event string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.last[event]
	return payload, ok
}

type shellFixture struct {
	shell     *Shell
	sched     *ManualScheduler
	hook      *recordingHook
	telemetry *stubTelemetry
}

func newShellFixture(t *testing.T, mutate ...func(*ShellOptions)) shellFixture {
	t.Helper()
	sched := NewManualScheduler(time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC))
	fx := shellFixture{sched: sched, hook: &recordingHook{}, telemetry: &stubTelemetry{}}
	opts := ShellOptions{
		SessionID: "s-1",
		Scheduler: sched,
		Now:       sched.Now,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Hook:      fx.hook,
		Telemetry: fx.telemetry,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	shell, err := NewShell(opts)
	require.NoError(t, err)
	t.Cleanup(shell.Close)
	fx.shell = shell
	return fx
}

func TestShellDefaults(t *testing.T) {
	fx := newShellFixture(t)
	assert.True(t, fx.shell.DarkMode())
	assert.Equal(t, 3, fx.shell.Notifications())
	assert.Equal(t, DefaultDashboardState(), fx.shell.State())
	assert.Equal(t, []CardID{
		CardSidebar, CardKPIs,
		CardRevenue, CardEngagement,
		CardFunnel, CardGeography, CardAIInsights,
		CardEngagementBreakdown, CardRecentActivity,
	}, fx.shell.Mounted())
	// clock, KPI jitter and the insight carousel
	assert.Equal(t, 3, fx.sched.Pending())
}

func TestShellToggleDarkModeTwiceRestoresTheme(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	dark, err := fx.shell.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, dark)
	page, err := fx.shell.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", page.Theme.Name)
	assert.False(t, page.Header.DarkMode)

	dark, err = fx.shell.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, dark)
	page, err = fx.shell.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", page.Theme.Name)

	assert.Equal(t, []string{ReasonTheme, ReasonTheme}, fx.hook.reasons())
	payload, ok := fx.telemetry.recorded(EventThemeToggle)
	require.True(t, ok)
	assert.Equal(t, true, payload["dark_mode"])
}

func TestShellStartInLightMode(t *testing.T) {
	fx := newShellFixture(t, func(o *ShellOptions) { o.StartInLightMode = true })
	assert.False(t, fx.shell.DarkMode())
}

func TestShellTabSwitchRemountsCards(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.shell.SetActiveTab(ctx, "sectors"))
	assert.Equal(t, TabSectors, fx.shell.State().ActiveTab)
	assert.Equal(t, []CardID{
		CardSidebar, CardKPIs,
		CardSectorRevenue, CardHeatmap,
		CardTopSectors, CardUnderperformingSectors,
	}, fx.shell.Mounted())
	// the overview carousel is gone with its timer
	assert.Equal(t, 2, fx.sched.Pending())

	err := fx.shell.Dispatch(ctx, CardRevenue, map[string]any{"action": "select_metric", "value": "profit"})
	assert.ErrorIs(t, err, ErrCardNotMounted)

	require.NoError(t, fx.shell.SetActiveTab(ctx, "ai-insights"))
	assert.Equal(t, 3, fx.sched.Pending())
	assert.Contains(t, fx.hook.reasons(), ReasonTab)

	payload, ok := fx.telemetry.recorded(EventTabSet)
	require.True(t, ok)
	assert.Equal(t, "ai-insights", payload["tab"])
	assert.Equal(t, "sectors", payload["previous"])

	assert.ErrorIs(t, fx.shell.SetActiveTab(ctx, "reports"), ErrUnknownTab)
}

func TestShellTabSwitchDiscardsCardState(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.shell.Dispatch(ctx, CardFunnel, map[string]any{"action": "select_period", "value": "week"}))
	frame, err := fx.shell.RenderCard(ctx, CardFunnel)
	require.NoError(t, err)
	assert.Equal(t, "week", frame.Data["period"])

	require.NoError(t, fx.shell.SetActiveTab(ctx, "performance"))
	require.NoError(t, fx.shell.SetActiveTab(ctx, "overview"))

	frame, err = fx.shell.RenderCard(ctx, CardFunnel)
	require.NoError(t, err)
	assert.Equal(t, "month", frame.Data["period"])
}

func TestShellClockTicksEveryMinute(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	page, err := fx.shell.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "09:30", page.Header.Clock)
	assert.Equal(t, "AI Analytics Dashboard", page.Header.Title)
	assert.Equal(t, "Real-time insights powered by AI • 09:30", page.Header.Subtitle)

	fx.sched.Advance(59 * time.Second)
	page, err = fx.shell.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "09:30", page.Header.Clock)

	fx.sched.Advance(time.Second)
	page, err = fx.shell.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "09:31", page.Header.Clock)
	assert.Contains(t, fx.hook.reasons(), ReasonClock)
}

func TestShellTimeRangeRelabelsCards(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.shell.SetTimeRange(ctx, "90d"))
	frame, err := fx.shell.RenderCard(ctx, CardRevenue)
	require.NoError(t, err)
	assert.Equal(t, "Performance vs ambitious targets • 90d", frame.Data["subtitle"])

	assert.ErrorIs(t, fx.shell.SetTimeRange(ctx, "2w"), ErrUnknownTimeRange)
	assert.Equal(t, TimeRange90d, fx.shell.State().TimeRange)
	assert.Contains(t, fx.hook.reasons(), ReasonTimeRange)
}

func TestShellRefreshSpinner(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.shell.TriggerRefresh(ctx))
	assert.ErrorIs(t, fx.shell.TriggerRefresh(ctx), ErrRefreshInProgress)
	page, err := fx.shell.Render(ctx)
	require.NoError(t, err)
	assert.True(t, page.Header.Refreshing)

	fx.sched.Advance(2 * time.Second)
	assert.False(t, fx.shell.State().Refreshing)

	reasons := fx.hook.reasons()
	assert.Contains(t, reasons, ReasonRefreshStart)
	assert.Contains(t, reasons, ReasonRefreshFinish)
	_, ok := fx.telemetry.recorded(EventRefreshFinish)
	assert.True(t, ok)
}

func TestShellDispatchErrors(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	err := fx.shell.Dispatch(ctx, "weather", map[string]any{"action": "noop"})
	assert.ErrorIs(t, err, ErrUnknownCard)

	err = fx.shell.Dispatch(ctx, CardRevenue, map[string]any{"action": "select_metric", "value": "churn"})
	assert.ErrorIs(t, err, ErrInvalidAction)

	err = fx.shell.Dispatch(ctx, CardRecentActivity, map[string]any{"action": "select"})
	assert.ErrorIs(t, err, ErrUnsupportedAction)

	assert.ErrorIs(t, fx.shell.SelectNav(ctx, "Nowhere"), ErrInvalidAction)
}

func TestShellSelectNavHighlightsSidebar(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.shell.SelectNav(ctx, "Analytics"))
	page, err := fx.shell.Render(ctx)
	require.NoError(t, err)
	require.NotNil(t, page.Sidebar)
	assert.Equal(t, "Analytics", page.Sidebar.Data["active"])

	payload, ok := fx.telemetry.recorded(EventNavSelect)
	require.True(t, ok)
	assert.Equal(t, "Analytics", payload["label"])
	assert.Contains(t, fx.hook.reasons(), ReasonAction+".select_nav")
}

func TestShellSearch(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	result, err := fx.shell.SetSearch(ctx, "  REVENUE ")
	require.NoError(t, err)
	assert.Equal(t, "REVENUE", result.Query)
	assert.Equal(t, []SearchHit{
		{ID: CardRevenue, Title: "Revenue Analytics", Tab: TabOverview},
		{ID: CardSectorRevenue, Title: "Revenue by Sector", Tab: TabSectors},
	}, result.Cards)
	assert.Equal(t, []string{"Q4 Revenue Forecast", "Revenue Opportunity", "Revenue Optimization"}, result.Insights)

	page, err := fx.shell.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "REVENUE", page.Header.Search)

	result, err = fx.shell.SetSearch(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, result.Cards)
	assert.Empty(t, result.Insights)
}

func TestShellTooltip(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()

	lines, err := fx.shell.Tooltip(ctx, CardRevenue, "Dec")
	require.NoError(t, err)
	assert.Equal(t, []TooltipLine{
		{Label: "Revenue", Value: "$95,000"},
		{Label: "Target", Value: "$130,000"},
		{Label: "Gap to Target", Value: "$35,000"},
		{Label: "Achievement", Value: "73.1%"},
	}, lines)

	_, err = fx.shell.Tooltip(ctx, CardRevenue, "Smarch")
	assert.ErrorIs(t, err, ErrUnknownDataPoint)

	_, err = fx.shell.Tooltip(ctx, CardRecentActivity, "x")
	assert.ErrorIs(t, err, ErrUnsupportedAction)

	_, err = fx.shell.Tooltip(ctx, CardRadar, "Revenue")
	assert.ErrorIs(t, err, ErrCardNotMounted)
}

func TestShellRenderLayout(t *testing.T) {
	fx := newShellFixture(t)
	page, err := fx.shell.Render(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "s-1", page.SessionID)
	require.NotNil(t, page.Sidebar)
	require.Len(t, page.Always, 1)
	assert.Equal(t, CardKPIs, page.Always[0].ID)
	require.Len(t, page.Rows, 3)
	assert.Len(t, page.Rows[0], 2)
	assert.Len(t, page.Rows[1], 3)
	assert.Len(t, page.Rows[2], 2)
	assert.Equal(t, "Revenue Analytics", page.Rows[0][0].Title)
	assert.Len(t, page.Tabs, 4)
	assert.Len(t, page.TimeRanges, 5)
	for _, row := range page.Rows {
		for _, frame := range row {
			assert.Empty(t, frame.Error, frame.ID)
		}
	}
}

type failingCard struct{ staticCard }

func (failingCard) Render(context.Context, RenderContext) (WidgetData, error) {
	return nil, errors.New("boom")
}

func TestShellRenderErrorIsContained(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(CardDefinition{
		ID:      "broken",
		Title:   "Broken",
		Factory: func(CardDeps) CardView { return failingCard{staticCard{id: "broken"}} },
	}))
	layout := &LayoutManifest{
		Version: "1",
		Always:  []CardID{CardSidebar},
		Tabs:    []TabLayout{{Key: TabOverview, Rows: [][]CardID{{"broken", CardRecentActivity}}}},
	}
	fx := newShellFixture(t, func(o *ShellOptions) {
		o.Registry = reg
		o.Layout = layout
	})

	page, err := fx.shell.Render(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "boom", page.Rows[0][0].Error)
	assert.Nil(t, page.Rows[0][0].Data)
	assert.NotEmpty(t, page.Rows[0][1].Data)

	payload, ok := fx.telemetry.recorded(EventRenderError)
	require.True(t, ok)
	assert.Equal(t, "broken", payload["card"])
}

func TestShellRejectsInvalidLayout(t *testing.T) {
	_, err := NewShell(ShellOptions{
		Scheduler: NewManualScheduler(time.Unix(0, 0)),
		Layout:    &LayoutManifest{Version: "1", Always: []CardID{"nope"}},
	})
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestShellCloseStopsEverything(t *testing.T) {
	fx := newShellFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.shell.TriggerRefresh(ctx))

	fx.shell.Close()
	assert.Zero(t, fx.sched.Pending())
	events := len(fx.hook.reasons())
	fx.sched.Advance(time.Hour)
	assert.Len(t, fx.hook.reasons(), events)

	assert.ErrorIs(t, fx.shell.SetTimeRange(ctx, "24h"), ErrSessionClosed)
	assert.ErrorIs(t, fx.shell.SetActiveTab(ctx, "sectors"), ErrSessionClosed)
	_, err := fx.shell.Render(ctx)
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = fx.shell.ToggleDarkMode(ctx)
	assert.ErrorIs(t, err, ErrSessionClosed)
	fx.shell.Close()
}
