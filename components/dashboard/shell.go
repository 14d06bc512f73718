package dashboard

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultClockInterval     = time.Minute
	defaultNotificationCount = 3
	clockLayout              = "15:04"
)

// Shell change reasons, in addition to the controller reasons.
const (
	ReasonClock  = "clock"
	ReasonTheme  = "theme"
	ReasonSearch = "search"
	ReasonAction = "action"
)

// ShellOptions configures a Shell.
type ShellOptions struct {
	SessionID string
	Viewer    ViewerContext
	Registry  *Registry
	Layout    *LayoutManifest

	Scheduler     Scheduler
	Timings       Timings
	RefreshDelay  time.Duration
	ClockInterval time.Duration
	Now           func() time.Time
	Rand          *rand.Rand

	Charts    ChartRenderer
	Themes    ThemeSet
	Validator ActionValidator
	Telemetry Telemetry
	Hook      EventHook

	NotificationCount int
	StartInLightMode  bool
}

// Header is the top bar of the page.
type Header struct {
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	Clock         string `json:"clock"`
	Search        string `json:"search"`
	Notifications int    `json:"notifications"`
	DarkMode      bool   `json:"dark_mode"`
	Refreshing    bool   `json:"refreshing"`
}

// CardFrame wraps one rendered card. Error is set instead of Data when the
// card failed to render.
type CardFrame struct {
	ID    CardID     `json:"id"`
	Title string     `json:"title"`
	Data  WidgetData `json:"data,omitempty"`
	Error string     `json:"error,omitempty"`
}

// Page is a full render of a session.
type Page struct {
	SessionID  string         `json:"session_id"`
	Header     Header         `json:"header"`
	State      DashboardState `json:"state"`
	Tabs       []WidgetData   `json:"tabs"`
	TimeRanges []WidgetData   `json:"time_ranges"`
	Sidebar    *CardFrame     `json:"sidebar,omitempty"`
	Always     []CardFrame    `json:"always"`
	Rows       [][]CardFrame  `json:"rows"`
	Theme      Theme          `json:"theme"`
}

// SearchHit is a card whose title matched the search box.
type SearchHit struct {
	ID    CardID `json:"id"`
	Title string `json:"title"`
	Tab   Tab    `json:"tab,omitempty"`
}

// SearchResult lists the cards and insight titles matching a query.
type SearchResult struct {
	Query    string      `json:"query"`
	Cards    []SearchHit `json:"cards"`
	Insights []string    `json:"insights"`
}

// Controls is the set of operations a transport can drive on a session.
type Controls interface {
	ID() string
	State() DashboardState
	SetTimeRange(ctx context.Context, key string) error
	SetActiveTab(ctx context.Context, key string) error
	TriggerRefresh(ctx context.Context) error
	ToggleDarkMode(ctx context.Context) (bool, error)
	SelectNav(ctx context.Context, label string) error
	SetSearch(ctx context.Context, query string) (SearchResult, error)
	Dispatch(ctx context.Context, id CardID, payload map[string]any) error
	Render(ctx context.Context) (Page, error)
	RenderCard(ctx context.Context, id CardID) (CardFrame, error)
	Tooltip(ctx context.Context, id CardID, label string) ([]TooltipLine, error)
}

// Shell is the per-session composition root. It owns the controller, the
// always-mounted cards and the cards of the active tab, plus the header
// state (theme, clock, search, notification badge).
//
// tabMu serializes mounting. mu guards the fields below it and is never
// held while calling into cards or the controller.
type Shell struct {
	id         string
	viewer     ViewerContext
	registry   *Registry
	layout     *LayoutManifest
	deps       CardDeps
	controller *DashboardController
	format     Formatter
	charts     ChartRenderer
	themes     ThemeSet
	validator  ActionValidator
	telemetry  Telemetry
	hook       EventHook
	now        func() time.Time
	badge      int
	closed     atomic.Bool

	tabMu sync.Mutex

	mu       sync.Mutex
	always   []CardID
	cards    map[CardID]CardView
	tabCards []CardID
	darkMode bool
	search   string
	clockAt  time.Time
	clock    Task
}

var _ Controls = (*Shell)(nil)

// NewShell validates the layout, mounts the always-on cards and the default
// tab, and starts the header clock.
func NewShell(opts ShellOptions) (*Shell, error) {
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Layout == nil {
		layout, err := DefaultLayout()
		if err != nil {
			return nil, err
		}
		opts.Layout = layout
	}
	if err := opts.Layout.Validate(opts.Registry); err != nil {
		return nil, err
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewClockScheduler()
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = defaultClockInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Hook == nil {
		opts.Hook = noopEventHook{}
	}
	if opts.NotificationCount <= 0 {
		opts.NotificationCount = defaultNotificationCount
	}
	if opts.SessionID == "" {
		opts.SessionID = opts.Viewer.SessionID
	}
	opts.Viewer.SessionID = opts.SessionID

	s := &Shell{
		id:        opts.SessionID,
		viewer:    opts.Viewer,
		registry:  opts.Registry,
		layout:    opts.Layout,
		format:    NewFormatter(opts.Viewer.Locale),
		charts:    opts.Charts,
		themes:    opts.Themes.withDefaults(),
		validator: opts.Validator,
		telemetry: normalizeTelemetry(opts.Telemetry),
		hook:      opts.Hook,
		now:       opts.Now,
		badge:     opts.NotificationCount,
		darkMode:  !opts.StartInLightMode,
		cards:     map[CardID]CardView{},
		clockAt:   opts.Now(),
	}
	s.deps = CardDeps{
		Scheduler: opts.Scheduler,
		Timings:   opts.Timings.withDefaults(),
		Rand:      opts.Rand,
		Notify:    s.cardChanged,
	}
	s.controller = NewDashboardController(ControllerOptions{
		Scheduler:    opts.Scheduler,
		RefreshDelay: opts.RefreshDelay,
		OnChange:     s.controllerChanged,
	})

	always, err := s.buildCards(opts.Layout.Always)
	if err != nil {
		s.controller.Close()
		return nil, err
	}
	tab, err := s.buildCards(opts.Layout.TabCards(DefaultTab))
	if err != nil {
		closeCards(always)
		s.controller.Close()
		return nil, err
	}
	s.always = append([]CardID(nil), opts.Layout.Always...)
	s.tabCards = opts.Layout.TabCards(DefaultTab)
	for id, card := range always {
		s.cards[id] = card
	}
	for id, card := range tab {
		s.cards[id] = card
	}
	s.observe(s.controller.State(), always, tab)
	s.clock = opts.Scheduler.Every(opts.ClockInterval, s.tickClock)
	return s, nil
}

// ID returns the session id.
func (s *Shell) ID() string { return s.id }

// Viewer returns the viewer the shell was opened for.
func (s *Shell) Viewer() ViewerContext { return s.viewer }

// State returns the controller state.
func (s *Shell) State() DashboardState { return s.controller.State() }

// DarkMode reports the presentation flag.
func (s *Shell) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// Notifications returns the header badge count.
func (s *Shell) Notifications() int { return s.badge }

// Mounted lists the currently mounted cards: always-on first, then the
// active tab in layout order.
func (s *Shell) Mounted() []CardID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CardID, 0, len(s.always)+len(s.tabCards))
	out = append(out, s.always...)
	return append(out, s.tabCards...)
}

// SetTimeRange relabels the time-dependent cards.
func (s *Shell) SetTimeRange(ctx context.Context, key string) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if err := s.controller.SetTimeRange(key); err != nil {
		return err
	}
	s.record(ctx, EventTimeRangeSet, map[string]any{"time_range": key})
	return nil
}

// SetActiveTab switches tabs. The cards of the previous tab are closed and
// the cards of the new tab are mounted fresh. Selecting the active tab is a
// no-op.
func (s *Shell) SetActiveTab(ctx context.Context, key string) error {
	s.tabMu.Lock()
	defer s.tabMu.Unlock()
	if s.closed.Load() {
		return ErrSessionClosed
	}
	tab, err := ParseTab(key)
	if err != nil {
		return err
	}
	if s.controller.State().ActiveTab == tab {
		return nil
	}
	ids := s.layout.TabCards(tab)
	fresh, err := s.buildCards(ids)
	if err != nil {
		return err
	}
	previous, err := s.controller.SetActiveTab(key)
	if err != nil {
		closeCards(fresh)
		return err
	}

	s.mu.Lock()
	old := make(map[CardID]CardView, len(s.tabCards))
	for _, id := range s.tabCards {
		old[id] = s.cards[id]
		delete(s.cards, id)
	}
	for id, card := range fresh {
		s.cards[id] = card
	}
	s.tabCards = ids
	s.mu.Unlock()

	closeCards(old)
	state := s.controller.State()
	s.observe(state, fresh)
	s.record(ctx, EventTabSet, map[string]any{"tab": string(tab), "previous": string(previous)})
	s.emit(ctx, "", ReasonTab, state)
	return nil
}

// TriggerRefresh starts the cosmetic refresh spinner.
func (s *Shell) TriggerRefresh(ctx context.Context) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if err := s.controller.TriggerRefresh(); err != nil {
		return err
	}
	s.record(ctx, EventRefreshStart, nil)
	return nil
}

// ToggleDarkMode flips the theme and returns the new value.
func (s *Shell) ToggleDarkMode(ctx context.Context) (bool, error) {
	if s.closed.Load() {
		return false, ErrSessionClosed
	}
	s.mu.Lock()
	s.darkMode = !s.darkMode
	dark := s.darkMode
	s.mu.Unlock()
	s.record(ctx, EventThemeToggle, map[string]any{"dark_mode": dark})
	s.emit(ctx, "", ReasonTheme, s.controller.State())
	return dark, nil
}

// SelectNav highlights a sidebar entry.
func (s *Shell) SelectNav(ctx context.Context, label string) error {
	return s.Dispatch(ctx, CardSidebar, map[string]any{"action": "select_nav", "value": label})
}

// SetSearch stores the query and returns the card titles and insight titles
// containing it, ignoring case. Blank queries match nothing.
func (s *Shell) SetSearch(ctx context.Context, query string) (SearchResult, error) {
	if s.closed.Load() {
		return SearchResult{}, ErrSessionClosed
	}
	query = strings.TrimSpace(query)
	s.mu.Lock()
	s.search = query
	s.mu.Unlock()
	result := s.searchFor(query)
	s.emit(ctx, "", ReasonSearch, s.controller.State())
	return result, nil
}

func (s *Shell) searchFor(query string) SearchResult {
	result := SearchResult{Query: query, Cards: []SearchHit{}, Insights: []string{}}
	if query == "" {
		return result
	}
	needle := strings.ToLower(query)
	matches := func(text string) bool {
		return strings.Contains(strings.ToLower(text), needle)
	}

	seen := map[CardID]bool{}
	addCard := func(id CardID, tab Tab) {
		if seen[id] {
			return
		}
		def, ok := s.registry.Definition(id)
		if !ok {
			return
		}
		title := def.LocalizedTitle(s.viewer.Locale)
		if !matches(title) {
			return
		}
		seen[id] = true
		result.Cards = append(result.Cards, SearchHit{ID: id, Title: title, Tab: tab})
	}
	for _, id := range s.layout.Always {
		addCard(id, "")
	}
	for _, tab := range s.layout.Tabs {
		for _, id := range s.layout.TabCards(tab.Key) {
			addCard(id, tab.Key)
		}
	}

	titles := map[string]bool{}
	for _, deck := range [][]InsightRecord{BasicInsightDeck(), EnhancedInsightDeck()} {
		for _, insight := range deck {
			if titles[insight.Title] || !matches(insight.Title) {
				continue
			}
			titles[insight.Title] = true
			result.Insights = append(result.Insights, insight.Title)
		}
	}
	sort.Strings(result.Insights)
	return result
}

// Dispatch validates payload against the card's action schema and routes
// the decoded action to the mounted card.
func (s *Shell) Dispatch(ctx context.Context, id CardID, payload map[string]any) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	def, ok := s.registry.Definition(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	card, ok := s.card(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotMounted, id)
	}
	if err := s.validator.Validate(def, payload); err != nil {
		return err
	}
	action, err := DecodeAction(payload)
	if err != nil {
		return err
	}
	handler, ok := card.(ActionHandler)
	if !ok {
		return unsupported(id, action.Action)
	}
	err = handler.HandleAction(ctx, action)
	fields := map[string]any{"card": string(id), "action": action.Action}
	if action.Value != "" {
		fields["value"] = action.Value
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	s.record(ctx, EventCardAction, fields)
	if err != nil {
		return err
	}
	if id == CardSidebar {
		s.record(ctx, EventNavSelect, map[string]any{"label": action.Value})
	}
	s.emit(ctx, id, ReasonAction+"."+action.Action, s.controller.State())
	return nil
}

// Tooltip explains one data point of a chart card.
func (s *Shell) Tooltip(_ context.Context, id CardID, label string) ([]TooltipLine, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}
	if _, ok := s.registry.Definition(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	card, ok := s.card(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCardNotMounted, id)
	}
	provider, ok := card.(TooltipProvider)
	if !ok {
		return nil, unsupported(id, "tooltip")
	}
	return provider.Tooltip(s.format, label)
}

// Render renders every mounted card into a Page.
func (s *Shell) Render(ctx context.Context) (Page, error) {
	if s.closed.Load() {
		return Page{}, ErrSessionClosed
	}
	s.mu.Lock()
	dark := s.darkMode
	search := s.search
	clockAt := s.clockAt
	always := append([]CardID(nil), s.always...)
	cards := make(map[CardID]CardView, len(s.cards))
	for id, card := range s.cards {
		cards[id] = card
	}
	s.mu.Unlock()

	state := s.controller.State()
	rc := s.renderContext(state, dark)
	clock := clockAt.Format(clockLayout)
	page := Page{
		SessionID: s.id,
		Header: Header{
			Title:         s.layout.Header.Title,
			Subtitle:      joinSubtitle(s.layout.Header.Subtitle, clock),
			Clock:         clock,
			Search:        search,
			Notifications: s.badge,
			DarkMode:      dark,
			Refreshing:    state.Refreshing,
		},
		State:      state,
		Tabs:       tabChoices(state.ActiveTab),
		TimeRanges: timeRangeChoices(state.TimeRange),
		Always:     []CardFrame{},
		Rows:       [][]CardFrame{},
		Theme:      rc.theme,
	}
	for _, id := range always {
		frame := s.renderFrame(ctx, rc.RenderContext, id, cards[id])
		if id == CardSidebar {
			page.Sidebar = &frame
			continue
		}
		page.Always = append(page.Always, frame)
	}
	for _, row := range s.layout.Rows(state.ActiveTab) {
		frames := make([]CardFrame, 0, len(row))
		for _, id := range row {
			frames = append(frames, s.renderFrame(ctx, rc.RenderContext, id, cards[id]))
		}
		page.Rows = append(page.Rows, frames)
	}
	return page, nil
}

// RenderCard renders a single mounted card.
func (s *Shell) RenderCard(ctx context.Context, id CardID) (CardFrame, error) {
	if s.closed.Load() {
		return CardFrame{}, ErrSessionClosed
	}
	if _, ok := s.registry.Definition(id); !ok {
		return CardFrame{}, fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	card, ok := s.card(id)
	if !ok {
		return CardFrame{}, fmt.Errorf("%w: %s", ErrCardNotMounted, id)
	}
	rc := s.renderContext(s.controller.State(), s.DarkMode())
	return s.renderFrame(ctx, rc.RenderContext, id, card), nil
}

// Close stops the clock, cancels a pending refresh and closes every card.
// Calling Close more than once is safe.
func (s *Shell) Close() {
	s.tabMu.Lock()
	defer s.tabMu.Unlock()
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	cards := s.cards
	clock := s.clock
	s.cards = map[CardID]CardView{}
	s.always = nil
	s.tabCards = nil
	s.clock = nil
	s.mu.Unlock()

	stopTask(clock)
	s.controller.Close()
	closeCards(cards)
}

type shellRenderContext struct {
	RenderContext
	theme Theme
}

func (s *Shell) renderContext(state DashboardState, dark bool) shellRenderContext {
	theme := s.themes.Select(dark)
	return shellRenderContext{
		RenderContext: RenderContext{
			State:      state,
			Viewer:     s.viewer,
			Format:     s.format,
			Charts:     s.charts,
			ChartTheme: theme.ChartTheme,
			DarkMode:   dark,
		},
		theme: theme,
	}
}

func (s *Shell) renderFrame(ctx context.Context, rc RenderContext, id CardID, card CardView) CardFrame {
	frame := CardFrame{ID: id}
	if def, ok := s.registry.Definition(id); ok {
		frame.Title = def.LocalizedTitle(s.viewer.Locale)
	}
	if card == nil {
		frame.Error = fmt.Sprintf("%s: %s", ErrCardNotMounted, id)
		return frame
	}
	data, err := card.Render(ctx, rc)
	if err != nil {
		frame.Error = err.Error()
		s.record(ctx, EventRenderError, map[string]any{"card": string(id), "error": err.Error()})
		return frame
	}
	frame.Data = data
	return frame
}

func (s *Shell) card(id CardID) (CardView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	return card, ok
}

func (s *Shell) buildCards(ids []CardID) (map[CardID]CardView, error) {
	built := make(map[CardID]CardView, len(ids))
	for _, id := range ids {
		card, err := s.registry.Build(id, s.deps)
		if err != nil {
			closeCards(built)
			return nil, err
		}
		built[id] = card
	}
	return built, nil
}

func closeCards(cards map[CardID]CardView) {
	for _, card := range cards {
		if card != nil {
			card.Close()
		}
	}
}

func (s *Shell) observe(state DashboardState, sets ...map[CardID]CardView) {
	for _, set := range sets {
		for _, card := range set {
			if obs, ok := card.(StateObserver); ok {
				obs.StateChanged(state)
			}
		}
	}
}

func (s *Shell) mountedCards() map[CardID]CardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[CardID]CardView, len(s.cards))
	for id, card := range s.cards {
		out[id] = card
	}
	return out
}

// controllerChanged runs outside the controller lock. Tab changes are
// handled by SetActiveTab once the new cards are mounted.
func (s *Shell) controllerChanged(reason string, state DashboardState) {
	if reason == ReasonTab || s.closed.Load() {
		return
	}
	s.observe(state, s.mountedCards())
	if reason == ReasonRefreshFinish {
		s.record(context.Background(), EventRefreshFinish, nil)
	}
	s.emit(context.Background(), "", reason, state)
}

func (s *Shell) cardChanged(id CardID, reason string) {
	s.emit(context.Background(), id, reason, s.controller.State())
}

func (s *Shell) tickClock() {
	s.mu.Lock()
	s.clockAt = s.now()
	s.mu.Unlock()
	s.emit(context.Background(), "", ReasonClock, s.controller.State())
}

func (s *Shell) emit(ctx context.Context, card CardID, reason string, state DashboardState) {
	if s.closed.Load() {
		return
	}
	_ = s.hook.ViewUpdated(ctx, ViewEvent{
		SessionID: s.id,
		Card:      card,
		Reason:    reason,
		State:     state,
		Timestamp: s.now(),
	})
}

func (s *Shell) record(ctx context.Context, event string, fields map[string]any) {
	payload := map[string]any{"session": s.id}
	for k, v := range fields {
		payload[k] = v
	}
	s.telemetry.Record(ctx, event, payload)
}

func joinSubtitle(subtitle, clock string) string {
	if subtitle == "" {
		return clock
	}
	return subtitle + " • " + clock
}

func tabChoices(active Tab) []WidgetData {
	out := make([]WidgetData, 0, len(Tabs()))
	for _, tab := range Tabs() {
		out = append(out, WidgetData{"key": string(tab), "label": tab.Label(), "active": tab == active})
	}
	return out
}

func timeRangeChoices(active TimeRange) []WidgetData {
	out := make([]WidgetData, 0, len(TimeRanges()))
	for _, tr := range TimeRanges() {
		out = append(out, WidgetData{"key": string(tr), "label": tr.Label(), "active": tr == active})
	}
	return out
}
