// Package tui renders a dashboard session in the terminal with bubbletea.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
)

// PageMsg carries a fresh render of the session.
type PageMsg struct {
	Page dashboard.Page
	Err  error
}

// ViewEventMsg wraps a state change pushed by the session (timer tick,
// refresh finished, carousel rotation).
type ViewEventMsg dashboard.ViewEvent

type eventsClosedMsg struct{}

// Options configures a Model.
type Options struct {
	Controls dashboard.Controls
	// Events streams view events of the session; nil disables live updates.
	Events  <-chan dashboard.ViewEvent
	Context context.Context
	Keys    *KeyMap
}

// Model is the bubbletea model of one dashboard session.
type Model struct {
	ctx      context.Context
	controls dashboard.Controls
	events   <-chan dashboard.ViewEvent
	keys     KeyMap
	search   textinput.Model

	page   dashboard.Page
	status string
	err    error
	width  int
}

// New builds the model. Controls is required.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	search := textinput.New()
	search.Placeholder = "Search cards and insights..."
	search.Prompt = "⌕ "
	search.CharLimit = 64
	return Model{
		ctx:      ctx,
		controls: opts.Controls,
		events:   opts.Events,
		keys:     keys,
		search:   search,
		width:    120,
	}
}

// Page returns the last rendered page.
func (m Model) Page() dashboard.Page { return m.page }

// Status returns the last status line message.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.renderCmd(), m.waitForEvent())
}

func (m Model) renderCmd() tea.Cmd {
	controls, ctx := m.controls, m.ctx
	return func() tea.Msg {
		page, err := controls.Render(ctx)
		return PageMsg{Page: page, Err: err}
	}
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return ViewEventMsg(event)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case PageMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.page = msg.Page
		return m, nil

	case ViewEventMsg:
		return m, tea.Batch(m.renderCmd(), m.waitForEvent())

	case eventsClosedMsg:
		m.events = nil
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Apply):
		m.search.Blur()
		result, err := m.controls.SetSearch(m.ctx, m.search.Value())
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = searchStatus(result)
		return m, m.renderCmd()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextTab):
		err = m.controls.SetActiveTab(m.ctx, string(shiftTab(m.controls.State().ActiveTab, 1)))
	case key.Matches(msg, m.keys.PrevTab):
		err = m.controls.SetActiveTab(m.ctx, string(shiftTab(m.controls.State().ActiveTab, -1)))
	case key.Matches(msg, m.keys.Num1, m.keys.Num2, m.keys.Num3, m.keys.Num4):
		tabs := dashboard.Tabs()
		idx := int(msg.String()[0] - '1')
		err = m.controls.SetActiveTab(m.ctx, string(tabs[idx]))
	case key.Matches(msg, m.keys.TimeRange):
		err = m.controls.SetTimeRange(m.ctx, string(nextTimeRange(m.controls.State().TimeRange)))
	case key.Matches(msg, m.keys.Refresh):
		err = m.controls.TriggerRefresh(m.ctx)
	case key.Matches(msg, m.keys.Theme):
		_, err = m.controls.ToggleDarkMode(m.ctx)
	case key.Matches(msg, m.keys.NextIdea):
		err = m.dispatchInsight(func(index, count int) map[string]any {
			return map[string]any{"action": "select", "index": (index + 1) % count}
		})
	case key.Matches(msg, m.keys.Regenerate):
		err = m.dispatchInsight(func(int, int) map[string]any {
			return map[string]any{"action": "regenerate"}
		})
	default:
		return m, nil
	}
	if err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
	return m, m.renderCmd()
}

// dispatchInsight sends an action to the insight carousel shown on the
// current tab.
func (m Model) dispatchInsight(payload func(index, count int) map[string]any) error {
	for _, row := range m.page.Rows {
		for _, frame := range row {
			if frame.ID != dashboard.CardAIInsights && frame.ID != dashboard.CardEnhancedInsights {
				continue
			}
			index, count := carouselPosition(frame.Data)
			if count == 0 {
				return fmt.Errorf("%s: no insights to show", frame.ID)
			}
			return m.controls.Dispatch(m.ctx, frame.ID, payload(index, count))
		}
	}
	return fmt.Errorf("no insight carousel on the %s tab", m.page.State.ActiveTab.Label())
}

func carouselPosition(data dashboard.WidgetData) (int, int) {
	count, _ := data["count"].(int)
	dots, _ := data["dots"].([]dashboard.WidgetData)
	for _, dot := range dots {
		if active, _ := dot["active"].(bool); active {
			index, _ := dot["index"].(int)
			return index, count
		}
	}
	return 0, count
}

func shiftTab(current dashboard.Tab, delta int) dashboard.Tab {
	tabs := dashboard.Tabs()
	for i, tab := range tabs {
		if tab == current {
			return tabs[(i+delta+len(tabs))%len(tabs)]
		}
	}
	return dashboard.DefaultTab
}

func nextTimeRange(current dashboard.TimeRange) dashboard.TimeRange {
	ranges := dashboard.TimeRanges()
	for i, r := range ranges {
		if r == current {
			return ranges[(i+1)%len(ranges)]
		}
	}
	return dashboard.DefaultTimeRange
}

func searchStatus(result dashboard.SearchResult) string {
	if result.Query == "" {
		return "search cleared"
	}
	return fmt.Sprintf("%q: %d cards, %d insights", result.Query, len(result.Cards), len(result.Insights))
}
