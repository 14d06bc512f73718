package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
)

func newModel(t *testing.T) (Model, *dashboard.Shell) {
	t.Helper()
	shell, err := dashboard.NewShell(dashboard.ShellOptions{
		SessionID: "tui",
		Scheduler: dashboard.NewManualScheduler(time.Unix(0, 0)),
	})
	if err != nil {
		t.Fatalf("new shell: %v", err)
	}
	t.Cleanup(shell.Close)

	m := New(Options{Controls: shell})
	return run(t, m, m.renderCmd()), shell
}

func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return run(t, next.(Model), cmd)
}

// update applies msg without running the returned command; the search
// input answers with cursor blink ticks.
func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelRendersPage(t *testing.T) {
	m, _ := newModel(t)

	if m.Page().SessionID != "tui" {
		t.Fatalf("expected page for session tui, got %q", m.Page().SessionID)
	}
	view := m.View()
	for _, want := range []string{"AI Analytics Dashboard", "Overview", "Revenue Analytics", "q quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}
}

func TestModelViewBeforeFirstRender(t *testing.T) {
	m := New(Options{})
	if got := m.View(); !strings.Contains(got, "loading") {
		t.Fatalf("expected loading placeholder, got %q", got)
	}
}

func TestModelTabKeys(t *testing.T) {
	m, shell := newModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := shell.State().ActiveTab; got != dashboard.TabSectors {
		t.Fatalf("expected sectors after tab, got %s", got)
	}
	m = press(t, m, runes("4"))
	if got := shell.State().ActiveTab; got != dashboard.TabAIInsights {
		t.Fatalf("expected ai-insights after 4, got %s", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := shell.State().ActiveTab; got != dashboard.TabPerformance {
		t.Fatalf("expected performance after shift+tab, got %s", got)
	}
	if m.Page().State.ActiveTab != dashboard.TabPerformance {
		t.Fatalf("expected page to follow the tab switch")
	}
}

func TestModelTimeRangeThemeAndRefresh(t *testing.T) {
	m, shell := newModel(t)

	m = press(t, m, runes("t"))
	if got := shell.State().TimeRange; got != dashboard.TimeRange30d {
		t.Fatalf("expected 30d, got %s", got)
	}

	dark := m.Page().Header.DarkMode
	m = press(t, m, runes("d"))
	if m.Page().Header.DarkMode == dark {
		t.Fatalf("expected dark mode to toggle")
	}

	m = press(t, m, runes("r"))
	if !shell.State().Refreshing {
		t.Fatalf("expected refresh to start")
	}
	if m.Status() != "" {
		t.Fatalf("unexpected status %q", m.Status())
	}
	m = press(t, m, runes("r"))
	if !strings.Contains(m.Status(), "refresh already in progress") {
		t.Fatalf("expected busy status, got %q", m.Status())
	}
}

func TestModelSearch(t *testing.T) {
	m, _ := newModel(t)

	m = update(m, runes("/"))
	if !m.search.Focused() {
		t.Fatalf("expected search input to be focused")
	}
	m = update(m, runes("heatmap"))
	if got := m.search.Value(); got != "heatmap" {
		t.Fatalf("expected typed query, got %q", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.search.Focused() {
		t.Fatalf("expected search to blur after enter")
	}
	if !strings.HasPrefix(m.Status(), `"heatmap": 1 cards`) {
		t.Fatalf("unexpected status %q", m.Status())
	}
	if m.Page().Header.Search != "heatmap" {
		t.Fatalf("expected header to carry the query, got %q", m.Page().Header.Search)
	}
}

func TestModelInsightCarousel(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, runes("n"))
	if m.Status() != "" {
		t.Fatalf("unexpected status %q", m.Status())
	}
	frame := findFrame(m.Page(), dashboard.CardAIInsights)
	if frame == nil {
		t.Fatalf("expected ai insights on overview")
	}
	if got := frame.Data["position"]; got != "2 of 4" {
		t.Fatalf("expected second insight, got %v", got)
	}

	m = press(t, m, runes("3"))
	m = press(t, m, runes("n"))
	if !strings.Contains(m.Status(), "no insight carousel") {
		t.Fatalf("expected missing carousel status, got %q", m.Status())
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestModelWaitsForEvents(t *testing.T) {
	events := make(chan dashboard.ViewEvent, 1)
	m := New(Options{Events: events})

	events <- dashboard.ViewEvent{SessionID: "tui", Reason: dashboard.ReasonTheme}
	msg := m.waitForEvent()()
	event, ok := msg.(ViewEventMsg)
	if !ok || event.Reason != dashboard.ReasonTheme {
		t.Fatalf("expected theme event, got %#v", msg)
	}

	close(events)
	if _, ok := m.waitForEvent()().(eventsClosedMsg); !ok {
		t.Fatalf("expected closed message")
	}
}

func findFrame(page dashboard.Page, id dashboard.CardID) *dashboard.CardFrame {
	for _, row := range page.Rows {
		for i := range row {
			if row[i].ID == id {
				return &row[i]
			}
		}
	}
	return nil
}
