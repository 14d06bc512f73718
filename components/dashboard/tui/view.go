package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
)

const maxListRows = 4

func (m Model) View() string {
	if m.page.SessionID == "" {
		if m.err != nil {
			return "error: " + m.err.Error() + "\n"
		}
		return "loading dashboard...\n"
	}
	p := newPalette(m.page.Theme)

	var b strings.Builder
	b.WriteString(m.header(p))
	b.WriteString("\n")
	b.WriteString(m.tabBar(p))
	b.WriteString("   ")
	b.WriteString(m.rangeBar(p))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	if nav := m.activeNav(); nav != "" {
		b.WriteString("   ")
		b.WriteString(p.muted.Render("section: " + nav))
	}
	b.WriteString("\n\n")

	for _, frame := range m.page.Always {
		if frame.ID == dashboard.CardKPIs {
			b.WriteString(m.kpis(p, frame))
			b.WriteString("\n")
		}
	}
	for _, row := range m.page.Rows {
		b.WriteString(m.row(p, row))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(p.warn.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(p.bad.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(p.muted.Render(helpLine(m.keys)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) header(p palette) string {
	h := m.page.Header
	parts := []string{
		p.title.Render(h.Title),
		p.muted.Render(h.Subtitle),
	}
	if h.Clock != "" {
		parts = append(parts, p.muted.Render(h.Clock))
	}
	if h.Notifications > 0 {
		parts = append(parts, p.badge.Render(fmt.Sprintf("● %d", h.Notifications)))
	}
	mode := "light"
	if h.DarkMode {
		mode = "dark"
	}
	parts = append(parts, p.muted.Render("["+mode+"]"))
	if h.Refreshing {
		parts = append(parts, p.accent.Render("refreshing..."))
	}
	return strings.Join(parts, "  ")
}

func (m Model) tabBar(p palette) string {
	tabs := dashboard.Tabs()
	cells := make([]string, len(tabs))
	for i, tab := range tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Label())
		if tab == m.page.State.ActiveTab {
			cells[i] = p.active.Render(label)
		} else {
			cells[i] = p.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) rangeBar(p palette) string {
	ranges := dashboard.TimeRanges()
	cells := make([]string, len(ranges))
	for i, r := range ranges {
		if r == m.page.State.TimeRange {
			cells[i] = p.accent.Render(string(r))
		} else {
			cells[i] = p.muted.Render(string(r))
		}
	}
	return strings.Join(cells, " ")
}

func (m Model) activeNav() string {
	if m.page.Sidebar == nil {
		return ""
	}
	active, _ := m.page.Sidebar.Data["active"].(string)
	return active
}

func (m Model) kpis(p palette, frame dashboard.CardFrame) string {
	tiles, _ := frame.Data["tiles"].([]dashboard.WidgetData)
	if len(tiles) == 0 {
		return ""
	}
	width := m.columnWidth(len(tiles))
	boxes := make([]string, len(tiles))
	for i, tile := range tiles {
		tone, _ := tile["tone"].(string)
		body := lipgloss.JoinVertical(lipgloss.Left,
			p.muted.Render(str(tile["title"])),
			p.title.Render(str(tile["value"])),
			p.tone(tone).Render(str(tile["change"])),
		)
		boxes[i] = p.card.Width(width).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) row(p palette, frames []dashboard.CardFrame) string {
	width := m.columnWidth(len(frames))
	boxes := make([]string, len(frames))
	for i, frame := range frames {
		lines := []string{p.title.Render(frame.Title)}
		if frame.Error != "" {
			lines = append(lines, p.bad.Render(frame.Error))
		} else {
			lines = append(lines, summarize(p, frame)...)
		}
		boxes[i] = p.card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m Model) columnWidth(n int) int {
	if n <= 0 {
		n = 1
	}
	// border and padding take four cells per box
	w := m.width/n - 4
	if w < 16 {
		w = 16
	}
	return w
}

// summarize picks the lines worth showing for a card in a terminal; charts
// are skipped in favour of the tabular data cards carry next to them.
func summarize(p palette, frame dashboard.CardFrame) []string {
	data := frame.Data
	if insight, ok := data["insight"].(dashboard.WidgetData); ok {
		tone, _ := insight["tone"].(string)
		lines := []string{
			p.tone(tone).Render(str(insight["type_label"])) + "  " + p.muted.Render(str(data["position"])),
			str(insight["title"]),
			p.muted.Render(fmt.Sprintf("confidence %s, impact %s", str(insight["confidence"]), str(insight["impact"]))),
		}
		if loading, _ := data["loading"].(bool); loading {
			lines = append(lines, p.accent.Render("generating..."))
		}
		return lines
	}
	for _, list := range []struct {
		key    string
		fields [2]string
	}{
		{"stages", [2]string{"stage", "rate"}},
		{"sectors", [2]string{"sector", "share"}},
		{"countries", [2]string{"country", "share_pc"}},
		{"items", [2]string{"title", "timestamp"}},
		{"insights", [2]string{"kind", "metric"}},
	} {
		rows, ok := data[list.key].([]dashboard.WidgetData)
		if !ok {
			continue
		}
		out := make([]string, 0, maxListRows)
		for i, row := range rows {
			if i == maxListRows {
				break
			}
			tone, _ := row["tone"].(string)
			out = append(out, str(row[list.fields[0]])+"  "+p.tone(tone).Render(str(row[list.fields[1]])))
		}
		return out
	}
	return scalars(p, data)
}

func scalars(p palette, data dashboard.WidgetData) []string {
	keys := make([]string, 0, len(data))
	for k, v := range data {
		if k == "title" || k == "chart_html" {
			continue
		}
		if _, ok := v.(string); ok && v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if len(keys) > maxListRows {
		keys = keys[:maxListRows]
	}
	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = p.muted.Render(k+": ") + str(data[k])
	}
	return lines
}

func helpLine(keys KeyMap) string {
	bindings := keys.help()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func str(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

