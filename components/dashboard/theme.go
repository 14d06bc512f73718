package dashboard

import (
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// Theme is a named palette plus the matching chart theme.
type Theme struct {
	Name       string            `json:"name"`
	ChartTheme string            `json:"chart_theme"`
	Tokens     map[string]string `json:"tokens"`
}

// ThemeSet holds the dark and light variants toggled by the shell.
type ThemeSet struct {
	Dark  Theme `json:"dark"`
	Light Theme `json:"light"`
}

// DefaultThemes returns the stock palettes. Empty chart themes fall back to
// chalk (dark) and westeros (light).
func DefaultThemes(darkChart, lightChart string) ThemeSet {
	if darkChart == "" {
		darkChart = types.ThemeChalk
	}
	if lightChart == "" {
		lightChart = types.ThemeWesteros
	}
	return ThemeSet{
		Dark: Theme{
			Name:       "dark",
			ChartTheme: darkChart,
			Tokens: map[string]string{
				"background": "#0b0d12",
				"foreground": "#e6e8ee",
				"card":       "#131722",
				"border":     "#242a38",
				"muted":      "#8a93a6",
				"chart-1":    "#6366f1",
				"chart-2":    "#22c55e",
				"chart-3":    "#f59e0b",
				"chart-4":    "#ef4444",
				"chart-5":    "#06b6d4",
			},
		},
		Light: Theme{
			Name:       "light",
			ChartTheme: lightChart,
			Tokens: map[string]string{
				"background": "#ffffff",
				"foreground": "#111827",
				"card":       "#f8fafc",
				"border":     "#e2e8f0",
				"muted":      "#64748b",
				"chart-1":    "#4f46e5",
				"chart-2":    "#16a34a",
				"chart-3":    "#d97706",
				"chart-4":    "#dc2626",
				"chart-5":    "#0891b2",
			},
		},
	}
}

// Select returns the dark or light variant.
func (s ThemeSet) Select(dark bool) Theme {
	if dark {
		return s.Dark
	}
	return s.Light
}

func (s ThemeSet) withDefaults() ThemeSet {
	def := DefaultThemes("", "")
	if s.Dark.Name == "" {
		s.Dark = def.Dark
	}
	if s.Light.Name == "" {
		s.Light = def.Light
	}
	return s
}

// CSSVariables normalizes token keys into CSS variable names.
func (t Theme) CSSVariables() map[string]string {
	if len(t.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(t.Tokens))
	for key, value := range t.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variables as a style attribute value in
// key order.
func (t Theme) CSSVariablesInline() string {
	vars := t.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		value := vars[key]
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
