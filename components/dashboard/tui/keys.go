package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard keybindings.
type KeyMap struct {
	NextTab    key.Binding
	PrevTab    key.Binding
	TimeRange  key.Binding
	Refresh    key.Binding
	Theme      key.Binding
	Search     key.Binding
	NextIdea   key.Binding
	Regenerate key.Binding
	Apply      key.Binding
	Cancel     key.Binding
	Quit       key.Binding
	Num1       key.Binding
	Num2       key.Binding
	Num3       key.Binding
	Num4       key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("⇧tab/←", "prev tab")),
		TimeRange:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "time range")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Theme:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark/light")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextIdea:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next insight")),
		Regenerate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "regenerate")),
		Apply:      key.NewBinding(key.WithKeys("enter")),
		Cancel:     key.NewBinding(key.WithKeys("esc")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Num1:       key.NewBinding(key.WithKeys("1")),
		Num2:       key.NewBinding(key.WithKeys("2")),
		Num3:       key.NewBinding(key.WithKeys("3")),
		Num4:       key.NewBinding(key.WithKeys("4")),
	}
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.NextTab, k.TimeRange, k.Refresh, k.Theme, k.Search, k.NextIdea, k.Regenerate, k.Quit}
}
