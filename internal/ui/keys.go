package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	ToggleRole key.Binding
	Up         key.Binding
	Down       key.Binding
	Filter     key.Binding
	Sort       key.Binding
	Assign     key.Binding
	Working    key.Binding
	Meeting    key.Binding
	Break      key.Binding
	Offline    key.Binding
	Increase   key.Binding
	Decrease   key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ToggleRole: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "switch view")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Assign:     key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "assign task")),
	Working:    key.NewBinding(key.WithKeys("1", "w"), key.WithHelp("1/w", "working")),
	Meeting:    key.NewBinding(key.WithKeys("2", "m"), key.WithHelp("2/m", "meeting")),
	Break:      key.NewBinding(key.WithKeys("3", "b"), key.WithHelp("3/b", "break")),
	Offline:    key.NewBinding(key.WithKeys("4", "o"), key.WithHelp("4/o", "offline")),
	Increase:   key.NewBinding(key.WithKeys("+", "=", "l", "right"), key.WithHelp("+", "progress +10")),
	Decrease:   key.NewBinding(key.WithKeys("-", "h", "left"), key.WithHelp("-", "progress -10")),
}

// helpLine renders bindings the way the footer shows them.
func helpLine(bindings ...key.Binding) string {
	s := " "
	for i, b := range bindings {
		if i > 0 {
			s += " │"
		}
		h := b.Help()
		s += " " + h.Key + ": " + h.Desc
	}
	return s
}
