package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	BigLeft  key.Binding
	BigRight key.Binding
	Reset    key.Binding
	ResetAll key.Binding
	Year     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next")),
		Left:     key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "less")),
		Right:    key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "more")),
		BigLeft:  key.NewBinding(key.WithKeys("shift+left", "pgdown"), key.WithHelp("pgdn", "less ×10")),
		BigRight: key.NewBinding(key.WithKeys("shift+right", "pgup"), key.WithHelp("pgup", "more ×10")),
		Reset:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "zero")),
		ResetAll: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Year:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.BigRight, k.ResetAll, k.Year, k.Quit}
}
