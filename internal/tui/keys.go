package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle    key.Binding
	Reset     key.Binding
	Inc       key.Binding
	Dec       key.Binding
	Edit      key.Binding
	Done      key.Binding
	Up        key.Binding
	Down      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Edit, k.Inc, k.Dec, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset},
		{k.Edit, k.Done, k.Inc, k.Dec},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Toggle:    key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p/space", "play/stop")),
	Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Inc:       key.NewBinding(key.WithKeys("+", "=", "right", "l"), key.WithHelp("+", "more terms")),
	Dec:       key.NewBinding(key.WithKeys("-", "left", "h"), key.WithHelp("-", "fewer terms")),
	Edit:      key.NewBinding(key.WithKeys("tab", "i"), key.WithHelp("tab", "edit terms")),
	Done:      key.NewBinding(key.WithKeys("enter", "esc", "tab"), key.WithHelp("enter", "done")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}
