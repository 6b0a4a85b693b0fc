package tui

import "github.com/charmbracelet/bubbles/key"

// boardKeys are the bindings active on the board screen.
type boardKeys struct {
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Recommend key.Binding
	Generate  key.Binding
	Save      key.Binding
	Toggle    key.Binding
	Export    key.Binding
	Scroll    key.Binding
	Cancel    key.Binding
	Logout    key.Binding
	Quit      key.Binding
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Recommend: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recommend")),
		Generate:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Toggle:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "requirements")),
		Export:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "export")),
		Scroll:    key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "scroll")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Recommend, k.Generate, k.Save, k.Toggle, k.Export, k.Logout, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Delete},
		{k.Recommend, k.Generate, k.Save, k.Export},
		{k.Toggle, k.Scroll, k.Cancel, k.Logout, k.Quit},
	}
}
