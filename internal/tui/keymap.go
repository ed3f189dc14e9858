package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding

	// Board
	Toggle  key.Binding
	Connect key.Binding
	Cancel  key.Binding
	Submit  key.Binding

	// Assistant modes
	ModeFast     key.Binding
	ModeSmart    key.Binding
	ModeCreative key.Binding

	// Application
	ToggleTheme key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "board/chat"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("Space/x", "toggle owned"),
		),
		Connect: key.NewBinding(
			key.WithKeys("c", "/"),
			key.WithHelp("c", "connect user"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),

		ModeFast: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("Ctrl+F", "fast"),
		),
		ModeSmart: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "smart"),
		),
		ModeCreative: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("Ctrl+G", "creative"),
		),

		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// BoardHelp returns key bindings shown under the badge board.
func (k KeyMap) BoardHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Connect, k.SwitchView, k.ToggleTheme, k.Quit}
}

// ChatHelp returns key bindings shown under the chat.
func (k KeyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ModeFast, k.ModeSmart, k.ModeCreative, k.SwitchView, k.ToggleTheme, k.ForceQuit}
}
