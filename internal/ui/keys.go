package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// Search
	Submit      key.Binding
	FocusSearch key.Binding
	Tooltip     key.Binding

	// Pagination
	PrevPage key.Binding
	NextPage key.Binding

	// Fault boundary
	Fault  key.Binding
	Reload key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next control"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous control"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave search box"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Focus search"),
		),
		Tooltip: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Search tips"),
		),

		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "p", "pgup"),
			key.WithHelp("←/p", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "n", "pgdown"),
			key.WithHelp("→/n", "Next page"),
		),

		Fault: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "Error Button"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
	}
}

// pageKeysWhileTyping limits pagination to keys the search box does not consume.
func pageKeysWhileTyping() (prev, next key.Binding) {
	return key.NewBinding(key.WithKeys("pgup")), key.NewBinding(key.WithKeys("pgdown"))
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Search
		{k.Submit, k.FocusSearch, k.Escape, k.Tooltip},
		// Navigation
		{k.PrevPage, k.NextPage, k.Tab, k.ShiftTab},
		// General
		{k.CycleTheme, k.Fault, k.Help, k.Quit, k.ForceQuit},
	}
}
