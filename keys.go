package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	NextRow   key.Binding
	PrevRow   key.Binding
	NextField key.Binding
	PrevField key.Binding
	Edit      key.Binding
	Delete    key.Binding
	CopyCode  key.Binding
	CopyShare key.Binding
	Paste     key.Binding
	SaveCode  key.Binding
	SavePNG   key.Binding
	Import    key.Binding
	Nudge     key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

var defaultKeys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	NextRow: key.NewBinding(
		key.WithKeys("]", "n"),
		key.WithHelp("]/n", "next waypoint"),
	),
	PrevRow: key.NewBinding(
		key.WithKeys("[", "p"),
		key.WithHelp("[/p", "previous waypoint"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter", "e"),
		key.WithHelp("enter/e", "edit field"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d", "delete waypoint"),
	),
	CopyCode: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy code"),
	),
	CopyShare: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy share link"),
	),
	Paste: key.NewBinding(
		key.WithKeys("v", "P"),
		key.WithHelp("v", "import code from clipboard"),
	),
	SaveCode: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save code"),
	),
	SavePNG: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "export PNG"),
	),
	Import: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "import code file"),
	),
	Nudge: key.NewBinding(
		key.WithKeys("h", "j", "k", "l", "left", "down", "up", "right",
			"H", "J", "K", "L", "shift+left", "shift+down", "shift+up", "shift+right"),
		key.WithHelp("hjkl", "nudge waypoint"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
