package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// demoKeyMap holds the demo's command keys. Undo and Redo are applied by
// the text source like any other editing key; they are bound here for help.
type demoKeyMap struct {
	Accept  key.Binding
	Flush   key.Binding
	Discard key.Binding
	Pause   key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Quit    key.Binding
}

func defaultDemoKeyMap() demoKeyMap {
	return demoKeyMap{
		Accept:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "accept the first suggestion")),
		Flush:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "learn pending text now")),
		Discard: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "drop pending text")),
		Pause:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pause or resume learning")),
		Undo:    key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+q"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp is shown under the text field.
func (k demoKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Flush, k.Discard, k.Pause, k.Quit}
}

func (k demoKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Accept, k.Flush, k.Discard, k.Pause},
		{k.Undo, k.Redo, k.Quit},
	}
}

// usage lists every binding, one per line, for the command's long help.
func (k demoKeyMap) usage() string {
	var b strings.Builder
	for _, col := range k.FullHelp() {
		for _, kb := range col {
			h := kb.Help()
			fmt.Fprintf(&b, "  %-7s %s\n", h.Key, h.Desc)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
