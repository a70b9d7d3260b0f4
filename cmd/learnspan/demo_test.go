package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/learnspan/keys"
)

func TestKeyFromTea(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want keys.Key
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, keys.Key{Label: "a"}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true}, keys.Key{Label: "b", Mods: keys.ModAlt}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, keys.Key{Code: keys.CodeSpace, Label: " "}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, keys.Key{Code: keys.CodeReturn}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, keys.Key{Code: keys.CodeBackSpace}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Key{Label: "c", Mods: keys.ModCtrl}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := keyFromTea(tt.msg); got != tt.want {
				t.Fatalf("keyFromTea() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCurrentWord(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"", ""},
		{"hello wor", "wor"},
		{"hello ", ""},
		{"end.", ""},
	}
	for _, tt := range tests {
		if got := currentWord(tt.text); got != tt.want {
			t.Fatalf("currentWord(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDemoAttributes(t *testing.T) {
	for _, role := range []string{"text", "terminal", "url", "password"} {
		if _, err := demoAttributes(role); err != nil {
			t.Fatalf("demoAttributes(%q): %v", role, err)
		}
	}
	if _, err := demoAttributes("gui"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
