package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/learnspan/internal/textseg"
	"github.com/iw2rmb/learnspan/lm"
)

type demoStyle struct {
	Title      lipgloss.Style
	Text       lipgloss.Style
	Cursor     lipgloss.Style
	Status     lipgloss.Style
	Suggestion lipgloss.Style
	Help       lipgloss.Style
}

func defaultDemoStyle() demoStyle {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return demoStyle{
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:       lipgloss.NewStyle(),
		Cursor:     lipgloss.NewStyle().Reverse(true),
		Status:     dim,
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Help:       dim,
	}
}

func (m demoModel) View() string {
	text, caret := m.src.Snapshot()

	var b strings.Builder
	domain := "none"
	if d := m.s.Domain(); d != nil {
		domain = d.Name()
	}
	b.WriteString(m.style.Title.Render(fmt.Sprintf("learnspan · %s · learning %s", domain, m.s.PauseLearning())))
	b.WriteString("\n\n")
	b.WriteString(renderText(text, caret, m.style))
	b.WriteString("\n\n")

	var words []string
	for i, s := range m.suggestions {
		words = append(words, fmt.Sprintf("%d %s", i+1, s.Word))
	}
	b.WriteString(m.fit(m.style.Suggestion, strings.Join(words, "   ")))
	b.WriteString("\n")

	var sets []string
	for _, set := range m.s.Pending() {
		sets = append(sets, "["+lm.Join(set)+"]")
	}
	b.WriteString(m.fit(m.style.Status, fmt.Sprintf("pending %d spans: %s", len(m.s.Spans()), strings.Join(sets, " "))))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.fit(m.style.Status, m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

// fit truncates s to the window width before styling.
func (m demoModel) fit(style lipgloss.Style, s string) string {
	if m.width > 0 {
		s = runewidth.Truncate(s, m.width, "…")
	}
	return style.Render(s)
}

// renderText draws text with the caret as a reversed cell.
func renderText(text string, caret int, style demoStyle) string {
	before := textseg.RuneSlice(text, 0, caret)
	after := textseg.RuneSlice(text, caret, textseg.RuneLen(text))

	at := " "
	if g := textseg.Split(after); len(g) > 0 && g[0] != "\n" {
		at = g[0]
		after = after[len(at):]
	}
	return style.Text.Render(before) + style.Cursor.Render(at) + style.Text.Render(after)
}
