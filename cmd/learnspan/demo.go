package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iw2rmb/learnspan/buffer"
	"github.com/iw2rmb/learnspan/config"
	"github.com/iw2rmb/learnspan/internal/logger"
	"github.com/iw2rmb/learnspan/internal/textseg"
	"github.com/iw2rmb/learnspan/keys"
	"github.com/iw2rmb/learnspan/lm"
	"github.com/iw2rmb/learnspan/source"
	"github.com/iw2rmb/learnspan/tracker"
)

var demoRole string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Type into a tracked text field",
	Long: `Opens an editable text field in the terminal. Edits are tracked and learned
like in a real application.

` + defaultDemoKeyMap().usage(),
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoRole, "role", "text", "field kind: text, terminal, url or password")
	rootCmd.AddCommand(demoCmd)
}

func demoAttributes(role string) (source.Attributes, error) {
	editable := []string{source.InterfaceEditableText}
	switch role {
	case "text":
		return source.Attributes{Role: source.RoleText, Interfaces: editable}, nil
	case "terminal":
		return source.Attributes{Role: source.RoleTerminal}, nil
	case "url":
		return source.Attributes{Role: source.RoleEntry, Interfaces: editable, Hints: []string{"url"}, SingleLine: true}, nil
	case "password":
		return source.Attributes{Role: source.RolePasswordText, Interfaces: editable, SingleLine: true}, nil
	}
	return source.Attributes{}, fmt.Errorf("unknown role %q", role)
}

func runDemo(cmd *cobra.Command, args []string) error {
	attrs, err := demoAttributes(demoRole)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	mem, store, err := openModel(ctx)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	initial := ""
	if demoRole == "terminal" {
		initial = "$ "
	}
	b := buffer.New(initial, buffer.Options{})
	b.SetCursor(b.Len())
	src := source.NewBufferSource(b, attrs)

	s := tracker.New(ctx, tracker.Options{Config: cfg, Model: mem})
	src.Subscribe(s.HandleEvent)
	s.SetSource(src)

	m := newDemoModel(ctx, s, src, mem)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := p.Run()
	s.Close()

	if store != nil {
		if err := store.Save(ctx, mem); err != nil {
			return fmt.Errorf("saving model: %w", err)
		}
		logger.L(ctx).Info("model saved", zap.String("path", cfg.Model.Path))
	}
	return runErr
}

type tickMsg time.Time

const tickInterval = 100 * time.Millisecond

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type demoModel struct {
	ctx   context.Context
	s     *tracker.Session
	src   *source.BufferSource
	mem   *lm.Memory
	keys  demoKeyMap
	help  help.Model
	style demoStyle

	width       int
	height      int
	suggestions []lm.Suggestion
	status      string
}

func newDemoModel(ctx context.Context, s *tracker.Session, src *source.BufferSource, mem *lm.Memory) demoModel {
	style := defaultDemoStyle()
	h := help.New()
	h.Styles.ShortKey = style.Help
	h.Styles.ShortDesc = style.Help
	h.Styles.ShortSeparator = style.Help
	return demoModel{
		ctx:   ctx,
		s:     s,
		src:   src,
		mem:   mem,
		keys:  defaultDemoKeyMap(),
		help:  h,
		style: style,
	}
}

func (m demoModel) Init() tea.Cmd { return tick() }

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if err := m.s.Tick(time.Time(msg)); err != nil {
			logger.L(m.ctx).Warn("idle commit", zap.Error(err))
			m.status = err.Error()
		}
		m.suggest()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Flush):
			m.status = "learned"
			if err := m.s.Flush(); err != nil {
				m.status = err.Error()
			}
		case key.Matches(msg, m.keys.Discard):
			m.s.Discard()
			m.status = "dropped"
		case key.Matches(msg, m.keys.Pause):
			if m.s.PauseLearning() == config.PauseOff {
				m.s.SetPauseLearning(config.PauseLocked)
				m.status = "paused"
			} else {
				m.s.SetPauseLearning(config.PauseOff)
				m.status = "resumed"
			}
		case key.Matches(msg, m.keys.Accept) && len(m.suggestions) > 0:
			m.accept(m.suggestions[0].Word)
		default:
			m.status = ""
			m.press(keyFromTea(msg))
		}
		m.suggest()
	}
	return m, nil
}

func (m demoModel) press(k keys.Key) {
	m.s.KeyPress(k)
	m.src.ApplyKey(k)
	m.s.KeyRelease(k)
}

// accept replaces the word before the caret with word.
func (m demoModel) accept(word string) {
	ctx, _ := m.s.RefreshContext()
	prefix := currentWord(ctx.Text)
	rest := word
	if strings.HasPrefix(word, prefix) {
		rest = word[len(prefix):]
	} else if n := textseg.RuneLen(prefix); n > 0 {
		m.src.DeleteBeforeCaret(n)
	}
	m.s.InsertCompletion(rest)
}

func (m *demoModel) suggest() {
	m.suggestions = nil
	d := m.s.Domain()
	ctx, ok := m.s.Context()
	if d == nil || !ok {
		return
	}
	if currentWord(ctx.Text) == "" && !d.CanSuggestBeforeTyping() {
		return
	}
	m.suggestions = m.mem.Suggest(ctx.Text, 5)
}

// currentWord returns the word ending at the end of text.
func currentWord(text string) string {
	segs := textseg.Segments(text)
	if n := len(segs); n > 0 && textseg.IsWord(segs[n-1].Text) {
		return segs[n-1].Text
	}
	return ""
}

func keyFromTea(msg tea.KeyMsg) keys.Key {
	switch msg.Type {
	case tea.KeyRunes:
		k := keys.Text(string(msg.Runes))
		if msg.Alt {
			k.Mods |= keys.ModAlt
		}
		return k
	case tea.KeySpace:
		return keys.Text(" ")
	}
	return keys.Named(msg.String())
}
