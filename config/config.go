// Package config provides configuration loading for learnspan using TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// PauseLearning suspends learning. Latched pauses end with the next focus
// change; locked pauses persist until cleared.
type PauseLearning int

const (
	PauseOff PauseLearning = iota
	PauseLatched
	PauseLocked
)

func (p PauseLearning) String() string {
	switch p {
	case PauseOff:
		return "off"
	case PauseLatched:
		return "latched"
	case PauseLocked:
		return "locked"
	default:
		return fmt.Sprintf("PauseLearning(%d)", int(p))
	}
}

func (p PauseLearning) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PauseLearning) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "off", "", "0":
		*p = PauseOff
	case "latched", "1":
		*p = PauseLatched
	case "locked", "2":
		*p = PauseLocked
	default:
		return fmt.Errorf("pause_learning: unknown value %q", b)
	}
	return nil
}

// FocusLoss is what happens to pending changes when focus moves away.
type FocusLoss string

const (
	FocusLossCommit  FocusLoss = "commit"
	FocusLossDiscard FocusLoss = "discard"
)

// Learning settings
type Learning struct {
	AutoLearn         bool          `toml:"auto_learn"`
	PauseLearning     PauseLearning `toml:"pause_learning"`
	ScratchIntervalMS int           `toml:"scratch_interval_ms"`
	IdleCommitSeconds int           `toml:"idle_commit_seconds"` // 0 disables idle commits
	FocusLoss         FocusLoss     `toml:"focus_loss"`
	MaxPasteTokens    int           `toml:"max_paste_tokens"` // characters of a paste that are learned
}

// CanAutoLearn reports whether learning is on and not paused.
func (l Learning) CanAutoLearn() bool {
	return l.AutoLearn && l.PauseLearning == PauseOff
}

func (l Learning) ScratchInterval() time.Duration {
	return time.Duration(l.ScratchIntervalMS) * time.Millisecond
}

func (l Learning) IdleCommit() time.Duration {
	return time.Duration(l.IdleCommitSeconds) * time.Second
}

// Typing assistance settings
type Typing struct {
	PunctuationAssistance bool `toml:"punctuation_assistance"`
	AccentInsensitive     bool `toml:"accent_insensitive"`
}

// Context extraction settings
type Context struct {
	DebounceMS   int `toml:"debounce_ms"`
	WindowBefore int `toml:"window_before"`
	WindowAfter  int `toml:"window_after"`
}

func (c Context) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Log settings
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty means stderr
}

// Model settings
type Model struct {
	Path string `toml:"path"` // SQLite file holding learned counts
}

// Config is the main configuration struct
type Config struct {
	Learning Learning `toml:"learning"`
	Typing   Typing   `toml:"typing"`
	Context  Context  `toml:"context"`
	Log      Log      `toml:"log"`
	Model    Model    `toml:"model"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Learning: Learning{
			AutoLearn:         true,
			PauseLearning:     PauseOff,
			ScratchIntervalMS: 1000,
			IdleCommitSeconds: 300,
			FocusLoss:         FocusLossCommit,
			MaxPasteTokens:    2,
		},
		Typing: Typing{
			PunctuationAssistance: true,
			AccentInsensitive:     false,
		},
		Context: Context{
			DebounceMS:   20,
			WindowBefore: 256,
			WindowAfter:  100,
		},
		Log: Log{
			Level: "info",
		},
		Model: Model{
			Path: "",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "learnspan"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the config at path, or at ConfigPath when path is empty,
// layered on top of defaults. A missing file yields the defaults; unknown
// keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("loading config from %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Learning.FocusLoss {
	case FocusLossCommit, FocusLossDiscard:
	default:
		return fmt.Errorf("learning.focus_loss: want %q or %q, got %q", FocusLossCommit, FocusLossDiscard, c.Learning.FocusLoss)
	}
	if c.Learning.ScratchIntervalMS < 0 {
		return fmt.Errorf("learning.scratch_interval_ms: negative value %d", c.Learning.ScratchIntervalMS)
	}
	if c.Learning.IdleCommitSeconds < 0 {
		return fmt.Errorf("learning.idle_commit_seconds: negative value %d", c.Learning.IdleCommitSeconds)
	}
	if c.Learning.MaxPasteTokens < 0 {
		return fmt.Errorf("learning.max_paste_tokens: negative value %d", c.Learning.MaxPasteTokens)
	}
	if c.Context.DebounceMS < 0 || c.Context.WindowBefore <= 0 || c.Context.WindowAfter < 0 {
		return errors.New("context: debounce_ms and window_after must be >= 0, window_before > 0")
	}
	return nil
}

// DefaultTOML returns the default configuration as a TOML string.
// Used by `learnspan config init` to generate a user config file.
func DefaultTOML() string {
	return `# learnspan configuration
# Save to ~/.config/learnspan/config.toml and customize
# Only include settings you want to change from defaults

[learning]
auto_learn = true             # Learn typed text into the model
pause_learning = "off"        # "off", "latched" (until focus changes) or "locked"
scratch_interval_ms = 1000    # Max delay before the scratch model catches up
idle_commit_seconds = 300     # Commit pending text after this much idle time (0 = never)
focus_loss = "commit"         # "commit" or "discard" pending text on focus change
max_paste_tokens = 2          # Characters of a paste that are learned

[typing]
punctuation_assistance = true # Remove the auto-inserted space before punctuation
accent_insensitive = false    # Match "cafe" to "café" in suggestions

[context]
debounce_ms = 20              # Delay before re-reading the caret context
window_before = 256           # Characters read before the caret
window_after = 100            # Characters read after the caret

[log]
level = "info"                # "debug", "info", "warn" or "error"
file = ""                     # Log file (empty = stderr)

[model]
path = ""                     # SQLite file for learned words (empty = in-memory only)
`
}
