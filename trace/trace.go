// Package trace replays recorded editing sessions. A trace is a YAML file
// describing the focused editable and a list of steps; replaying it drives
// a tracker.Session on a manual clock and reports what was learned.
package trace

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/learnspan/source"
)

// Attributes mirrors source.Attributes in YAML.
type Attributes struct {
	Role        string            `yaml:"role"`
	Interfaces  []string          `yaml:"interfaces,omitempty"`
	Toolkit     string            `yaml:"toolkit,omitempty"`
	ObjectAttrs map[string]string `yaml:"object_attrs,omitempty"`
	WindowClass string            `yaml:"window_class,omitempty"`
	Hints       []string          `yaml:"hints,omitempty"`
	SingleLine  bool              `yaml:"single_line,omitempty"`
}

func (a Attributes) Source() source.Attributes {
	return source.Attributes{
		Role:        source.Role(a.Role),
		Interfaces:  a.Interfaces,
		Toolkit:     a.Toolkit,
		ObjectAttrs: a.ObjectAttrs,
		WindowClass: a.WindowClass,
		Hints:       a.Hints,
		SingleLine:  a.SingleLine,
	}
}

// Focus is an editable receiving focus.
type Focus struct {
	Attributes Attributes `yaml:"attributes"`
	Text       string     `yaml:"text,omitempty"`
	Caret      *int       `yaml:"caret,omitempty"` // nil: end of text
}

// Insert is text that appears without being typed, such as program output.
type Insert struct {
	Text string `yaml:"text"`
	At   int    `yaml:"at"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Type      string        `yaml:"type,omitempty"`      // typed key by key
	Key       string        `yaml:"key,omitempty"`       // named key, e.g. "Return" or "ctrl+c"
	Backspace int           `yaml:"backspace,omitempty"` // number of BackSpace presses
	Undo      int           `yaml:"undo,omitempty"`      // number of Ctrl+Z presses
	Redo      int           `yaml:"redo,omitempty"`      // number of Ctrl+Y presses
	Complete  string        `yaml:"complete,omitempty"`  // accepted word completion
	Paste     string        `yaml:"paste,omitempty"`
	Insert    *Insert       `yaml:"insert,omitempty"`
	Caret     *int          `yaml:"caret,omitempty"`
	Focus     *Focus        `yaml:"focus,omitempty"`
	Pause     string        `yaml:"pause,omitempty"` // off, latched or locked
	Wait      time.Duration `yaml:"wait,omitempty"`
	Flush     bool          `yaml:"flush,omitempty"`
	Discard   bool          `yaml:"discard,omitempty"`
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Type != "", s.Key != "", s.Backspace > 0, s.Undo > 0, s.Redo > 0, s.Complete != "",
		s.Paste != "", s.Insert != nil, s.Caret != nil, s.Focus != nil,
		s.Pause != "", s.Wait > 0, s.Flush, s.Discard,
	} {
		if set {
			n++
		}
	}
	return n
}

// Expect is the outcome a trace asserts.
type Expect struct {
	Text    *string    `yaml:"text,omitempty"`
	Learned [][]string `yaml:"learned"`
}

type Trace struct {
	Name string `yaml:"name,omitempty"`
	// KeyDelay is the time between two key presses.
	KeyDelay time.Duration `yaml:"key_delay,omitempty"`
	Focus    Focus         `yaml:"focus"`
	Steps    []Step        `yaml:"steps"`
	Expect   *Expect       `yaml:"expect,omitempty"`
}

var ErrInvalid = errors.New("trace: invalid")

// Parse decodes a trace. Unknown fields are rejected.
func Parse(data []byte) (*Trace, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var tr Trace
	if err := dec.Decode(&tr); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return &tr, nil
}

// Load reads and parses the trace at path.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load trace: %w", err)
	}
	tr, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tr, nil
}

func (t *Trace) Validate() error {
	if t.Focus.Attributes.Role == "" {
		return fmt.Errorf("%w: focus.attributes.role is required", ErrInvalid)
	}
	for i, st := range t.Steps {
		if n := st.actions(); n != 1 {
			return fmt.Errorf("%w: step %d has %d actions, want 1", ErrInvalid, i+1, n)
		}
		if st.Focus != nil && st.Focus.Attributes.Role == "" {
			return fmt.Errorf("%w: step %d: focus.attributes.role is required", ErrInvalid, i+1)
		}
	}
	return nil
}

// Marshal encodes t as YAML.
func (t *Trace) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
