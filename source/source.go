// Package source describes the editable text that the tracker observes.
package source

import (
	"errors"
	"slices"
)

// ErrUnavailable reports that the editable went away or refused a query.
var ErrUnavailable = errors.New("source: text unavailable")

// Role is the accessibility role of an editable.
type Role string

const (
	RoleText         Role = "text"
	RoleEntry        Role = "entry"
	RoleParagraph    Role = "paragraph"
	RoleDocument     Role = "document text"
	RoleTerminal     Role = "terminal"
	RolePasswordText Role = "password text"
)

// InterfaceEditableText is listed in Attributes.Interfaces by editables that
// accept text edits.
const InterfaceEditableText = "EditableText"

// Attributes is what the accessibility layer reports about an editable.
type Attributes struct {
	Role        Role
	Interfaces  []string
	Toolkit     string
	ObjectAttrs map[string]string
	WindowClass string
	Hints       []string // input hints such as "url" or "email"
	SingleLine  bool
}

// Attr returns the object attribute k, or "".
func (a Attributes) Attr(k string) string {
	return a.ObjectAttrs[k]
}

func (a Attributes) HasInterface(name string) bool {
	return slices.Contains(a.Interfaces, name)
}

func (a Attributes) HasHint(h string) bool {
	return slices.Contains(a.Hints, h)
}

// IsEditable reports whether the editable accepts text input.
func (a Attributes) IsEditable() bool {
	return a.HasInterface(InterfaceEditableText) || a.Role == RoleTerminal
}

// TextSource is the editable text the tracker reads from. Offsets are
// character offsets. Failed queries return errors wrapping ErrUnavailable.
type TextSource interface {
	CaretOffset() (int, error)
	CharCount() (int, error)
	// Text returns the characters in [start, end); end < 0 means the end of
	// the text.
	Text(start, end int) (string, error)
	Attributes() Attributes
	// CanInsertDirectly reports whether text can be inserted without
	// synthesizing key presses.
	CanInsertDirectly() bool
}

type EventKind uint8

const (
	EventInsert EventKind = iota
	EventDelete
	EventCaretMoved
)

func (k EventKind) String() string {
	switch k {
	case EventInsert:
		return "insert"
	case EventDelete:
		return "delete"
	case EventCaretMoved:
		return "caret"
	default:
		return "unknown"
	}
}

// Origin is where a text change came from, as far as it is known.
type Origin uint8

const (
	OriginUnknown Origin = iota
	OriginTyped
	OriginPasted
	OriginUndo
	OriginProgrammatic
)

func (o Origin) String() string {
	switch o {
	case OriginTyped:
		return "typed"
	case OriginPasted:
		return "pasted"
	case OriginUndo:
		return "undo"
	case OriginProgrammatic:
		return "programmatic"
	default:
		return "unknown"
	}
}

// Event is one change notification. For caret moves Pos is the new caret
// and Length is 0.
type Event struct {
	Kind   EventKind
	Pos    int
	Length int
	Origin Origin
}
