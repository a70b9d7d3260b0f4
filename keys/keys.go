// Package keys describes key presses as seen by the text tracker.
package keys

import "strings"

// Code identifies keys that carry meaning beyond their label.
type Code int

const (
	CodeNone Code = iota
	CodeReturn
	CodeKPEnter
	CodeBackSpace
	CodeDelete
	CodeTab
	CodeEscape
	CodeLeft
	CodeRight
	CodeUp
	CodeDown
	CodeHome
	CodeEnd
	CodeSpace
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

func (m Modifiers) Has(mod Modifiers) bool { return m&mod != 0 }

// Key is one key press or release.
type Key struct {
	Code  Code
	Label string // text produced by the key, "" for non-text keys
	Mods  Modifiers
}

// Text returns a key that types label.
func Text(label string) Key {
	if label == " " {
		return Key{Code: CodeSpace, Label: label}
	}
	return Key{Label: label}
}

// IsText reports whether the key produces text.
func (k Key) IsText() bool {
	return k.Label != "" && !k.Mods.Has(ModCtrl) && !k.Mods.Has(ModAlt)
}

func (k Key) IsEnter() bool {
	return k.Code == CodeReturn || k.Code == CodeKPEnter
}

// IsCtrl reports whether the key is Ctrl+letter (case-insensitive).
func (k Key) IsCtrl(letter string) bool {
	return k.Mods.Has(ModCtrl) && strings.EqualFold(k.Label, letter)
}

// Named returns the key for a symbolic name such as "Return" or "ctrl+c".
// Unknown names are treated as text labels.
func Named(name string) Key {
	mods := Modifiers(0)
	rest := name
	for {
		i := strings.IndexByte(rest, '+')
		if i <= 0 || i == len(rest)-1 {
			break
		}
		switch strings.ToLower(rest[:i]) {
		case "ctrl", "control":
			mods |= ModCtrl
		case "shift":
			mods |= ModShift
		case "alt":
			mods |= ModAlt
		case "super":
			mods |= ModSuper
		default:
			return Key{Label: name}
		}
		rest = rest[i+1:]
	}

	k := Key{Mods: mods}
	switch strings.ToLower(rest) {
	case "return", "enter":
		k.Code = CodeReturn
	case "kp_enter":
		k.Code = CodeKPEnter
	case "backspace":
		k.Code = CodeBackSpace
	case "delete":
		k.Code = CodeDelete
	case "tab":
		k.Code = CodeTab
	case "escape", "esc":
		k.Code = CodeEscape
	case "left":
		k.Code = CodeLeft
	case "right":
		k.Code = CodeRight
	case "up":
		k.Code = CodeUp
	case "down":
		k.Code = CodeDown
	case "home":
		k.Code = CodeHome
	case "end":
		k.Code = CodeEnd
	case "space":
		k.Code = CodeSpace
		k.Label = " "
	default:
		k.Label = rest
	}
	return k
}
