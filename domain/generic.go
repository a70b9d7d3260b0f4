package domain

import (
	"slices"

	"github.com/iw2rmb/learnspan/source"
)

// Generic is any editable text field or document.
type Generic struct{ base }

func NewGeneric(opt Options) *Generic { return &Generic{base: newBase(opt)} }

func (*Generic) Name() string { return "generic" }

var genericRoles = []source.Role{
	source.RoleText,
	source.RoleEntry,
	source.RoleParagraph,
	source.RoleDocument,
}

func (*Generic) Matches(a source.Attributes) bool {
	return a.IsEditable() && slices.Contains(genericRoles, a.Role)
}

func (g *Generic) ReadContext(src source.TextSource) (Context, error) {
	return g.genericContext(src, true)
}

// Fallback matches anything. Its context never claims to reach the
// beginning of the text.
type Fallback struct{ base }

func NewFallback(opt Options) *Fallback { return &Fallback{base: newBase(opt)} }

func (*Fallback) Name() string                   { return "fallback" }
func (*Fallback) Matches(source.Attributes) bool { return true }

func (f *Fallback) ReadContext(src source.TextSource) (Context, error) {
	return f.genericContext(src, false)
}
