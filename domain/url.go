package domain

import (
	"strings"

	"github.com/iw2rmb/learnspan/source"
)

// URL is a browser address bar.
type URL struct{ base }

func NewURL(opt Options) *URL { return &URL{base: newBase(opt)} }

func (*URL) Name() string { return "url" }

var addressBarIDs = []string{"urlbar", "urlbar-input", "omnibox", "address-bar"}

func (*URL) Matches(a source.Attributes) bool {
	if a.Role == source.RolePasswordText {
		return false
	}
	if a.HasHint("url") || strings.EqualFold(a.Attr("xml-roles"), "url") {
		return true
	}
	for _, id := range addressBarIDs {
		if strings.EqualFold(a.Attr("id"), id) {
			return true
		}
	}
	ph := strings.ToLower(a.Attr("placeholder-text"))
	return a.Role == source.RoleEntry && strings.Contains(ph, "address")
}

func (u *URL) ReadContext(src source.TextSource) (Context, error) {
	return u.genericContext(src, true)
}

// AutoSeparator always consults the URL parser, so that the first label of a
// host name already gets a dot.
func (u *URL) AutoSeparator(context string) string {
	chunk := lastChunk(context)
	if chunk == "" {
		return ""
	}
	return u.urls.AutoSeparator(chunk)
}

func (*URL) CanSpellCheck(string) bool  { return false }
func (*URL) CanAutoCorrect(string) bool { return false }
func (*URL) CanAutoPunctuate() bool     { return false }
