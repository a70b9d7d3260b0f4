package domain

import (
	"fmt"

	"github.com/iw2rmb/learnspan/source"
)

// Password is a masked entry. Nothing typed into it is read or learned.
type Password struct{ base }

func NewPassword(opt Options) *Password { return &Password{base: newBase(opt)} }

func (*Password) Name() string { return "password" }

func (*Password) Matches(a source.Attributes) bool {
	return a.Role == source.RolePasswordText
}

func (*Password) ReadContext(source.TextSource) (Context, error) {
	return Context{}, fmt.Errorf("%w: password field", ErrContextUnavailable)
}

func (*Password) CanRecordInsertion(source.TextSource, int, int) bool { return false }
func (*Password) CanSuggestBeforeTyping() bool                        { return false }
func (*Password) CanSpellCheck(string) bool                           { return false }
func (*Password) CanAutoCorrect(string) bool                          { return false }
func (*Password) CanGiveKeypressFeedback() bool                       { return false }
func (*Password) CanAutoPunctuate() bool                              { return false }
