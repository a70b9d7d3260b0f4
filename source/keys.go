package source

import (
	"github.com/iw2rmb/learnspan/buffer"
	"github.com/iw2rmb/learnspan/keys"
)

// ApplyKey performs the editing action of k. Ctrl+Z undoes, Ctrl+Y and
// Ctrl+Shift+Z redo. Other keys with Ctrl or Alt held and unknown keys do
// nothing.
func (s *BufferSource) ApplyKey(k keys.Key) {
	if k.IsText() {
		s.Type(k.Label)
		return
	}
	switch {
	case k.IsCtrl("z") && !k.Mods.Has(keys.ModShift):
		s.Undo()
		return
	case k.IsCtrl("y"), k.IsCtrl("z"):
		s.Redo()
		return
	case k.Mods.Has(keys.ModCtrl) || k.Mods.Has(keys.ModAlt):
		return
	}

	switch k.Code {
	case keys.CodeReturn, keys.CodeKPEnter:
		s.Type("\n")
	case keys.CodeTab:
		s.Type("\t")
	case keys.CodeBackSpace:
		s.Edit(func(b *buffer.Buffer) { b.DeleteBackward() })
	case keys.CodeDelete:
		s.Edit(func(b *buffer.Buffer) { b.DeleteForward() })
	case keys.CodeLeft:
		s.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case keys.CodeRight:
		s.move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case keys.CodeUp:
		s.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case keys.CodeDown:
		s.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})
	case keys.CodeHome:
		s.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case keys.CodeEnd:
		s.move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	}
}

func (s *BufferSource) move(m buffer.Move) {
	s.Edit(func(b *buffer.Buffer) { b.Move(m) })
}

// Undo reverts the last edit step of the buffer.
func (s *BufferSource) Undo() {
	s.Edit(func(b *buffer.Buffer) { b.Undo() })
}

// Redo reapplies the last undone edit step.
func (s *BufferSource) Redo() {
	s.Edit(func(b *buffer.Buffer) { b.Redo() })
}
