// Package term owns the terminal: screen lifecycle, translation of
// tcell key events into chords, and painting of engine snapshots.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/parleychat/parley/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEnter:      key.KeyReturn,
	tcell.KeyEsc:        key.KeyEscape,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// translateKey converts a tcell key event into a chord. ok is false
// for events with no chord representation.
func translateKey(ev *tcell.EventKey) (key.Chord, bool) {
	var mod key.Modifier
	m := ev.Modifiers()
	if m&tcell.ModCtrl != 0 {
		mod |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= key.ModAlt
	}
	if m&tcell.ModShift != 0 {
		mod |= key.ModShift
	}

	if k, ok := specialKeys[ev.Key()]; ok {
		return key.NewSpecial(k, mod), true
	}
	if ev.Key() == tcell.KeyRune {
		// The shift is already baked into the rune.
		return key.NewRuneMod(ev.Rune(), mod&^key.ModShift), true
	}
	// tcell folds control-letter combinations into dedicated key
	// codes; unfold them back to modified runes.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewRuneMod(rune('a'+k-tcell.KeyCtrlA), mod|key.ModCtrl), true
	}
	return key.Chord{}, false
}
