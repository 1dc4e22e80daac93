package key

import "unicode"

// Chord is one logical key press: a plain character, a modified
// character, or a named key.
type Chord struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune chords.
	Rune rune

	// Mod contains the active modifier keys.
	Mod Modifier
}

// NewRune creates a chord for a plain character.
func NewRune(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r}
}

// NewRuneMod creates a chord for a character with modifiers.
func NewRuneMod(r rune, mod Modifier) Chord {
	return Chord{Key: KeyRune, Rune: r, Mod: mod}
}

// NewSpecial creates a chord for a named key.
func NewSpecial(k Key, mod Modifier) Chord {
	return Chord{Key: k, Mod: mod}
}

// Ctrl creates a control-character chord, e.g. Ctrl('x') for <C-x>.
func Ctrl(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r, Mod: ModCtrl}
}

// IsRune returns true if this is a character chord.
func (c Chord) IsRune() bool {
	return c.Key == KeyRune && c.Rune != 0
}

// IsPrintable returns true if this is a printable character chord
// without Ctrl/Alt modifiers. Printable chords are the ones insert-style
// modes feed into text buffers.
func (c Chord) IsPrintable() bool {
	return c.IsRune() && c.Mod&(ModCtrl|ModAlt) == 0 && unicode.IsPrint(c.Rune)
}

// Equal returns true if two chords represent the same key press.
func (c Chord) Equal(other Chord) bool {
	return c.Key == other.Key && c.Rune == other.Rune && c.Mod == other.Mod
}

// String returns the chord in binding notation: plain characters as
// themselves, everything else bracketed, e.g. "a", "<C-x>", "<Return>".
func (c Chord) String() string {
	if c.Key == KeyRune && c.Mod == ModNone {
		switch c.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		default:
			return string(c.Rune)
		}
	}

	var name string
	if c.Key == KeyRune {
		name = string(c.Rune)
	} else {
		name = c.Key.String()
	}
	return "<" + c.Mod.String() + name + ">"
}
