package key

import "strings"

// Modifier is a bitmask of modifier keys held during a chord.
type Modifier uint8

const (
	// ModNone means no modifiers.
	ModNone Modifier = 0
	// ModCtrl is the Control modifier.
	ModCtrl Modifier = 1 << iota
	// ModAlt is the Alt/Option modifier.
	ModAlt
	// ModShift is the Shift modifier. For character chords Shift is
	// already folded into the rune and never set here.
	ModShift
)

// Has returns true if all modifiers in m are set.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// HasCtrl returns true if Control is set.
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }

// HasAlt returns true if Alt is set.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// HasShift returns true if Shift is set.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// String returns the modifier prefix in binding notation, e.g. "C-A-".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var sb strings.Builder
	if m.HasCtrl() {
		sb.WriteString("C-")
	}
	if m.HasAlt() {
		sb.WriteString("A-")
	}
	if m.HasShift() {
		sb.WriteString("S-")
	}
	return sb.String()
}
