package buffer

import (
	"fmt"
	"unicode"
)

// Unit is a semantic text boundary category used to parameterize
// cursor motions and ranged operations.
type Unit uint8

const (
	// UnitCell is a single character.
	UnitCell Unit = iota
	// UnitLineSeparator is a hard line break.
	UnitLineSeparator
	// UnitWordBegin is the start of a minor word (vim "w"/"b").
	UnitWordBegin
	// UnitWordEnd is the end of a minor word (vim "e"/"ge").
	UnitWordEnd
	// UnitWORDBegin is the start of a major, whitespace-delimited word.
	UnitWORDBegin
	// UnitWORDEnd is the end of a major word.
	UnitWORDEnd
	// UnitSentence is a run ending at sentence punctuation followed by
	// whitespace or the buffer end.
	UnitSentence
	// UnitDocumentBoundary is the absolute start or end, depending on
	// motion direction.
	UnitDocumentBoundary
)

var unitNames = map[string]Unit{
	"cell":              UnitCell,
	"line_separator":    UnitLineSeparator,
	"word_begin":        UnitWordBegin,
	"word_end":          UnitWordEnd,
	"WORD_begin":        UnitWORDBegin,
	"WORD_end":          UnitWORDEnd,
	"sentence":          UnitSentence,
	"document_boundary": UnitDocumentBoundary,
}

// UnitFromName resolves a unit name as used in configuration scripts.
func UnitFromName(name string) (Unit, bool) {
	u, ok := unitNames[name]
	return u, ok
}

// String returns the configuration-script name of the unit.
func (u Unit) String() string {
	for name, v := range unitNames {
		if v == u {
			return name
		}
	}
	return fmt.Sprintf("Unit(%d)", u)
}

// charClass partitions characters for minor-word motions, vim-style:
// whitespace, word constituents, and everything else (punctuation).
type charClass uint8

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func classOf(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

func isSentencePunct(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// BoundaryForward resolves the offset of the next boundary of unit at
// or after the cursor. The cursor itself never qualifies, so the
// result is strictly greater than the cursor unless the buffer end is
// already reached.
func (b *Buffer) BoundaryForward(u Unit) int {
	switch u {
	case UnitCell:
		return b.clamp(b.cursor + 1)
	case UnitLineSeparator:
		for i := b.cursor; i < len(b.text); i++ {
			if b.text[i] == '\n' {
				return i
			}
		}
		return len(b.text)
	case UnitWordEnd, UnitWORDEnd:
		for j := b.cursor + 1; j <= len(b.text); j++ {
			if b.endBoundaryAt(j, u) {
				return j
			}
		}
		return len(b.text)
	case UnitWordBegin, UnitWORDBegin:
		for j := b.cursor + 1; j < len(b.text); j++ {
			if b.beginBoundaryAt(j, u) {
				return j
			}
		}
		return len(b.text)
	case UnitSentence:
		for j := b.cursor + 1; j <= len(b.text); j++ {
			if b.sentenceBoundaryAt(j) {
				return j
			}
		}
		return len(b.text)
	case UnitDocumentBoundary:
		return len(b.text)
	default:
		return b.cursor
	}
}

// BoundaryBackward resolves the offset of the previous boundary of
// unit before the cursor.
func (b *Buffer) BoundaryBackward(u Unit) int {
	switch u {
	case UnitCell:
		return b.clamp(b.cursor - 1)
	case UnitLineSeparator:
		for i := b.cursor; i > 0; i-- {
			if b.text[i-1] == '\n' {
				return i
			}
		}
		return 0
	case UnitWordBegin, UnitWORDBegin:
		for j := b.cursor - 1; j > 0; j-- {
			if b.beginBoundaryAt(j, u) {
				return j
			}
		}
		return 0
	case UnitWordEnd, UnitWORDEnd:
		for j := b.cursor - 1; j > 0; j-- {
			if b.endBoundaryAt(j, u) {
				return j
			}
		}
		return 0
	case UnitSentence:
		for j := b.cursor - 1; j > 0; j-- {
			if b.sentenceBoundaryAt(j) {
				return j
			}
		}
		return 0
	case UnitDocumentBoundary:
		return 0
	default:
		return b.cursor
	}
}

// beginBoundaryAt reports whether offset j starts a word run: the
// character at j is not whitespace and either j is 0 or the previous
// character belongs to a different run.
func (b *Buffer) beginBoundaryAt(j int, u Unit) bool {
	if j < 0 || j >= len(b.text) || classOf(b.text[j]) == classSpace {
		return false
	}
	if j == 0 {
		return true
	}
	return !sameRun(b.text[j], b.text[j-1], u)
}

// endBoundaryAt reports whether offset j is one past the last
// character of a word run.
func (b *Buffer) endBoundaryAt(j int, u Unit) bool {
	if j <= 0 || j > len(b.text) || classOf(b.text[j-1]) == classSpace {
		return false
	}
	if j == len(b.text) {
		return true
	}
	return !sameRun(b.text[j], b.text[j-1], u)
}

// sentenceBoundaryAt reports whether offset j ends a sentence:
// the previous character is sentence punctuation and j is followed by
// whitespace or the buffer end.
func (b *Buffer) sentenceBoundaryAt(j int) bool {
	if j <= 0 || j > len(b.text) || !isSentencePunct(b.text[j-1]) {
		return false
	}
	return j == len(b.text) || classOf(b.text[j]) == classSpace
}

// sameRun reports whether two adjacent characters belong to the same
// word run. Minor words split on class changes; major (WORD) units
// only split on whitespace.
func sameRun(a, prev rune, u Unit) bool {
	ca, cp := classOf(a), classOf(prev)
	if ca == classSpace || cp == classSpace {
		return false
	}
	if u == UnitWORDBegin || u == UnitWORDEnd {
		return true
	}
	return ca == cp
}
