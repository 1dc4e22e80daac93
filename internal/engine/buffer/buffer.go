// Package buffer implements the message composition buffer: an ordered
// character sequence with a cursor offset and semantic-unit motions.
package buffer

// Buffer holds the composition text and the cursor offset.
// Invariant: 0 <= cursor <= len(text).
type Buffer struct {
	text   []rune
	cursor int
}

// New creates an empty buffer with the cursor at offset 0.
func New() *Buffer {
	return &Buffer{}
}

// NewFromString creates a buffer holding text with the cursor at offset 0.
func NewFromString(text string) *Buffer {
	return &Buffer{text: []rune(text)}
}

// Text returns the buffer contents.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the buffer length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor, clamping into [0, Len()].
func (b *Buffer) SetCursor(offset int) {
	b.cursor = b.clamp(offset)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// Insert inserts text at the cursor and advances the cursor past it.
func (b *Buffer) Insert(text string) {
	if text == "" {
		return
	}
	rs := []rune(text)
	b.text = append(b.text[:b.cursor], append(rs, b.text[b.cursor:]...)...)
	b.cursor += len(rs)
}

// Slice returns the text between two offsets. The offsets are
// normalized, so argument order never affects the result.
func (b *Buffer) Slice(from, to int) string {
	from, to = b.normalize(from, to)
	return string(b.text[from:to])
}

// DeleteRange removes the normalized range and leaves the cursor at
// the range start. It returns the removed text.
func (b *Buffer) DeleteRange(from, to int) string {
	from, to = b.normalize(from, to)
	removed := string(b.text[from:to])
	b.text = append(b.text[:from], b.text[to:]...)
	b.cursor = from
	return removed
}

// DeleteLeft removes the cell before the cursor (backspace semantics).
// Returns false at the buffer start.
func (b *Buffer) DeleteLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.DeleteRange(b.cursor-1, b.cursor)
	return true
}

// DeleteRight removes the cell under the cursor (delete semantics).
// Returns false at the buffer end.
func (b *Buffer) DeleteRight() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	b.DeleteRange(b.cursor, b.cursor+1)
	return true
}

// Clear empties the buffer and resets the cursor. It returns the
// previous contents.
func (b *Buffer) Clear() string {
	old := string(b.text)
	b.text = b.text[:0]
	b.cursor = 0
	return old
}

// MoveForward relocates the cursor to the next boundary of unit.
// Returns false if the cursor did not move.
func (b *Buffer) MoveForward(u Unit) bool {
	next := b.BoundaryForward(u)
	if next == b.cursor {
		return false
	}
	b.cursor = next
	return true
}

// MoveBackward relocates the cursor to the previous boundary of unit.
// Returns false if the cursor did not move.
func (b *Buffer) MoveBackward(u Unit) bool {
	prev := b.BoundaryBackward(u)
	if prev == b.cursor {
		return false
	}
	b.cursor = prev
	return true
}

func (b *Buffer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.text) {
		return len(b.text)
	}
	return offset
}

func (b *Buffer) normalize(from, to int) (int, int) {
	from, to = b.clamp(from), b.clamp(to)
	if from > to {
		from, to = to, from
	}
	return from, to
}
