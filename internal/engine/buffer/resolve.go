package buffer

import (
	"fmt"
	"strings"
)

// PositionCursor is the position spec naming the literal cursor offset.
const PositionCursor = "cursor"

// Resolve turns a position spec into a buffer offset. A spec is either
// "cursor" (the literal cursor position), a unit name (the next
// boundary of that unit), or a unit name prefixed with "-" (the
// previous boundary). The cursor itself is never moved.
func (b *Buffer) Resolve(spec string) (int, error) {
	if spec == PositionCursor {
		return b.cursor, nil
	}

	name, backward := strings.CutPrefix(spec, "-")
	u, ok := UnitFromName(name)
	if !ok {
		return 0, fmt.Errorf("unknown position %q", spec)
	}
	if backward {
		return b.BoundaryBackward(u), nil
	}
	return b.BoundaryForward(u), nil
}
