package key

import (
	"fmt"
	"strings"
)

// Sequence is an ordered list of chords. Bindings key on exact
// sequences; the zero value is an empty sequence.
type Sequence []Chord

// Equal returns true if two sequences are identical.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, c := range s {
		if !c.Equal(other[i]) {
			return false
		}
	}
	return true
}

// HasPrefix returns true if s starts with prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, c := range prefix {
		if !c.Equal(s[i]) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// String returns the sequence in binding notation, e.g. "dd", "<C-x>b".
func (s Sequence) String() string {
	var sb strings.Builder
	for _, c := range s {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// ParseSequence parses binding notation into a Sequence. The notation
// is a continuous string of plain printable characters and bracketed
// chords: "dd", "gg", "<C-x>b", "<Return>", "<A-Left>".
func ParseSequence(s string) (Sequence, error) {
	var seq Sequence
	rs := []rune(s)
	for i := 0; i < len(rs); {
		if rs[i] != '<' {
			seq = append(seq, NewRune(rs[i]))
			i++
			continue
		}
		end := -1
		for j := i + 1; j < len(rs); j++ {
			if rs[j] == '>' {
				end = j
				break
			}
		}
		if end == -1 {
			// Unterminated bracket is a literal '<'.
			seq = append(seq, NewRune('<'))
			i++
			continue
		}
		chord, err := parseBracketed(string(rs[i+1 : end]))
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", s, err)
		}
		seq = append(seq, chord)
		i = end + 1
	}
	return seq, nil
}

// MustParseSequence parses binding notation and panics on error.
// Use only for known-valid sequences in initialization code and tests.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}

// parseBracketed parses the inside of a <...> group: optional modifier
// prefixes (C-, A-, S-) followed by a key name or a single character.
func parseBracketed(body string) (Chord, error) {
	if body == "" {
		return Chord{}, fmt.Errorf("empty chord")
	}

	var mod Modifier
	rest := body
	for len(rest) > 2 && rest[1] == '-' {
		switch rest[0] {
		case 'C', 'c':
			mod |= ModCtrl
		case 'A', 'a', 'M', 'm':
			mod |= ModAlt
		case 'S', 's':
			mod |= ModShift
		default:
			return Chord{}, fmt.Errorf("unknown modifier %q in <%s>", rest[0], body)
		}
		rest = rest[2:]
	}

	switch strings.ToLower(rest) {
	case "lt":
		return NewRuneMod('<', mod), nil
	case "space":
		return NewRuneMod(' ', mod), nil
	}

	if k := FromName(rest); k != KeyNone {
		return NewSpecial(k, mod), nil
	}

	rs := []rune(rest)
	if len(rs) != 1 {
		return Chord{}, fmt.Errorf("unknown key %q in <%s>", rest, body)
	}
	return NewRuneMod(rs[0], mod), nil
}
