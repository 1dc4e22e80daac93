// Package auxline implements the auxiliary input line used by
// prompt-style modes: command entry, room filtering, reactions, and
// history limits.
package auxline

// Line is a single-line editable field, independent from the message
// composition buffer. The owning tag identifies which mode-specific
// action consumes the content on acceptance.
type Line struct {
	text      []rune
	prompt    string
	tag       string
	submitted bool
}

// New creates an empty line with no owner.
func New() *Line {
	return &Line{}
}

// Switch selects the owning tag and resets the content to empty.
func (l *Line) Switch(tag string) {
	l.tag = tag
	l.text = l.text[:0]
	l.submitted = false
}

// Tag returns the current owning tag.
func (l *Line) Tag() string {
	return l.tag
}

// SetPrompt sets the displayed prompt string.
func (l *Line) SetPrompt(prompt string) {
	l.prompt = prompt
}

// Prompt returns the displayed prompt string.
func (l *Line) Prompt() string {
	return l.prompt
}

// Content returns the current text.
func (l *Line) Content() string {
	return string(l.text)
}

// IsEmpty returns true if the line holds no text.
func (l *Line) IsEmpty() bool {
	return len(l.text) == 0
}

// Insert appends text at the end of the line.
func (l *Line) Insert(text string) {
	l.text = append(l.text, []rune(text)...)
}

// DeleteLast removes the final character. Returns false if the line
// is already empty.
func (l *Line) DeleteLast() bool {
	if len(l.text) == 0 {
		return false
	}
	l.text = l.text[:len(l.text)-1]
	return true
}

// Accept marks the content as submitted. The tag-specific action only
// runs on accepted, non-empty content.
func (l *Line) Accept() {
	l.submitted = true
}

// Submitted returns true if the content has been accepted.
func (l *Line) Submitted() bool {
	return l.submitted
}

// Clear empties the content and clears the submitted marker. The tag
// and prompt are kept.
func (l *Line) Clear() {
	l.text = l.text[:0]
	l.submitted = false
}

// Release clears the line and drops the owning tag and prompt. A
// released line has no owner; the renderer uses that to decide whether
// the line is shown at all.
func (l *Line) Release() {
	l.Clear()
	l.tag = ""
	l.prompt = ""
}
