// Package register implements the clipboard register: a single slot
// holding the most recently yanked or deleted text.
package register

// Register is the global clipboard slot. Each yank or delete
// overwrites it; paste reads it.
type Register struct {
	text string
	set  bool
}

// New creates an empty register.
func New() *Register {
	return &Register{}
}

// Set stores text, overwriting any previous contents.
func (r *Register) Set(text string) {
	r.text = text
	r.set = true
}

// Get returns the stored text. The second return is false if nothing
// has been yanked or deleted yet.
func (r *Register) Get() (string, bool) {
	return r.text, r.set
}

// Clear empties the register.
func (r *Register) Clear() {
	r.text = ""
	r.set = false
}
