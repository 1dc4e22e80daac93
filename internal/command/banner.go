package command

// Banner holds the last error message shown to the user. The
// dispatcher sets it on every Error result and never clears it; only
// the explicit clear command does.
type Banner struct {
	msg string
}

// Set replaces the banner message.
func (b *Banner) Set(msg string) {
	b.msg = msg
}

// Message returns the current banner text, empty if none.
func (b *Banner) Message() string {
	return b.msg
}

// Active reports whether a message is displayed.
func (b *Banner) Active() bool {
	return b.msg != ""
}

// Clear removes the message. Returns false if none was displayed.
func (b *Banner) Clear() bool {
	if b.msg == "" {
		return false
	}
	b.msg = ""
	return true
}
