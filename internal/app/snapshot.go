package app

import (
	"github.com/parleychat/parley/internal/chat"
)

// Snapshot is the read model the renderer paints from. It is a copy;
// the renderer never touches engine state.
type Snapshot struct {
	Mode        string
	ModeStack   []string
	PendingKeys string

	BufferText string
	Cursor     int

	AuxTag     string
	AuxPrompt  string
	AuxContent string

	Banner string

	Rooms       []chat.Room
	CurrentRoom chat.RoomID
	Messages    []chat.Message
	SelectedMsg chat.MessageID
	PendingSend chat.Pending
	Filter      string
}

// Snapshot captures the current interaction state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Mode:        e.stack.Current(),
		ModeStack:   e.stack.Names(),
		PendingKeys: e.disp.Pending().String(),
		BufferText:  e.buf.Text(),
		Cursor:      e.buf.Cursor(),
		AuxTag:      e.aux.Tag(),
		AuxPrompt:   e.aux.Prompt(),
		AuxContent:  e.aux.Content(),
		Banner:      e.banner.Message(),
		Filter:      e.session.Filter(),
		PendingSend: e.session.Pending(),
	}
	for _, r := range e.session.FilteredRooms() {
		room := *r
		room.Messages = nil
		s.Rooms = append(s.Rooms, room)
	}
	if room := e.session.CurrentRoom(); room != nil {
		s.CurrentRoom = room.ID
		s.Messages = append(s.Messages, room.Messages...)
	}
	if msg, ok := e.session.SelectedMessage(); ok {
		s.SelectedMsg = msg.ID
	}
	return s
}
