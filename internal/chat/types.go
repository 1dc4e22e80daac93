// Package chat defines the boundary to the messaging-protocol
// collaborator: rooms, messages, the asynchronous Backend interface,
// and the events its completions post back into the dispatch queue.
package chat

import "time"

// RoomID identifies a room on the backend.
type RoomID string

// MessageID identifies a message within a room.
type MessageID string

// Message is one timeline entry.
type Message struct {
	ID     MessageID
	Sender string
	Body   string
	Time   time.Time

	// TxnID links a local echo to its eventual send confirmation.
	// Empty for remote messages.
	TxnID string

	// Local is true while the message is an unconfirmed local echo.
	Local bool

	// ReplyTo is the replied-to message, if any.
	ReplyTo MessageID

	// Editing marks this entry as a replacement for an earlier
	// message. The session folds it into that message instead of
	// appending it to the timeline.
	Editing MessageID

	// Edited is true if the message body has been replaced by an edit.
	Edited bool
}

// Room is one joined room and its cached timeline.
type Room struct {
	ID       RoomID
	Name     string
	Unread   int
	Messages []Message
}

// MessageByID returns the index of a message in the room timeline,
// or -1 if it is not cached.
func (r *Room) MessageByID(id MessageID) int {
	for i := range r.Messages {
		if r.Messages[i].ID == id {
			return i
		}
	}
	return -1
}

// PendingKind distinguishes the active special-message state.
type PendingKind uint8

const (
	// PendingNone means the next send is a plain message.
	PendingNone PendingKind = iota
	// PendingReply means the next send replies to Pending.Target.
	PendingReply
	// PendingEdit means the next send replaces Pending.Target.
	PendingEdit
)

// String returns the name of the pending kind.
func (k PendingKind) String() string {
	switch k {
	case PendingNone:
		return "none"
	case PendingReply:
		return "reply"
	case PendingEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Pending is the active reply or edit target consumed by the next send.
type Pending struct {
	Kind   PendingKind
	Target MessageID
}
