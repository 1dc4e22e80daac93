package chat

import "github.com/google/uuid"

// Backend is the messaging-protocol collaborator. All operations are
// asynchronous and must not block: implementations dispatch the
// request and later post completions and push updates as Events into
// the engine's dispatch queue.
type Backend interface {
	// SendMessage sends body to a room. txnID links the local echo to
	// the eventual EventSendConfirmed. replyTo and editing carry the
	// consumed pending state; at most one of them is set.
	SendMessage(room RoomID, txnID, body string, replyTo, editing MessageID)

	// SendReaction attaches an emoji reaction to a message.
	SendReaction(room RoomID, target MessageID, emoji string)

	// FetchHistory requests up to limit older messages for a room.
	// Results arrive as EventHistory.
	FetchHistory(room RoomID, limit int)

	// MarkRead reports the newest read message for a room.
	MarkRead(room RoomID, upTo MessageID)
}

// NewTxnID returns a fresh transaction ID for an outgoing request.
func NewTxnID() string {
	return uuid.NewString()
}

// Event is a completion or push update from the backend, or an
// internal notification, re-entering the single dispatch path.
type Event interface {
	isEvent()
}

// EventRoomList replaces the known room list. Timelines of rooms
// already known are kept.
type EventRoomList struct {
	Rooms []Room
}

// EventMessage appends a remote message to a room timeline.
type EventMessage struct {
	Room RoomID
	Msg  Message
}

// EventSendConfirmed resolves a local echo to its server-assigned ID.
type EventSendConfirmed struct {
	Room  RoomID
	TxnID string
	ID    MessageID
}

// EventHistory prepends older messages to a room timeline.
type EventHistory struct {
	Room RoomID
	Msgs []Message
}

// EventSendFailed reports a failed send; the local echo is dropped
// and the error surfaces on the banner.
type EventSendFailed struct {
	Room   RoomID
	TxnID  string
	Reason string
}

// EventReload asks the engine to re-evaluate the configuration
// scripts (posted by the config watcher).
type EventReload struct{}

func (EventRoomList) isEvent()      {}
func (EventMessage) isEvent()       {}
func (EventSendConfirmed) isEvent() {}
func (EventHistory) isEvent()       {}
func (EventSendFailed) isEvent()    {}
func (EventReload) isEvent()        {}
