package chat

import "strings"

// DefaultHistoryLimit is the number of messages fetched per history
// request unless overridden by the limit prompt.
const DefaultHistoryLimit = 50

// Session is the client-side room and selection state. It is owned by
// the engine and mutated only from the single dispatch goroutine.
type Session struct {
	rooms   []Room
	current RoomID

	// history orders rooms from least to most recently selected.
	history []RoomID

	filter     string
	unreadOnly bool

	// selection maps a room to its selected message. Absence means
	// the selection follows the newest message.
	selection map[RoomID]MessageID

	pending      Pending
	historyLimit int
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		selection:    make(map[RoomID]MessageID),
		historyLimit: DefaultHistoryLimit,
	}
}

// Rooms returns all known rooms in list order.
func (s *Session) Rooms() []Room {
	return s.rooms
}

// FilteredRooms returns the rooms matching the active filter: a
// case-insensitive name substring, optionally restricted to rooms
// with unread messages.
func (s *Session) FilteredRooms() []*Room {
	var out []*Room
	needle := strings.ToLower(s.filter)
	for i := range s.rooms {
		r := &s.rooms[i]
		if s.unreadOnly && r.Unread == 0 {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(r.Name), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SetFilter sets the room filter. unreadOnly additionally restricts
// the view to rooms with unread messages.
func (s *Session) SetFilter(text string, unreadOnly bool) {
	s.filter = text
	s.unreadOnly = unreadOnly
}

// Filter returns the active filter text.
func (s *Session) Filter() string {
	return s.filter
}

// HasFilter reports whether any filter is active.
func (s *Session) HasFilter() bool {
	return s.filter != "" || s.unreadOnly
}

// ClearFilter removes any active filter.
func (s *Session) ClearFilter() {
	s.filter = ""
	s.unreadOnly = false
}

// CurrentRoom returns the selected room, or nil if none is selected.
func (s *Session) CurrentRoom() *Room {
	return s.roomByID(s.current)
}

func (s *Session) roomByID(id RoomID) *Room {
	if id == "" {
		return nil
	}
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			return &s.rooms[i]
		}
	}
	return nil
}

// SelectRoom makes id current and moves it to the top of the
// selection history.
func (s *Session) SelectRoom(id RoomID) {
	if s.roomByID(id) == nil {
		return
	}
	for i, h := range s.history {
		if h == id {
			s.history = append(s.history[:i], s.history[i+1:]...)
			break
		}
	}
	s.history = append(s.history, id)
	s.current = id
}

// SelectNextRoom moves the room selection forward through the
// filtered view. Returns false if it cannot move.
func (s *Session) SelectNextRoom() bool {
	return s.moveRoom(1)
}

// SelectPrevRoom moves the room selection backward through the
// filtered view. Returns false if it cannot move.
func (s *Session) SelectPrevRoom() bool {
	return s.moveRoom(-1)
}

func (s *Session) moveRoom(delta int) bool {
	view := s.FilteredRooms()
	if len(view) == 0 {
		return false
	}
	idx := -1
	for i, r := range view {
		if r.ID == s.current {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Current room not in view: select the first entry.
		s.SelectRoom(view[0].ID)
		return true
	}
	next := idx + delta
	if next < 0 || next >= len(view) {
		return false
	}
	s.SelectRoom(view[next].ID)
	return true
}

// SelectedMessage returns the explicitly selected message of the
// current room. ok is false when the selection follows the newest
// message or there is no current room.
func (s *Session) SelectedMessage() (*Message, bool) {
	room := s.CurrentRoom()
	if room == nil {
		return nil, false
	}
	id, ok := s.selection[room.ID]
	if !ok {
		return nil, false
	}
	idx := room.MessageByID(id)
	if idx == -1 {
		return nil, false
	}
	return &room.Messages[idx], true
}

// SelectOlderMessage moves the message selection one entry towards
// the start of the timeline, anchoring at the newest message first.
func (s *Session) SelectOlderMessage() bool {
	room := s.CurrentRoom()
	if room == nil || len(room.Messages) == 0 {
		return false
	}
	id, ok := s.selection[room.ID]
	if !ok {
		s.selection[room.ID] = room.Messages[len(room.Messages)-1].ID
		return true
	}
	idx := room.MessageByID(id)
	if idx <= 0 {
		return false
	}
	s.selection[room.ID] = room.Messages[idx-1].ID
	return true
}

// SelectNewerMessage moves the message selection one entry towards
// the end of the timeline; moving past the newest message returns the
// selection to following the tail.
func (s *Session) SelectNewerMessage() bool {
	room := s.CurrentRoom()
	if room == nil {
		return false
	}
	id, ok := s.selection[room.ID]
	if !ok {
		return false
	}
	idx := room.MessageByID(id)
	if idx == -1 || idx == len(room.Messages)-1 {
		delete(s.selection, room.ID)
		return true
	}
	s.selection[room.ID] = room.Messages[idx+1].ID
	return true
}

// DeselectMessage returns the selection to following the newest
// message. Returns false if it already does.
func (s *Session) DeselectMessage() bool {
	room := s.CurrentRoom()
	if room == nil {
		return false
	}
	if _, ok := s.selection[room.ID]; !ok {
		return false
	}
	delete(s.selection, room.ID)
	return true
}

// Pending returns the active reply/edit state.
func (s *Session) Pending() Pending {
	return s.pending
}

// StartReply marks the selected message as the reply target.
func (s *Session) StartReply() bool {
	msg, ok := s.SelectedMessage()
	if !ok {
		return false
	}
	s.pending = Pending{Kind: PendingReply, Target: msg.ID}
	s.DeselectMessage()
	return true
}

// StartEdit marks the selected message as the edit target.
func (s *Session) StartEdit() bool {
	msg, ok := s.SelectedMessage()
	if !ok {
		return false
	}
	s.pending = Pending{Kind: PendingEdit, Target: msg.ID}
	s.DeselectMessage()
	return true
}

// CancelPending resets to plain-send state. Returns false if nothing
// was pending.
func (s *Session) CancelPending() bool {
	if s.pending.Kind == PendingNone {
		return false
	}
	s.pending = Pending{}
	return true
}

// TakePending returns and clears the pending state; the send pipeline
// consumes it.
func (s *Session) TakePending() Pending {
	p := s.pending
	s.pending = Pending{}
	return p
}

// HistoryLimit returns the configured history fetch limit.
func (s *Session) HistoryLimit() int {
	return s.historyLimit
}

// SetHistoryLimit sets the history fetch limit. Non-positive values
// are rejected.
func (s *Session) SetHistoryLimit(n int) bool {
	if n <= 0 {
		return false
	}
	s.historyLimit = n
	return true
}

// Apply folds a backend event into the session state.
func (s *Session) Apply(ev Event) {
	switch e := ev.(type) {
	case EventRoomList:
		s.applyRoomList(e)
	case EventMessage:
		if room := s.roomByID(e.Room); room != nil {
			if foldEdit(room, e.Msg) {
				return
			}
			room.Messages = append(room.Messages, e.Msg)
			if e.Room != s.current {
				room.Unread++
			}
		}
	case EventSendConfirmed:
		if room := s.roomByID(e.Room); room != nil {
			for i := range room.Messages {
				if room.Messages[i].TxnID == e.TxnID {
					m := &room.Messages[i]
					// Folded edits keep the edited message's own ID;
					// e.ID identifies the edit event, not the entry.
					if m.ID == MessageID("local:"+e.TxnID) {
						m.ID = e.ID
					}
					m.Local = false
					m.TxnID = ""
					break
				}
			}
		}
	case EventHistory:
		if room := s.roomByID(e.Room); room != nil {
			room.Messages = append(append([]Message{}, e.Msgs...), room.Messages...)
		}
	case EventSendFailed:
		if room := s.roomByID(e.Room); room != nil {
			for i := range room.Messages {
				if room.Messages[i].TxnID == e.TxnID {
					m := &room.Messages[i]
					if m.ID == MessageID("local:"+e.TxnID) {
						room.Messages = append(room.Messages[:i], room.Messages[i+1:]...)
					} else {
						// A failed edit cannot be reverted; the entry
						// stays with the new body and the caller
						// surfaces the failure.
						m.Local = false
						m.TxnID = ""
					}
					break
				}
			}
		}
	}
}

// foldEdit replaces the body of the message an edit targets instead of
// appending a second timeline entry. Returns false when the message is
// not an edit or the target is not cached, in which case the caller
// appends it normally.
func foldEdit(room *Room, msg Message) bool {
	if msg.Editing == "" {
		return false
	}
	idx := room.MessageByID(msg.Editing)
	if idx == -1 {
		return false
	}
	m := &room.Messages[idx]
	m.Body = msg.Body
	m.Edited = true
	m.Local = msg.Local
	m.TxnID = msg.TxnID
	return true
}

func (s *Session) applyRoomList(e EventRoomList) {
	known := make(map[RoomID]*Room, len(s.rooms))
	for i := range s.rooms {
		known[s.rooms[i].ID] = &s.rooms[i]
	}
	rooms := make([]Room, 0, len(e.Rooms))
	for _, r := range e.Rooms {
		if old, ok := known[r.ID]; ok && len(r.Messages) == 0 {
			r.Messages = old.Messages
		}
		rooms = append(rooms, r)
	}
	s.rooms = rooms
	if s.roomByID(s.current) == nil {
		s.current = ""
		if len(s.rooms) > 0 {
			s.SelectRoom(s.rooms[0].ID)
		}
	}
}

// AppendLocalEcho adds an unconfirmed outgoing message to the current
// room and returns its transaction ID. An edit folds into its target
// message in place rather than appending a new entry.
func (s *Session) AppendLocalEcho(body, sender string, p Pending) (string, bool) {
	room := s.CurrentRoom()
	if room == nil {
		return "", false
	}
	txn := NewTxnID()
	msg := Message{
		ID:     MessageID("local:" + txn),
		Sender: sender,
		Body:   body,
		TxnID:  txn,
		Local:  true,
	}
	switch p.Kind {
	case PendingReply:
		msg.ReplyTo = p.Target
	case PendingEdit:
		msg.Editing = p.Target
		if foldEdit(room, msg) {
			return txn, true
		}
		// Target no longer cached: fall through to a plain append.
	}
	room.Messages = append(room.Messages, msg)
	return txn, true
}
