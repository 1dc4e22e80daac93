package chat

// LocalBackend is the offline Backend used until a real protocol
// implementation is wired in: sends confirm immediately and nothing
// ever arrives from a network. Completions are posted from their own
// goroutine, matching the fire-and-forget contract.
type LocalBackend struct {
	events chan<- Event
}

// NewLocalBackend creates a backend posting completions to events.
func NewLocalBackend(events chan<- Event) *LocalBackend {
	return &LocalBackend{events: events}
}

// Start announces the initial room list.
func (b *LocalBackend) Start() {
	go func() {
		b.events <- EventRoomList{Rooms: []Room{
			{ID: "local:scratch", Name: "scratch"},
		}}
	}()
}

func (b *LocalBackend) SendMessage(room RoomID, txnID, body string, replyTo, editing MessageID) {
	go func() {
		b.events <- EventSendConfirmed{
			Room:  room,
			TxnID: txnID,
			ID:    MessageID("confirmed:" + txnID),
		}
	}()
}

func (b *LocalBackend) SendReaction(room RoomID, target MessageID, emoji string) {}

func (b *LocalBackend) FetchHistory(room RoomID, limit int) {
	go func() {
		b.events <- EventHistory{Room: room}
	}()
}

func (b *LocalBackend) MarkRead(room RoomID, upTo MessageID) {}
