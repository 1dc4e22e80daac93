package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/input/key"
)

type fakeBackend struct {
	sent      []sentMsg
	reactions []string
	fetched   []int
}

type sentMsg struct {
	room    chat.RoomID
	body    string
	replyTo chat.MessageID
	editing chat.MessageID
}

func (b *fakeBackend) SendMessage(room chat.RoomID, txnID, body string, replyTo, editing chat.MessageID) {
	b.sent = append(b.sent, sentMsg{room: room, body: body, replyTo: replyTo, editing: editing})
}

func (b *fakeBackend) SendReaction(room chat.RoomID, target chat.MessageID, emoji string) {
	b.reactions = append(b.reactions, emoji)
}

func (b *fakeBackend) FetchHistory(room chat.RoomID, limit int) {
	b.fetched = append(b.fetched, limit)
}

func (b *fakeBackend) MarkRead(room chat.RoomID, upTo chat.MessageID) {}

func newEngine(t *testing.T, cfg config.Source) (*Engine, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	e, err := New(Options{Backend: backend, Sender: "me", UserConfig: cfg})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e, backend
}

func seedRooms(e *Engine) {
	e.handleEvent(chat.EventRoomList{Rooms: []chat.Room{
		{ID: "!a", Name: "general"},
		{ID: "!b", Name: "go-dev"},
	}})
}

func (e *Engine) feed(t *testing.T, keys string) {
	t.Helper()
	for _, ch := range key.MustParseSequence(keys) {
		e.HandleKey(ch)
	}
}

func TestDefaultsLoadAndStartInNormal(t *testing.T) {
	e, _ := newEngine(t, config.Source{})
	snap := e.Snapshot()
	if snap.Mode != "normal" || len(snap.ModeStack) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestComposeAndSend(t *testing.T) {
	e, backend := newEngine(t, config.Source{})
	seedRooms(e)

	e.feed(t, "i")
	if e.Snapshot().Mode != "insert" {
		t.Fatalf("mode = %q", e.Snapshot().Mode)
	}
	e.feed(t, "hello world")
	if e.Snapshot().BufferText != "hello world" {
		t.Fatalf("buffer = %q", e.Snapshot().BufferText)
	}
	e.feed(t, "<Return>")

	if len(backend.sent) != 1 || backend.sent[0].body != "hello world" {
		t.Fatalf("sent = %+v", backend.sent)
	}
	snap := e.Snapshot()
	if snap.Mode != "normal" || snap.BufferText != "" {
		t.Errorf("after send: mode %q buffer %q", snap.Mode, snap.BufferText)
	}
	last := snap.Messages[len(snap.Messages)-1]
	if !last.Local || last.Body != "hello world" {
		t.Errorf("local echo = %+v", last)
	}
}

func TestSendWithoutRoomSetsBanner(t *testing.T) {
	e, backend := newEngine(t, config.Source{})
	e.feed(t, "ihi<Return>")

	if len(backend.sent) != 0 {
		t.Fatal("nothing should be sent without a room")
	}
	snap := e.Snapshot()
	if snap.Banner == "" {
		t.Error("failed send should surface on the banner")
	}
	if snap.Mode != "insert" {
		t.Error("the chain must stop before popping on error")
	}
}

func TestVimEditingInNormalMode(t *testing.T) {
	e, _ := newEngine(t, config.Source{})
	e.feed(t, "ihello world<Escape>")
	e.feed(t, "gg")
	if e.Snapshot().Cursor != 0 {
		t.Fatalf("cursor = %d", e.Snapshot().Cursor)
	}
	e.feed(t, "de")
	snap := e.Snapshot()
	if snap.BufferText != " world" {
		t.Errorf("buffer = %q", snap.BufferText)
	}
	e.feed(t, "G")
	e.feed(t, "p")
	if got := e.Snapshot().BufferText; got != " worldhello" {
		t.Errorf("buffer = %q", got)
	}
}

func TestQuitBinding(t *testing.T) {
	e, _ := newEngine(t, config.Source{})
	e.feed(t, "q")
	if !e.Quitting() {
		t.Fatal("q should quit by default")
	}
}

func TestUserConfigRebindsQuit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.lua")
	src := `bind("q", "normal", function(c) return res_noop() end)`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	e, _ := newEngine(t, config.Source{Path: path})
	e.feed(t, "q")
	if e.Quitting() {
		t.Fatal("rebound q must not terminate the process")
	}
}

func TestBrokenOptionalUserConfigDegrades(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.lua")
	if err := os.WriteFile(path, []byte(`bind(`), 0o644); err != nil {
		t.Fatal(err)
	}

	e, _ := newEngine(t, config.Source{Path: path, Required: false})
	if e.Snapshot().Banner == "" {
		t.Error("a degraded user config should leave a diagnostic on the banner")
	}
	e.feed(t, "q")
	if !e.Quitting() {
		t.Error("defaults should still be active")
	}
}

func TestBrokenRequiredUserConfigIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.lua")
	if err := os.WriteFile(path, []byte(`bind(`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(Options{Backend: &fakeBackend{}, UserConfig: config.Source{Path: path, Required: true}})
	if err == nil {
		t.Fatal("an explicitly supplied config must fail startup")
	}
}

func TestCommandPromptEvaluatesScript(t *testing.T) {
	e, _ := newEngine(t, config.Source{})
	e.feed(t, ":")
	snap := e.Snapshot()
	if snap.Mode != "command" || snap.AuxPrompt != ":" {
		t.Fatalf("snapshot = %+v", snap)
	}
	e.feed(t, `bind("Z", "normal", function(c) return c:quit() end)<Return>`)
	if e.Snapshot().Mode != "normal" {
		t.Fatal("confirm should pop the command mode")
	}
	e.feed(t, "Z")
	if !e.Quitting() {
		t.Error("the binding registered through the prompt should work")
	}
}

func TestCommandPromptErrorOnBanner(t *testing.T) {
	e, _ := newEngine(t, config.Source{})
	e.feed(t, ":nonsense(<Return>")
	snap := e.Snapshot()
	if snap.Mode != "normal" {
		t.Error("mode pops regardless of the action result")
	}
	if snap.Banner == "" {
		t.Error("the evaluation error should surface on the banner")
	}
}

func TestRoomFilterPrompt(t *testing.T) {
	e, _ := newEngine(t, config.Source{})
	seedRooms(e)

	e.feed(t, "ogen<Return>")
	snap := e.Snapshot()
	if snap.Mode != "normal" || snap.Filter != "gen" {
		t.Fatalf("snapshot mode %q filter %q", snap.Mode, snap.Filter)
	}
	if len(snap.Rooms) != 1 || snap.Rooms[0].Name != "general" {
		t.Errorf("rooms = %+v", snap.Rooms)
	}

	e.feed(t, "<Escape>")
	if e.Snapshot().Filter != "" {
		t.Error("escape in normal mode should clear the filter")
	}
}

func TestHistoryLimitPrompt(t *testing.T) {
	e, backend := newEngine(t, config.Source{})
	seedRooms(e)

	e.feed(t, "L25<Return>")
	e.feed(t, "H")
	if len(backend.fetched) != 1 || backend.fetched[0] != 25 {
		t.Fatalf("fetched = %v", backend.fetched)
	}

	e.feed(t, "Labc<Return>")
	if e.Snapshot().Banner == "" {
		t.Error("an invalid limit should surface on the banner")
	}
	if e.Snapshot().Mode != "normal" {
		t.Error("the prompt pops even when the action fails")
	}
}

func TestReplyFlow(t *testing.T) {
	e, backend := newEngine(t, config.Source{})
	seedRooms(e)
	e.handleEvent(chat.EventMessage{Room: "!a", Msg: chat.Message{ID: "m1", Body: "question"}})

	e.feed(t, "k")
	if e.Snapshot().SelectedMsg != "m1" {
		t.Fatalf("selected = %q", e.Snapshot().SelectedMsg)
	}
	e.feed(t, "r")
	snap := e.Snapshot()
	if snap.Mode != "insert" || snap.PendingSend.Kind != chat.PendingReply {
		t.Fatalf("snapshot = %+v", snap)
	}
	e.feed(t, "answer<Return>")
	if len(backend.sent) != 1 || backend.sent[0].replyTo != "m1" {
		t.Fatalf("sent = %+v", backend.sent)
	}
}

func TestEditFlow(t *testing.T) {
	e, backend := newEngine(t, config.Source{})
	seedRooms(e)
	e.handleEvent(chat.EventMessage{Room: "!a", Msg: chat.Message{ID: "m1", Body: "tpyo"}})

	e.feed(t, "kE")
	snap := e.Snapshot()
	if snap.Mode != "insert" || snap.BufferText != "tpyo" {
		t.Fatalf("snapshot mode %q buffer %q", snap.Mode, snap.BufferText)
	}
	e.feed(t, "<Escape>ggde")
	e.feed(t, "itypo<Escape>")
	e.feed(t, "<Return>")
	if len(backend.sent) != 1 || backend.sent[0].editing != "m1" {
		t.Fatalf("sent = %+v", backend.sent)
	}
	if backend.sent[0].body != "typo" {
		t.Errorf("body = %q", backend.sent[0].body)
	}

	snap = e.Snapshot()
	if len(snap.Messages) != 1 {
		t.Fatalf("an edit should replace the message in place, timeline = %+v", snap.Messages)
	}
	if m := snap.Messages[0]; m.ID != "m1" || m.Body != "typo" || !m.Edited {
		t.Errorf("edited message = %+v", m)
	}
}

func TestReactionPrompt(t *testing.T) {
	e, backend := newEngine(t, config.Source{})
	seedRooms(e)
	e.handleEvent(chat.EventMessage{Room: "!a", Msg: chat.Message{ID: "m1"}})

	e.feed(t, "kR+1<Return>")
	if len(backend.reactions) != 1 || backend.reactions[0] != "+1" {
		t.Fatalf("reactions = %v", backend.reactions)
	}
}

func TestReloadEventRebuildsBindings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.lua")
	if err := os.WriteFile(path, []byte(`-- empty`), 0o644); err != nil {
		t.Fatal(err)
	}
	e, _ := newEngine(t, config.Source{Path: path})
	e.feed(t, "ikeep me<Escape>")

	src := `bind("q", "normal", function(c) return res_noop() end)`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	e.handleEvent(chat.EventReload{})

	if e.Snapshot().BufferText != "keep me" {
		t.Error("reload must keep runtime state")
	}
	if e.Snapshot().Mode != "normal" {
		t.Error("reload resets the mode stack to the base")
	}
	e.feed(t, "q")
	if e.Quitting() {
		t.Error("the reloaded binding should be active")
	}
}

func TestBannerPersistsAcrossKeys(t *testing.T) {
	e, _ := newEngine(t, config.Source{})
	e.feed(t, ":oops(<Return>")
	if e.Snapshot().Banner == "" {
		t.Fatal("expected a banner")
	}
	e.feed(t, "jk")
	if e.Snapshot().Banner == "" {
		t.Fatal("only an explicit clear removes the banner")
	}
	e.feed(t, "C")
	if e.Snapshot().Banner != "" {
		t.Error("C should clear the banner")
	}
}

func TestPromptCancelSwallowedByBanner(t *testing.T) {
	e, _ := newEngine(t, config.Source{})
	e.feed(t, ":bad syntax here<Return>")
	if e.Snapshot().Banner == "" {
		t.Fatal("expected a banner")
	}
	e.feed(t, ":")
	e.feed(t, "<Escape>")
	snap := e.Snapshot()
	if snap.Mode != "command" {
		t.Fatal("cancel with a banner displayed must stay in the prompt")
	}
	if snap.Banner != "" {
		t.Fatal("the first cancel clears the banner")
	}
	e.feed(t, "<Escape>")
	if e.Snapshot().Mode != "normal" {
		t.Error("the second cancel pops the prompt")
	}
}
