package command

import (
	"strings"

	"go.uber.org/zap"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/engine/buffer"
	"github.com/parleychat/parley/internal/engine/register"
	"github.com/parleychat/parley/internal/input/auxline"
)

// ModeControl is the mode-stack surface commands operate through. The
// concrete stack lives in internal/input/mode; the indirection keeps
// this package free of a dependency on it.
type ModeControl interface {
	// Push activates a mode and runs its entry hook.
	Push(name string, ctx *Context) error
	// Pop deactivates the top mode. Returns false at depth 1.
	Pop() bool
	// Switch replaces the top mode, running the destination's entry hook.
	Switch(name string, ctx *Context) error
	// Current returns the active top mode name.
	Current() string
	// Depth returns the stack depth.
	Depth() int
}

// AuxAction consumes accepted auxiliary-line content for one owning tag.
type AuxAction func(ctx *Context, content string) Result

// Context is the handle a command executes against. It is assembled
// per dispatch and must not be retained across invocations.
type Context struct {
	Buf   *buffer.Buffer
	Reg   *register.Register
	Aux   *auxline.Line
	Modes ModeControl

	Session *chat.Session
	Backend chat.Backend
	Sender  string

	Banner *Banner

	// AuxActions maps auxiliary-line tags to the action run on confirm.
	AuxActions map[string]AuxAction

	// Eval evaluates free-form script text (the run command). Set by
	// the scripting bridge.
	Eval func(text string) Result

	// QuitFn requests engine termination.
	QuitFn func()

	Log *zap.Logger
}

// --- cursor and buffer ---

// CursorMoveForward relocates the cursor to the next boundary of unit.
func (c *Context) CursorMoveForward(unit string) Result {
	u, ok := buffer.UnitFromName(unit)
	if !ok {
		return Errorf("unknown unit %q", unit)
	}
	if !c.Buf.MoveForward(u) {
		return NoOp()
	}
	return Ok()
}

// CursorMoveBackward relocates the cursor to the previous boundary of unit.
func (c *Context) CursorMoveBackward(unit string) Result {
	u, ok := buffer.UnitFromName(unit)
	if !ok {
		return Errorf("unknown unit %q", unit)
	}
	if !c.Buf.MoveBackward(u) {
		return NoOp()
	}
	return Ok()
}

func (c *Context) resolveRange(from, to string) (int, int, Result) {
	a, err := c.Buf.Resolve(from)
	if err != nil {
		return 0, 0, Error(err.Error())
	}
	b, err := c.Buf.Resolve(to)
	if err != nil {
		return 0, 0, Error(err.Error())
	}
	return a, b, Ok()
}

// CursorYank copies the text between two resolved positions into the
// register. The buffer is not mutated.
func (c *Context) CursorYank(from, to string) Result {
	a, b, res := c.resolveRange(from, to)
	if res.IsError() {
		return res
	}
	c.Reg.Set(c.Buf.Slice(a, b))
	return Ok()
}

// CursorDelete removes the text between two resolved positions,
// leaving the cursor at the range start.
func (c *Context) CursorDelete(from, to string) Result {
	a, b, res := c.resolveRange(from, to)
	if res.IsError() {
		return res
	}
	c.Buf.DeleteRange(a, b)
	return Ok()
}

// CursorDeleteLeft removes the cell before the cursor.
func (c *Context) CursorDeleteLeft() Result {
	if !c.Buf.DeleteLeft() {
		return NoOp()
	}
	return Ok()
}

// CursorDeleteRight removes the cell under the cursor.
func (c *Context) CursorDeleteRight() Result {
	if !c.Buf.DeleteRight() {
		return NoOp()
	}
	return Ok()
}

// VimYank is the composite yank over a range.
func (c *Context) VimYank(from, to string) Result {
	return c.CursorYank(from, to)
}

// VimDelete yanks the range into the register, then removes it. The
// two side effects always run in that order.
func (c *Context) VimDelete(from, to string) Result {
	if r := c.CursorYank(from, to); r.IsError() {
		return r
	}
	return c.CursorDelete(from, to)
}

// VimChange yanks and removes the range, then pushes insert mode.
func (c *Context) VimChange(from, to string) Result {
	if r := c.VimDelete(from, to); r.IsError() {
		return r
	}
	return c.PushMode("insert")
}

// TypeText inserts literal text at the cursor.
func (c *Context) TypeText(text string) Result {
	if text == "" {
		return NoOp()
	}
	c.Buf.Insert(text)
	return Ok()
}

// Paste inserts the register content at the cursor.
func (c *Context) Paste() Result {
	text, ok := c.Reg.Get()
	if !ok || text == "" {
		return NoOp()
	}
	c.Buf.Insert(text)
	return Ok()
}

// ClipboardGet reads the register, empty if unset.
func (c *Context) ClipboardGet() string {
	text, _ := c.Reg.Get()
	return text
}

// ClipboardSet overwrites the register.
func (c *Context) ClipboardSet(text string) Result {
	c.Reg.Set(text)
	return Ok()
}

// --- auxiliary input line ---

// SwitchAuxline selects the owning tag and resets the content.
func (c *Context) SwitchAuxline(tag string) Result {
	c.Aux.Switch(tag)
	return Ok()
}

// SetAuxlinePrompt sets the displayed prompt.
func (c *Context) SetAuxlinePrompt(text string) Result {
	c.Aux.SetPrompt(text)
	return Ok()
}

// AuxlineContent reads the current line text.
func (c *Context) AuxlineContent() string {
	return c.Aux.Content()
}

// AuxInsert appends text to the line.
func (c *Context) AuxInsert(text string) Result {
	if text == "" {
		return NoOp()
	}
	c.Aux.Insert(text)
	return Ok()
}

// AuxDeleteLast removes the final character of the line.
func (c *Context) AuxDeleteLast() Result {
	if !c.Aux.DeleteLast() {
		return NoOp()
	}
	return Ok()
}

// AcceptAuxline marks the content as submitted.
func (c *Context) AcceptAuxline() Result {
	c.Aux.Accept()
	return Ok()
}

// ClearAuxline empties the content and the submitted marker.
func (c *Context) ClearAuxline() Result {
	c.Aux.Clear()
	return Ok()
}

// ConfirmAuxline runs the confirm protocol shared by every
// prompt-style mode: accept non-empty content, invoke the owning
// tag's action with it, and pop the mode regardless of the action's
// outcome.
func (c *Context) ConfirmAuxline() Result {
	content := c.Aux.Content()
	res := Ok()
	if content != "" {
		c.Aux.Accept()
		if action, ok := c.AuxActions[c.Aux.Tag()]; ok {
			res = action(c, content)
		} else {
			res = Errorf("no action for prompt %q", c.Aux.Tag())
		}
	}
	c.Aux.Release()
	c.Modes.Pop()
	return res
}

// CancelAuxline abandons the entry and pops the mode. A displayed
// error banner swallows the cancel: it is cleared and the mode stays.
func (c *Context) CancelAuxline() Result {
	if c.Banner.Clear() {
		return Ok()
	}
	c.Aux.Release()
	if !c.Modes.Pop() {
		return NoOp()
	}
	return Ok()
}

// --- modes ---

// PushMode activates a mode.
func (c *Context) PushMode(name string) Result {
	if err := c.Modes.Push(name, c); err != nil {
		return Error(err.Error())
	}
	return Ok()
}

// PopMode deactivates the top mode. At depth 1 it is a no-op.
func (c *Context) PopMode() Result {
	if !c.Modes.Pop() {
		return NoOp()
	}
	return Ok()
}

// SwitchMode replaces the top mode.
func (c *Context) SwitchMode(name string) Result {
	if err := c.Modes.Switch(name, c); err != nil {
		return Error(err.Error())
	}
	return Ok()
}

// CurrentMode returns the active top mode name.
func (c *Context) CurrentMode() string {
	return c.Modes.Current()
}

// --- chat ---

// SendMessage sends the composition buffer to the current room,
// consuming any pending reply or edit target. The request is
// dispatched fire-and-forget; the buffer and pending state clear
// synchronously.
func (c *Context) SendMessage() Result {
	body := c.Buf.Text()
	if strings.TrimSpace(body) == "" {
		return NoOp()
	}
	if c.Session.CurrentRoom() == nil {
		return Error("no room selected")
	}
	pending := c.Session.TakePending()
	txn, ok := c.Session.AppendLocalEcho(body, c.Sender, pending)
	if !ok {
		return Error("no room selected")
	}
	var replyTo, editing chat.MessageID
	switch pending.Kind {
	case chat.PendingReply:
		replyTo = pending.Target
	case chat.PendingEdit:
		editing = pending.Target
	}
	c.Backend.SendMessage(c.Session.CurrentRoom().ID, txn, body, replyTo, editing)
	c.Buf.Clear()
	return Ok()
}

// SendReaction attaches an emoji reaction to the selected message.
func (c *Context) SendReaction(emoji string) Result {
	msg, ok := c.Session.SelectedMessage()
	if !ok {
		return Error("no message selected")
	}
	c.Backend.SendReaction(c.Session.CurrentRoom().ID, msg.ID, emoji)
	c.Session.DeselectMessage()
	return Ok()
}

// FetchHistory requests older messages for the current room.
func (c *Context) FetchHistory() Result {
	room := c.Session.CurrentRoom()
	if room == nil {
		return Error("no room selected")
	}
	c.Backend.FetchHistory(room.ID, c.Session.HistoryLimit())
	return Ok()
}

// SelectNextRoom moves the room selection forward through the
// filtered view and marks the destination read.
func (c *Context) SelectNextRoom() Result {
	if !c.Session.SelectNextRoom() {
		return NoOp()
	}
	c.markCurrentRead()
	return Ok()
}

// SelectPrevRoom moves the room selection backward through the
// filtered view and marks the destination read.
func (c *Context) SelectPrevRoom() Result {
	if !c.Session.SelectPrevRoom() {
		return NoOp()
	}
	c.markCurrentRead()
	return Ok()
}

func (c *Context) markCurrentRead() {
	room := c.Session.CurrentRoom()
	if room == nil || room.Unread == 0 {
		return
	}
	room.Unread = 0
	if len(room.Messages) > 0 && c.Backend != nil {
		c.Backend.MarkRead(room.ID, room.Messages[len(room.Messages)-1].ID)
	}
}

// FilterRooms sets the room filter.
func (c *Context) FilterRooms(text string, unreadOnly bool) Result {
	c.Session.SetFilter(text, unreadOnly)
	return Ok()
}

// ClearRoomFilter removes the room filter.
func (c *Context) ClearRoomFilter() Result {
	if !c.Session.HasFilter() {
		return NoOp()
	}
	c.Session.ClearFilter()
	return Ok()
}

// SelectOlderMessage moves the message selection towards the start of
// the timeline.
func (c *Context) SelectOlderMessage() Result {
	if !c.Session.SelectOlderMessage() {
		return NoOp()
	}
	return Ok()
}

// SelectNewerMessage moves the message selection towards the end of
// the timeline.
func (c *Context) SelectNewerMessage() Result {
	if !c.Session.SelectNewerMessage() {
		return NoOp()
	}
	return Ok()
}

// DeselectMessage returns the selection to following the newest message.
func (c *Context) DeselectMessage() Result {
	if !c.Session.DeselectMessage() {
		return NoOp()
	}
	return Ok()
}

// StartReply marks the selected message as the reply target.
func (c *Context) StartReply() Result {
	if !c.Session.StartReply() {
		return Error("no message selected")
	}
	return Ok()
}

// StartEdit marks the selected message as the edit target and loads
// its body into the composition buffer.
func (c *Context) StartEdit() Result {
	msg, ok := c.Session.SelectedMessage()
	if !ok {
		return Error("no message selected")
	}
	body := msg.Body
	if !c.Session.StartEdit() {
		return Error("no message selected")
	}
	c.Buf.Clear()
	c.Buf.Insert(body)
	return Ok()
}

// CancelPending resets to plain-send state.
func (c *Context) CancelPending() Result {
	if !c.Session.CancelPending() {
		return NoOp()
	}
	return Ok()
}

// --- banner, script, process ---

// LastError returns the banner message, empty if none.
func (c *Context) LastError() string {
	return c.Banner.Message()
}

// ClearError removes the banner message.
func (c *Context) ClearError() Result {
	if !c.Banner.Clear() {
		return NoOp()
	}
	return Ok()
}

// Run evaluates free-form script text in the shared environment.
func (c *Context) Run(text string) Result {
	if c.Eval == nil {
		return Error("script engine unavailable")
	}
	return c.Eval(text)
}

// Quit requests engine termination.
func (c *Context) Quit() Result {
	if c.QuitFn != nil {
		c.QuitFn()
	}
	return Ok()
}
