package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/parleychat/parley/internal/app"
	"github.com/parleychat/parley/internal/chat"
)

var (
	styleDefault = tcell.StyleDefault
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleLocal   = tcell.StyleDefault.Dim(true)
	styleSelect  = tcell.StyleDefault.Reverse(true)
)

// Paint draws one frame from a snapshot: a room strip, the message
// timeline, a status line, and the input line.
func (s *Screen) Paint(snap app.Snapshot) {
	s.tc.Clear()
	width, height := s.tc.Size()
	if height < 4 || width == 0 {
		s.tc.Show()
		return
	}

	s.drawText(0, 0, width, roomStrip(snap), styleStatus)
	s.drawMessages(snap, 1, height-3, width)
	s.drawStatus(snap, height-2, width)
	s.drawInput(snap, height-1, width)
	s.tc.Show()
}

func roomStrip(snap app.Snapshot) string {
	var parts []string
	for _, r := range snap.Rooms {
		name := r.Name
		if r.Unread > 0 {
			name = fmt.Sprintf("%s(%d)", name, r.Unread)
		}
		if r.ID == snap.CurrentRoom {
			name = "[" + name + "]"
		}
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return "no rooms"
	}
	return strings.Join(parts, "  ")
}

func (s *Screen) drawMessages(snap app.Snapshot, top, bottom, width int) {
	rows := bottom - top
	if rows <= 0 {
		return
	}
	msgs := snap.Messages
	if len(msgs) > rows {
		msgs = msgs[len(msgs)-rows:]
	}
	y := top
	for _, m := range msgs {
		style := styleDefault
		if m.Local {
			style = styleLocal
		}
		if m.ID == snap.SelectedMsg {
			style = styleSelect
		}
		s.drawText(0, y, width, formatMessage(m), style)
		y++
	}
}

func formatMessage(m chat.Message) string {
	body := m.Body
	if m.ReplyTo != "" {
		body = "↳ " + body
	}
	if m.Edited {
		body += " (edited)"
	}
	return fmt.Sprintf("%s: %s", m.Sender, body)
}

func (s *Screen) drawStatus(snap app.Snapshot, y, width int) {
	if snap.Banner != "" {
		s.drawText(0, y, width, snap.Banner, styleError)
		return
	}
	status := fmt.Sprintf("-- %s --", strings.ToUpper(snap.Mode))
	if snap.PendingKeys != "" {
		status += "  " + snap.PendingKeys
	}
	if snap.PendingSend.Kind != chat.PendingNone {
		status += fmt.Sprintf("  [%s %s]", snap.PendingSend.Kind, snap.PendingSend.Target)
	}
	if snap.Filter != "" {
		status += "  /" + snap.Filter
	}
	s.drawText(0, y, width, status, styleStatus)
}

func (s *Screen) drawInput(snap app.Snapshot, y, width int) {
	// An owned aux line means a prompt mode is active, whatever the
	// mode is called; otherwise the composition buffer is shown.
	if snap.AuxTag != "" {
		line := snap.AuxPrompt + snap.AuxContent
		s.drawText(0, y, width, line, styleDefault)
		s.tc.ShowCursor(len([]rune(line)), y)
		return
	}
	s.drawText(0, y, width, snap.BufferText, styleDefault)
	s.tc.ShowCursor(snap.Cursor, y)
}

func (s *Screen) drawText(x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		s.tc.SetContent(x, y, r, nil, style)
		x++
	}
}
