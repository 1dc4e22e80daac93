package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/parleychat/parley/internal/input/key"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "a"},
		{"shifted rune keeps rune only", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), "A"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "<A-x>"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), "<C-n>"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "<Return>"},
		{"escape", tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), "<Escape>"},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "<Backspace>"},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "<Left>"},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "<F5>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, ok := translateKey(tt.ev)
			if !ok {
				t.Fatal("no translation")
			}
			if got := ch.String(); got != tt.want {
				t.Errorf("chord = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslatedChordsRoundTrip(t *testing.T) {
	ch, ok := translateKey(tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl))
	if !ok {
		t.Fatal("no translation")
	}
	seq, err := key.ParseSequence(ch.String())
	if err != nil {
		t.Fatal(err)
	}
	if !seq[0].Equal(ch) {
		t.Errorf("round trip changed the chord: %v vs %v", seq[0], ch)
	}
}
