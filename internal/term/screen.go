package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/parleychat/parley/internal/input/key"
)

// Screen owns the tcell terminal. It produces the key-event sequence
// the dispatch loop consumes and paints engine snapshots.
type Screen struct {
	tc        tcell.Screen
	keys      chan key.Chord
	done      chan struct{}
	closeOnce sync.Once
	log       *zap.Logger
}

// New initializes the terminal.
func New(log *zap.Logger) (*Screen, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tc, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := tc.Init(); err != nil {
		return nil, err
	}
	s := newScreen(tc, log)
	go s.poll()
	return s, nil
}

func newScreen(tc tcell.Screen, log *zap.Logger) *Screen {
	return &Screen{
		tc:   tc,
		keys: make(chan key.Chord, 16),
		done: make(chan struct{}),
		log:  log,
	}
}

// Keys is the chord sequence. The channel closes when the terminal
// shuts down.
func (s *Screen) Keys() <-chan key.Chord {
	return s.keys
}

func (s *Screen) poll() {
	defer close(s.keys)
	for {
		switch ev := s.tc.PollEvent().(type) {
		case *tcell.EventKey:
			if ch, ok := translateKey(ev); ok {
				// Close must unblock a pending send once the engine
				// stops receiving.
				select {
				case s.keys <- ch:
				case <-s.done:
					return
				}
			}
		case *tcell.EventResize:
			s.tc.Sync()
		case nil:
			// Fini was called.
			return
		}
	}
}

// Close restores the terminal and stops the poll goroutine. Safe to
// call more than once.
func (s *Screen) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.tc.Fini()
	})
}
