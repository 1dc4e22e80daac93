package mode

import (
	"fmt"

	"github.com/parleychat/parley/internal/command"
)

// Stack is the activation stack. The bottom element is the permanent
// base mode and is never removed. Stack implements command.ModeControl.
type Stack struct {
	reg   *Registry
	names []string

	// version increments on every transition; the dispatcher uses it
	// to clear the pending sequence on mode changes.
	version uint64
}

var _ command.ModeControl = (*Stack)(nil)

// NewStack creates a stack containing only the base mode. The base
// mode's entry hook does not run here; the engine activates it after
// construction if needed.
func NewStack(reg *Registry, base string) (*Stack, error) {
	if !reg.Exists(base) {
		return nil, fmt.Errorf("%w: base %q", ErrNotFound, base)
	}
	return &Stack{reg: reg, names: []string{base}}, nil
}

// Push activates a mode on top of the stack and runs its entry hook.
func (s *Stack) Push(name string, ctx *command.Context) error {
	if !s.reg.Exists(name) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	s.names = append(s.names, name)
	s.version++
	s.runEnter(name, ctx)
	return nil
}

// Pop deactivates the top mode. The base mode is never removed; at
// depth 1 this is a no-op reporting false.
func (s *Stack) Pop() bool {
	if len(s.names) <= 1 {
		return false
	}
	s.names = s.names[:len(s.names)-1]
	s.version++
	return true
}

// Switch replaces the top mode, running the destination's entry hook.
// A failed switch leaves the stack unchanged.
func (s *Stack) Switch(name string, ctx *command.Context) error {
	if !s.reg.Exists(name) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if len(s.names) > 1 {
		s.names = s.names[:len(s.names)-1]
	}
	s.names = append(s.names, name)
	s.version++
	s.runEnter(name, ctx)
	return nil
}

// runEnter executes the mode's entry hook. A hook error surfaces on
// the banner; it does not undo the transition.
func (s *Stack) runEnter(name string, ctx *command.Context) {
	hook := s.reg.enterHook(name)
	if hook == nil || ctx == nil {
		return
	}
	if r := hook(ctx); r.IsError() && ctx.Banner != nil {
		ctx.Banner.Set(r.Message)
	}
}

// Current returns the active top mode name.
func (s *Stack) Current() string {
	return s.names[len(s.names)-1]
}

// Depth returns the stack depth.
func (s *Stack) Depth() int {
	return len(s.names)
}

// Names returns a copy of the stack, bottom first.
func (s *Stack) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Version returns the transition counter.
func (s *Stack) Version() uint64 {
	return s.version
}
