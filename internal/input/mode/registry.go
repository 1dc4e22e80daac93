// Package mode implements the mode registry, with parent-based
// binding inheritance, and the activation stack.
package mode

import (
	"errors"
	"fmt"

	"github.com/parleychat/parley/internal/command"
	"github.com/parleychat/parley/internal/input/key"
)

// ErrNotFound reports a reference to an undefined mode name.
var ErrNotFound = errors.New("mode not found")

// ErrCycle reports a parent assignment that would close a cycle.
var ErrCycle = errors.New("mode parent cycle")

// InputHandler consumes a printable chord that resolved to no
// binding, as literal text. Insert- and prompt-style modes use it for
// free typing.
type InputHandler func(ctx *command.Context, text string) command.Result

type binding struct {
	seq key.Sequence
	cmd command.Command
}

type modeEntry struct {
	name     string
	parent   string
	bindings map[string]binding
	enter    command.Command
	input    InputHandler
}

// Registry holds all defined modes. Mutated only during script
// loading; lookups afterwards are read-only.
type Registry struct {
	modes map[string]*modeEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modes: make(map[string]*modeEntry)}
}

// Define registers a mode. parent is empty for a base mode and must
// already be registered otherwise. Redefining an existing mode updates
// its parent and keeps its bindings.
func (r *Registry) Define(name, parent string) error {
	if name == "" {
		return errors.New("mode name must not be empty")
	}
	if parent != "" {
		if _, ok := r.modes[parent]; !ok {
			return fmt.Errorf("%w: parent %q", ErrNotFound, parent)
		}
		if r.wouldCycle(name, parent) {
			return fmt.Errorf("%w: %q -> %q", ErrCycle, name, parent)
		}
	}
	if m, ok := r.modes[name]; ok {
		m.parent = parent
		return nil
	}
	r.modes[name] = &modeEntry{
		name:     name,
		parent:   parent,
		bindings: make(map[string]binding),
	}
	return nil
}

// wouldCycle walks the parent chain from parent looking for name.
func (r *Registry) wouldCycle(name, parent string) bool {
	for p := parent; p != ""; {
		if p == name {
			return true
		}
		m, ok := r.modes[p]
		if !ok {
			return false
		}
		p = m.parent
	}
	return false
}

// Exists reports whether a mode is registered.
func (r *Registry) Exists(name string) bool {
	_, ok := r.modes[name]
	return ok
}

// Bind registers a command under a (mode, sequence) slot. A second
// registration for the same slot overwrites the first.
func (r *Registry) Bind(mode string, seq key.Sequence, cmd command.Command) error {
	m, ok := r.modes[mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, mode)
	}
	if len(seq) == 0 {
		return errors.New("binding sequence must not be empty")
	}
	m.bindings[seq.String()] = binding{seq: seq.Clone(), cmd: cmd}
	return nil
}

// Unbind removes a binding. Returns false if the slot was empty.
func (r *Registry) Unbind(mode string, seq key.Sequence) bool {
	m, ok := r.modes[mode]
	if !ok {
		return false
	}
	k := seq.String()
	if _, ok := m.bindings[k]; !ok {
		return false
	}
	delete(m.bindings, k)
	return true
}

// ClearBindings removes all bindings of a mode, leaving inherited
// ancestor bindings visible.
func (r *Registry) ClearBindings(mode string) bool {
	m, ok := r.modes[mode]
	if !ok {
		return false
	}
	m.bindings = make(map[string]binding)
	return true
}

// OnEnter attaches the entry hook of a mode. One slot per mode; a
// later registration overwrites.
func (r *Registry) OnEnter(mode string, cmd command.Command) error {
	m, ok := r.modes[mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, mode)
	}
	m.enter = cmd
	return nil
}

// OnInput attaches the text-input handler of a mode. One slot per
// mode; a later registration overwrites.
func (r *Registry) OnInput(mode string, h InputHandler) error {
	m, ok := r.modes[mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, mode)
	}
	m.input = h
	return nil
}

// InputHandlerFor resolves the text-input handler for a mode chain:
// the mode itself, then its ancestors.
func (r *Registry) InputHandlerFor(mode string) InputHandler {
	for name := mode; name != ""; {
		m, ok := r.modes[name]
		if !ok {
			return nil
		}
		if m.input != nil {
			return m.input
		}
		name = m.parent
	}
	return nil
}

func (r *Registry) enterHook(mode string) command.Command {
	if m, ok := r.modes[mode]; ok {
		return m.enter
	}
	return nil
}

// Lookup resolves a sequence against a mode chain: the mode itself,
// then its parent, transitively. The first chain member with a
// matching slot wins, so child bindings shadow ancestors.
func (r *Registry) Lookup(mode string, seq key.Sequence) (command.Command, bool) {
	k := seq.String()
	for name := mode; name != ""; {
		m, ok := r.modes[name]
		if !ok {
			return nil, false
		}
		if b, ok := m.bindings[k]; ok {
			return b.cmd, true
		}
		name = m.parent
	}
	return nil, false
}

// HasStrictPrefix reports whether any binding in the mode chain has
// seq as a strict prefix, meaning a longer sequence could still
// complete.
func (r *Registry) HasStrictPrefix(mode string, seq key.Sequence) bool {
	for name := mode; name != ""; {
		m, ok := r.modes[name]
		if !ok {
			return false
		}
		for _, b := range m.bindings {
			if len(b.seq) > len(seq) && b.seq.HasPrefix(seq) {
				return true
			}
		}
		name = m.parent
	}
	return false
}
