// Package script implements the Lua configuration bridge: a sandboxed
// interpreter, the registration surface, and the Context/Result
// marshaling that lets scripts define modes, bindings, and commands.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// State wraps a sandboxed gopher-lua interpreter.
//
// gopher-lua's LState is not goroutine-safe. All execution happens on
// the engine's single dispatch goroutine, so no locking is needed.
type State struct {
	L      *lua.LState
	closed bool
}

// NewState creates a sandboxed Lua state with only safe standard
// libraries opened.
func NewState() *State {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)
	return &State{L: L}
}

// openSafeLibraries opens base, table, string, and math. io, os, debug
// and package stay closed: configuration scripts get no file system or
// process access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// OpenBase also installs file and chunk loaders; without removing
	// them a script can read and execute arbitrary files.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoString evaluates Lua source with panic recovery.
func (s *State) DoString(code string) error {
	if s.closed {
		return ErrStateClosed
	}
	return s.withRecovery(func() error {
		return s.L.DoString(code)
	})
}

// withRecovery converts interpreter panics into errors so script
// faults never propagate into the dispatch loop.
func (s *State) withRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the interpreter.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
