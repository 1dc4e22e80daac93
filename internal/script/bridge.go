package script

import (
	"os"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/parleychat/parley/internal/command"
	"github.com/parleychat/parley/internal/input/key"
	"github.com/parleychat/parley/internal/input/mode"
)

// Bridge connects the Lua environment to the mode registry. Both
// configuration layers evaluate into the one shared state, so user
// registrations overwrite built-in ones for identical slots.
type Bridge struct {
	state *State
	reg   *mode.Registry
	log   *zap.Logger
}

// NewBridge creates a bridge with a fresh sandboxed state and
// installs the registration surface.
func NewBridge(reg *mode.Registry, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bridge{state: NewState(), reg: reg, log: log}
	L := b.state.L
	registerResultType(L)
	registerContextType(L)
	b.registerGlobals(L)
	return b
}

// Close releases the interpreter.
func (b *Bridge) Close() {
	b.state.Close()
}

// LoadBuiltin evaluates the embedded default configuration. A failure
// here is a fatal startup error for the caller.
func (b *Bridge) LoadBuiltin(src string) error {
	if err := b.state.DoString(src); err != nil {
		return &LoadError{Layer: "builtin", Err: err}
	}
	b.log.Debug("builtin config loaded")
	return nil
}

// LoadUserFile evaluates the user configuration file. The caller
// decides whether a failure degrades to defaults or aborts startup.
func (b *Bridge) LoadUserFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Layer: "user", Path: path, Err: err}
	}
	if err := b.state.DoString(string(src)); err != nil {
		return &LoadError{Layer: "user", Path: path, Err: err}
	}
	b.log.Debug("user config loaded", zap.String("path", path))
	return nil
}

// Eval evaluates free-form script text in the shared environment; it
// backs the run command.
func (b *Bridge) Eval(text string) command.Result {
	if err := b.state.DoString(text); err != nil {
		return command.Error(err.Error())
	}
	return command.Ok()
}

// Wrap turns a Lua callable into a Command. Runtime faults inside the
// callable are caught and converted to error results; they never
// reach the dispatch loop as faults.
func (b *Bridge) Wrap(fn lua.LValue) command.Command {
	return func(ctx *command.Context) command.Result {
		return b.invoke(fn, ctx)
	}
}

// WrapInput turns a Lua callable into a text-input handler with the
// same fault isolation as Wrap.
func (b *Bridge) WrapInput(fn lua.LValue) mode.InputHandler {
	return func(ctx *command.Context, text string) command.Result {
		return b.invoke(fn, ctx, lua.LString(text))
	}
}

func (b *Bridge) invoke(fn lua.LValue, ctx *command.Context, extra ...lua.LValue) (res command.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = command.Errorf("lua panic: %v", r)
		}
	}()
	if b.state.closed {
		return command.Error("script engine closed")
	}
	L := b.state.L
	args := append([]lua.LValue{newContextUD(L, ctx)}, extra...)
	err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return command.Error(err.Error())
	}
	ret := L.Get(-1)
	L.Pop(1)
	return toResult(ret)
}

// registerGlobals installs define_mode, on_enter, bind and friends.
// Registration errors raise Lua errors so they surface as load
// failures with the script location attached.
func (b *Bridge) registerGlobals(L *lua.LState) {
	L.SetGlobal("define_mode", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		parent := L.OptString(2, "")
		if err := b.reg.Define(name, parent); err != nil {
			L.RaiseError("define_mode: %v", err)
		}
		return 0
	}))

	L.SetGlobal("on_enter", L.NewFunction(func(L *lua.LState) int {
		modeName := L.CheckString(1)
		fn := L.CheckFunction(2)
		if err := b.reg.OnEnter(modeName, b.Wrap(fn)); err != nil {
			L.RaiseError("on_enter: %v", err)
		}
		return 0
	}))

	L.SetGlobal("on_input", L.NewFunction(func(L *lua.LState) int {
		modeName := L.CheckString(1)
		fn := L.CheckFunction(2)
		if err := b.reg.OnInput(modeName, b.WrapInput(fn)); err != nil {
			L.RaiseError("on_input: %v", err)
		}
		return 0
	}))

	L.SetGlobal("bind", L.NewFunction(func(L *lua.LState) int {
		keys := L.CheckString(1)
		modeName := L.CheckString(2)
		fn := L.CheckFunction(3)
		seq, err := key.ParseSequence(keys)
		if err != nil {
			L.RaiseError("bind: %v", err)
		}
		if err := b.reg.Bind(modeName, seq, b.Wrap(fn)); err != nil {
			L.RaiseError("bind: %v", err)
		}
		return 0
	}))

	L.SetGlobal("unbind", L.NewFunction(func(L *lua.LState) int {
		keys := L.CheckString(1)
		modeName := L.CheckString(2)
		seq, err := key.ParseSequence(keys)
		if err != nil {
			L.RaiseError("unbind: %v", err)
		}
		L.Push(lua.LBool(b.reg.Unbind(modeName, seq)))
		return 1
	}))

	L.SetGlobal("clear_bindings", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(b.reg.ClearBindings(L.CheckString(1))))
		return 1
	}))

	L.SetGlobal("run_first", b.combinator(L, command.RunFirst))
	L.SetGlobal("run_all", b.combinator(L, command.RunAll))
}

// combinator exposes a Go combinator to Lua: it takes a table of
// callables and returns a callable with the combined behavior.
func (b *Bridge) combinator(L *lua.LState, combine func(...command.Command) command.Command) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		var cmds []command.Command
		tbl.ForEach(func(_, v lua.LValue) {
			cmds = append(cmds, b.Wrap(v))
		})
		combined := combine(cmds...)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			return pushResult(L, combined(checkContext(L)))
		}))
		return 1
	})
}
