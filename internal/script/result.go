package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/parleychat/parley/internal/command"
)

const resultTypeName = "parley.result"

// registerResultType installs the Result userdata metatable and the
// res_ok/res_error/res_noop factory globals.
func registerResultType(L *lua.LState) {
	mt := L.NewTypeMetatable(resultTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"is_ok":    resultIs(func(r command.Result) bool { return r.IsOK() }),
		"is_error": resultIs(func(r command.Result) bool { return r.IsError() }),
		"is_noop":  resultIs(func(r command.Result) bool { return r.IsNoOp() }),
		"message": func(L *lua.LState) int {
			L.Push(lua.LString(checkResult(L).Message))
			return 1
		},
	}))

	L.SetGlobal("res_ok", L.NewFunction(func(L *lua.LState) int {
		return pushResult(L, command.Ok())
	}))
	L.SetGlobal("res_noop", L.NewFunction(func(L *lua.LState) int {
		return pushResult(L, command.NoOp())
	}))
	L.SetGlobal("res_error", L.NewFunction(func(L *lua.LState) int {
		return pushResult(L, command.Error(L.CheckString(1)))
	}))
}

func resultIs(pred func(command.Result) bool) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LBool(pred(checkResult(L))))
		return 1
	}
}

func checkResult(L *lua.LState) command.Result {
	ud := L.CheckUserData(1)
	if r, ok := ud.Value.(command.Result); ok {
		return r
	}
	L.ArgError(1, "result expected")
	return command.Result{}
}

// pushResult wraps a Result as userdata and leaves it on the stack.
func pushResult(L *lua.LState, r command.Result) int {
	ud := L.NewUserData()
	ud.Value = r
	L.SetMetatable(ud, L.GetTypeMetatable(resultTypeName))
	L.Push(ud)
	return 1
}

// toResult converts a command invocation's return value: a Result
// userdata passes through, nil means Ok, anything else is a script
// bug reported as an error result.
func toResult(lv lua.LValue) command.Result {
	switch v := lv.(type) {
	case *lua.LNilType:
		return command.Ok()
	case *lua.LUserData:
		if r, ok := v.Value.(command.Result); ok {
			return r
		}
	}
	if lv == nil {
		return command.Ok()
	}
	return command.Errorf("command returned %s, want a result", lv.Type())
}
