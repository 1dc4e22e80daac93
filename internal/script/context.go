package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/parleychat/parley/internal/command"
)

const contextTypeName = "parley.context"

// registerContextType installs the Context userdata metatable. Every
// engine operation a script command can perform is a method here.
func registerContextType(L *lua.LState) {
	mt := L.NewTypeMetatable(contextTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), contextMethods))
}

// newContextUD wraps a command.Context for one invocation.
func newContextUD(L *lua.LState, ctx *command.Context) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = ctx
	L.SetMetatable(ud, L.GetTypeMetatable(contextTypeName))
	return ud
}

func checkContext(L *lua.LState) *command.Context {
	ud := L.CheckUserData(1)
	if c, ok := ud.Value.(*command.Context); ok {
		return c
	}
	L.ArgError(1, "context expected")
	return nil
}

// nullary adapts a no-argument context operation.
func nullary(f func(*command.Context) command.Result) lua.LGFunction {
	return func(L *lua.LState) int {
		return pushResult(L, f(checkContext(L)))
	}
}

// unary adapts a one-string-argument context operation.
func unary(f func(*command.Context, string) command.Result) lua.LGFunction {
	return func(L *lua.LState) int {
		c := checkContext(L)
		return pushResult(L, f(c, L.CheckString(2)))
	}
}

// ranged adapts a (from, to) position-spec operation.
func ranged(f func(*command.Context, string, string) command.Result) lua.LGFunction {
	return func(L *lua.LState) int {
		c := checkContext(L)
		return pushResult(L, f(c, L.CheckString(2), L.CheckString(3)))
	}
}

var contextMethods = map[string]lua.LGFunction{
	// cursor and buffer
	"move_forward":  unary((*command.Context).CursorMoveForward),
	"move_backward": unary((*command.Context).CursorMoveBackward),
	"yank":          ranged((*command.Context).CursorYank),
	"delete":        ranged((*command.Context).CursorDelete),
	"delete_left":   nullary((*command.Context).CursorDeleteLeft),
	"delete_right":  nullary((*command.Context).CursorDeleteRight),
	"vim_yank":      ranged((*command.Context).VimYank),
	"vim_delete":    ranged((*command.Context).VimDelete),
	"vim_change":    ranged((*command.Context).VimChange),
	"type":          unary((*command.Context).TypeText),
	"paste":         nullary((*command.Context).Paste),
	"clipboard_set": unary((*command.Context).ClipboardSet),
	"clipboard_get": func(L *lua.LState) int {
		L.Push(lua.LString(checkContext(L).ClipboardGet()))
		return 1
	},
	"buffer_text": func(L *lua.LState) int {
		L.Push(lua.LString(checkContext(L).Buf.Text()))
		return 1
	},

	// auxiliary input line
	"switch_auxline":     unary((*command.Context).SwitchAuxline),
	"set_auxline_prompt": unary((*command.Context).SetAuxlinePrompt),
	"aux_insert":         unary((*command.Context).AuxInsert),
	"aux_delete_last":    nullary((*command.Context).AuxDeleteLast),
	"accept_auxline":     nullary((*command.Context).AcceptAuxline),
	"clear_auxline":      nullary((*command.Context).ClearAuxline),
	"confirm_auxline":    nullary((*command.Context).ConfirmAuxline),
	"cancel_auxline":     nullary((*command.Context).CancelAuxline),
	"auxline_content": func(L *lua.LState) int {
		L.Push(lua.LString(checkContext(L).AuxlineContent()))
		return 1
	},

	// modes
	"push_mode":   unary((*command.Context).PushMode),
	"pop_mode":    nullary((*command.Context).PopMode),
	"switch_mode": unary((*command.Context).SwitchMode),
	"current_mode": func(L *lua.LState) int {
		L.Push(lua.LString(checkContext(L).CurrentMode()))
		return 1
	},

	// chat
	"send_message":      nullary((*command.Context).SendMessage),
	"send_reaction":     unary((*command.Context).SendReaction),
	"fetch_history":     nullary((*command.Context).FetchHistory),
	"next_room":         nullary((*command.Context).SelectNextRoom),
	"prev_room":         nullary((*command.Context).SelectPrevRoom),
	"clear_room_filter": nullary((*command.Context).ClearRoomFilter),
	"filter_rooms": func(L *lua.LState) int {
		c := checkContext(L)
		return pushResult(L, c.FilterRooms(L.CheckString(2), L.OptBool(3, false)))
	},
	"older_message":    nullary((*command.Context).SelectOlderMessage),
	"newer_message":    nullary((*command.Context).SelectNewerMessage),
	"deselect_message": nullary((*command.Context).DeselectMessage),
	"start_reply":      nullary((*command.Context).StartReply),
	"start_edit":       nullary((*command.Context).StartEdit),
	"cancel_pending":   nullary((*command.Context).CancelPending),

	// banner, script, process
	"clear_error": nullary((*command.Context).ClearError),
	"last_error": func(L *lua.LState) int {
		L.Push(lua.LString(checkContext(L).LastError()))
		return 1
	},
	"run":  unary((*command.Context).Run),
	"quit": nullary((*command.Context).Quit),
}
