package command

// Command is one bound action. Identity lives in the (mode, sequence)
// registration slot, not in the function value.
type Command func(ctx *Context) Result

// RunFirst composes commands into one that executes them in order and
// returns the first Ok or Error result. If every command returns
// NoOp, so does the composite.
func RunFirst(cmds ...Command) Command {
	return func(ctx *Context) Result {
		for _, cmd := range cmds {
			if r := cmd(ctx); !r.IsNoOp() {
				return r
			}
		}
		return NoOp()
	}
}

// RunAll composes commands into one that executes every command in
// order, stopping only on the first Error. Without an error the last
// command's result is returned; the empty chain returns NoOp.
func RunAll(cmds ...Command) Command {
	return func(ctx *Context) Result {
		last := NoOp()
		for _, cmd := range cmds {
			last = cmd(ctx)
			if last.IsError() {
				return last
			}
		}
		return last
	}
}
