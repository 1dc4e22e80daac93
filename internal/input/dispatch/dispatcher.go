// Package dispatch implements incremental multi-key sequence matching
// against the active mode chain.
package dispatch

import (
	"go.uber.org/zap"

	"github.com/parleychat/parley/internal/command"
	"github.com/parleychat/parley/internal/input/key"
	"github.com/parleychat/parley/internal/input/mode"
)

// Dispatcher buffers chords until they resolve to a bound command.
// The pending buffer is scoped to the active top mode; any mode
// change discards it.
type Dispatcher struct {
	reg     *mode.Registry
	stack   *mode.Stack
	pending key.Sequence

	// stackVersion is the stack transition counter observed at the
	// last event; a difference means a mode change happened.
	stackVersion uint64

	log *zap.Logger
}

// New creates a dispatcher over a registry and stack.
func New(reg *mode.Registry, stack *mode.Stack, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		reg:          reg,
		stack:        stack,
		stackVersion: stack.Version(),
		log:          log,
	}
}

// Pending returns a copy of the buffered chords.
func (d *Dispatcher) Pending() key.Sequence {
	return d.pending.Clone()
}

// Feed processes one chord. It either executes a bound command and
// returns its result, keeps buffering, or drops an unresolvable
// chord; the latter two return NoOp. An Error result sets the banner;
// the dispatcher never clears it.
func (d *Dispatcher) Feed(chord key.Chord, ctx *command.Context) command.Result {
	if v := d.stack.Version(); v != d.stackVersion {
		d.pending = nil
		d.stackVersion = v
	}

	d.pending = append(d.pending, chord)
	res, retry := d.resolve(ctx)
	if retry {
		// Total mismatch: the buffer cannot complete. Retry with the
		// newest chord alone so a single bound key still fires after
		// an aborted sequence.
		alone := len(d.pending) == 1
		d.pending = key.Sequence{chord}
		if alone {
			// Already tried this chord by itself.
			d.pending = nil
			return d.fallback(chord, ctx)
		}
		if res, retry = d.resolve(ctx); retry {
			d.pending = nil
			return d.fallback(chord, ctx)
		}
	}
	return res
}

// fallback hands an unresolvable printable chord to the mode chain's
// text-input handler, if any; everything else drops silently.
func (d *Dispatcher) fallback(chord key.Chord, ctx *command.Context) command.Result {
	if !chord.IsPrintable() {
		d.log.Debug("dropped unresolvable chord", zap.String("chord", chord.String()))
		return command.NoOp()
	}
	h := d.reg.InputHandlerFor(d.stack.Current())
	if h == nil {
		d.log.Debug("dropped unresolvable chord", zap.String("chord", chord.String()))
		return command.NoOp()
	}
	res := h(ctx, string(chord.Rune))
	if res.IsError() && ctx != nil && ctx.Banner != nil {
		ctx.Banner.Set(res.Message)
	}
	d.stackVersion = d.stack.Version()
	return res
}

// resolve attempts to match the pending buffer against the active
// mode chain. retry is true on a total mismatch.
func (d *Dispatcher) resolve(ctx *command.Context) (command.Result, bool) {
	top := d.stack.Current()
	cmd, exact := d.reg.Lookup(top, d.pending)
	longer := d.reg.HasStrictPrefix(top, d.pending)

	switch {
	case exact && !longer:
		seq := d.pending
		d.pending = nil
		res := d.execute(seq, cmd, ctx)
		return res, false
	case longer:
		// Strict prefix of at least one binding: consume silently.
		return command.NoOp(), false
	default:
		return command.NoOp(), true
	}
}

func (d *Dispatcher) execute(seq key.Sequence, cmd command.Command, ctx *command.Context) command.Result {
	res := cmd(ctx)
	if res.IsError() && ctx != nil && ctx.Banner != nil {
		ctx.Banner.Set(res.Message)
		d.log.Debug("command failed",
			zap.String("sequence", seq.String()),
			zap.String("error", res.Message))
	}
	d.stackVersion = d.stack.Version()
	return res
}
