package app

import (
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/command"
	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/engine/buffer"
	"github.com/parleychat/parley/internal/engine/register"
	"github.com/parleychat/parley/internal/input/auxline"
	"github.com/parleychat/parley/internal/input/dispatch"
	"github.com/parleychat/parley/internal/input/key"
	"github.com/parleychat/parley/internal/input/mode"
	"github.com/parleychat/parley/internal/script"
)

// Options configures an Engine.
type Options struct {
	// Backend is the messaging-protocol collaborator.
	Backend chat.Backend
	// Sender is the local user's display name for local echoes.
	Sender string
	// UserConfig is the user script source (possibly empty).
	UserConfig config.Source
	// Log defaults to a no-op logger.
	Log *zap.Logger
}

// Engine owns all interaction state and runs the single-threaded
// dispatch loop. Everything it holds is mutated only from Run's
// goroutine; the renderer observes it through Snapshot copies.
type Engine struct {
	log *zap.Logger

	reg    *mode.Registry
	stack  *mode.Stack
	disp   *dispatch.Dispatcher
	bridge *script.Bridge

	buf     *buffer.Buffer
	clip    *register.Register
	aux     *auxline.Line
	banner  *command.Banner
	session *chat.Session

	backend chat.Backend
	sender  string
	userCfg config.Source

	events   chan chat.Event
	quit     bool
	onUpdate func()
}

// New builds an engine and evaluates both configuration layers. A
// built-in failure, or a user failure when the file was explicitly
// required, aborts startup.
func New(opts Options) (*Engine, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		log:     log,
		buf:     buffer.New(),
		clip:    register.New(),
		aux:     auxline.New(),
		banner:  &command.Banner{},
		session: chat.NewSession(),
		backend: opts.Backend,
		sender:  opts.Sender,
		userCfg: opts.UserConfig,
		events:  make(chan chat.Event, 64),
	}
	if err := e.loadScripts(); err != nil {
		return nil, err
	}
	return e, nil
}

// Events is the queue backend completions and push updates re-enter
// the dispatch path through.
func (e *Engine) Events() chan<- chat.Event {
	return e.events
}

// SetBackend wires the messaging collaborator. Backends typically
// need the Events queue first, so this runs after New.
func (e *Engine) SetBackend(b chat.Backend) {
	e.backend = b
}

// loadScripts evaluates both layers into a fresh bridge and swaps it
// in. On failure the previous bridge stays untouched, so a bad reload
// never takes the running configuration down.
func (e *Engine) loadScripts() error {
	reg := mode.NewRegistry()
	bridge := script.NewBridge(reg, e.log)

	if err := bridge.LoadBuiltin(defaultConfig); err != nil {
		bridge.Close()
		return err
	}
	if e.userCfg.Path != "" {
		if err := bridge.LoadUserFile(e.userCfg.Path); err != nil {
			if e.userCfg.Required {
				bridge.Close()
				return err
			}
			// Degrade to the built-in defaults: a half-evaluated user
			// file may have left registrations behind, so rebuild.
			e.log.Warn("user config failed, using defaults", zap.Error(err))
			bridge.Close()
			reg = mode.NewRegistry()
			bridge = script.NewBridge(reg, e.log)
			if err := bridge.LoadBuiltin(defaultConfig); err != nil {
				bridge.Close()
				return err
			}
			e.banner.Set(err.Error())
		}
	}

	stack, err := mode.NewStack(reg, baseMode)
	if err != nil {
		bridge.Close()
		return err
	}
	if e.bridge != nil {
		e.bridge.Close()
	}
	e.reg = reg
	e.bridge = bridge
	e.stack = stack
	e.disp = dispatch.New(reg, stack, e.log)
	return nil
}

// context assembles the transient handle for one dispatch.
func (e *Engine) context() *command.Context {
	return &command.Context{
		Buf:        e.buf,
		Reg:        e.clip,
		Aux:        e.aux,
		Modes:      e.stack,
		Session:    e.session,
		Backend:    e.backend,
		Sender:     e.sender,
		Banner:     e.banner,
		AuxActions: auxActions,
		Eval:       e.bridge.Eval,
		QuitFn:     func() { e.quit = true },
		Log:        e.log,
	}
}

// auxActions maps prompt tags to the action consuming accepted
// content. The command prompt evaluates script text; the others set
// session state.
var auxActions = map[string]command.AuxAction{
	"command": func(c *command.Context, content string) command.Result {
		return c.Run(content)
	},
	"filter": func(c *command.Context, content string) command.Result {
		return c.FilterRooms(content, false)
	},
	"filter_unread": func(c *command.Context, content string) command.Result {
		return c.FilterRooms(content, true)
	},
	"react": func(c *command.Context, content string) command.Result {
		return c.SendReaction(content)
	},
	"limit": func(c *command.Context, content string) command.Result {
		n, err := strconv.Atoi(content)
		if err != nil || !c.Session.SetHistoryLimit(n) {
			return command.Errorf("invalid history limit %q", content)
		}
		return command.Ok()
	},
}

// HandleKey dispatches one chord.
func (e *Engine) HandleKey(ch key.Chord) command.Result {
	return e.disp.Feed(ch, e.context())
}

// handleEvent folds one backend event into the session.
func (e *Engine) handleEvent(ev chat.Event) {
	switch ev := ev.(type) {
	case chat.EventReload:
		e.reload()
	case chat.EventSendFailed:
		e.session.Apply(ev)
		e.banner.Set(ev.Reason)
		e.log.Warn("send failed", zap.String("reason", ev.Reason))
	default:
		e.session.Apply(ev)
	}
}

// reload re-evaluates the configuration, keeping runtime state
// (buffer, register, session). The mode stack resets to the base.
func (e *Engine) reload() {
	if err := e.loadScripts(); err != nil {
		var le *script.LoadError
		if errors.As(err, &le) {
			e.banner.Set(le.Error())
		} else {
			e.banner.Set(err.Error())
		}
		e.log.Warn("config reload failed", zap.Error(err))
		return
	}
	e.log.Info("config reloaded")
}

// Quitting reports whether a quit command has run.
func (e *Engine) Quitting() bool {
	return e.quit
}

// OnUpdate registers a callback run after every handled event,
// typically to repaint.
func (e *Engine) OnUpdate(fn func()) {
	e.onUpdate = fn
}

// Run is the dispatch loop: one key event or backend event is fully
// resolved before the next is accepted. It returns when the key
// source closes or a quit command runs.
func (e *Engine) Run(keys <-chan key.Chord) {
	e.update()
	for !e.quit {
		select {
		case ch, ok := <-keys:
			if !ok {
				return
			}
			e.HandleKey(ch)
		case ev := <-e.events:
			e.handleEvent(ev)
		}
		e.update()
	}
}

func (e *Engine) update() {
	if e.onUpdate != nil {
		e.onUpdate()
	}
}

// Close releases the script engine.
func (e *Engine) Close() {
	if e.bridge != nil {
		e.bridge.Close()
	}
}
