package mode

import (
	"errors"
	"testing"

	"github.com/parleychat/parley/internal/command"
	"github.com/parleychat/parley/internal/input/key"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.Define("normal", ""); err != nil {
		t.Fatal(err)
	}
	if err := r.Define("visual", "normal"); err != nil {
		t.Fatal(err)
	}
	return r
}

func named(name string, log *[]string) command.Command {
	return func(*command.Context) command.Result {
		*log = append(*log, name)
		return command.Ok()
	}
}

func TestDefineValidatesParent(t *testing.T) {
	r := NewRegistry()
	if err := r.Define("child", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := r.Define("normal", ""); err != nil {
		t.Fatal(err)
	}
	if err := r.Define("a", "normal"); err != nil {
		t.Fatal(err)
	}
	if err := r.Define("b", "a"); err != nil {
		t.Fatal(err)
	}
	if err := r.Define("a", "b"); !errors.Is(err, ErrCycle) {
		t.Fatalf("err = %v, want ErrCycle", err)
	}
}

func TestLookupClimbsParentChain(t *testing.T) {
	r := testRegistry(t)
	var log []string
	r.Bind("normal", key.MustParseSequence("q"), named("normal-q", &log))

	cmd, ok := r.Lookup("visual", key.MustParseSequence("q"))
	if !ok {
		t.Fatal("visual should inherit q from normal")
	}
	cmd(nil)
	if len(log) != 1 || log[0] != "normal-q" {
		t.Errorf("log = %v", log)
	}

	if _, ok := r.Lookup("visual", key.MustParseSequence("z")); ok {
		t.Error("unbound sequence should not resolve")
	}
}

func TestChildShadowsAncestor(t *testing.T) {
	r := testRegistry(t)
	var log []string
	dd := key.MustParseSequence("dd")
	r.Bind("normal", dd, named("normal-dd", &log))
	r.Bind("visual", dd, named("visual-dd", &log))

	cmd, ok := r.Lookup("visual", dd)
	if !ok {
		t.Fatal("dd should resolve")
	}
	cmd(nil)
	if log[len(log)-1] != "visual-dd" {
		t.Errorf("resolved %v, child binding must shadow the ancestor", log)
	}
}

func TestRebindOverwrites(t *testing.T) {
	r := testRegistry(t)
	var log []string
	q := key.MustParseSequence("q")
	r.Bind("normal", q, named("first", &log))
	r.Bind("normal", q, named("second", &log))

	cmd, _ := r.Lookup("normal", q)
	cmd(nil)
	if len(log) != 1 || log[0] != "second" {
		t.Errorf("log = %v, rebinding must overwrite", log)
	}
}

func TestHasStrictPrefix(t *testing.T) {
	r := testRegistry(t)
	r.Bind("normal", key.MustParseSequence("dd"), named("", new([]string)))

	if !r.HasStrictPrefix("visual", key.MustParseSequence("d")) {
		t.Error("d is a strict prefix of the inherited dd")
	}
	if r.HasStrictPrefix("visual", key.MustParseSequence("dd")) {
		t.Error("an exact match is not a strict prefix")
	}
	if r.HasStrictPrefix("visual", key.MustParseSequence("x")) {
		t.Error("x prefixes nothing")
	}
}

func TestUnbindAndClear(t *testing.T) {
	r := testRegistry(t)
	q := key.MustParseSequence("q")
	r.Bind("visual", q, named("", new([]string)))
	r.Bind("normal", q, named("", new([]string)))

	if !r.Unbind("visual", q) {
		t.Fatal("unbind should report the removed slot")
	}
	if _, ok := r.Lookup("visual", q); !ok {
		t.Error("after unbinding the child slot, the ancestor binding shows through")
	}
	r.ClearBindings("normal")
	if _, ok := r.Lookup("visual", q); ok {
		t.Error("cleared mode should resolve nothing")
	}
}

func TestStackTransitions(t *testing.T) {
	r := testRegistry(t)
	s, err := NewStack(r, "normal")
	if err != nil {
		t.Fatal(err)
	}
	if s.Current() != "normal" || s.Depth() != 1 {
		t.Fatalf("initial stack = %v", s.Names())
	}

	if err := s.Push("visual", nil); err != nil {
		t.Fatal(err)
	}
	if s.Current() != "visual" || s.Depth() != 2 {
		t.Fatalf("stack = %v", s.Names())
	}

	if !s.Pop() || s.Current() != "normal" {
		t.Fatal("pop should restore normal")
	}
	if s.Pop() {
		t.Error("the base mode must never be popped")
	}
	if s.Depth() != 1 {
		t.Errorf("depth = %d, want 1", s.Depth())
	}
}

func TestStackPushUnknownMode(t *testing.T) {
	r := testRegistry(t)
	s, _ := NewStack(r, "normal")
	if err := s.Push("ghost", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if s.Depth() != 1 {
		t.Error("failed push must not grow the stack")
	}
	if err := s.Switch("ghost", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if s.Current() != "normal" {
		t.Error("failed switch must leave the stack unchanged")
	}
}

func TestEnterHooksRunOnPushAndSwitch(t *testing.T) {
	r := testRegistry(t)
	var log []string
	r.Define("insert", "normal")
	r.OnEnter("visual", named("enter-visual", &log))
	r.OnEnter("insert", named("enter-insert", &log))

	s, _ := NewStack(r, "normal")
	ctx := &command.Context{Banner: &command.Banner{}}

	s.Push("visual", ctx)
	s.Switch("insert", ctx)
	want := []string{"enter-visual", "enter-insert"}
	if len(log) != 2 || log[0] != want[0] || log[1] != want[1] {
		t.Errorf("log = %v, want %v", log, want)
	}
	if s.Depth() != 2 || s.Current() != "insert" {
		t.Errorf("stack = %v, switch replaces the top", s.Names())
	}
}

func TestEnterHookOverwrite(t *testing.T) {
	r := testRegistry(t)
	var log []string
	r.OnEnter("visual", named("first", &log))
	r.OnEnter("visual", named("second", &log))

	s, _ := NewStack(r, "normal")
	s.Push("visual", &command.Context{Banner: &command.Banner{}})
	if len(log) != 1 || log[0] != "second" {
		t.Errorf("log = %v, later hook registration overwrites", log)
	}
}

func TestEnterHookErrorSetsBanner(t *testing.T) {
	r := testRegistry(t)
	r.OnEnter("visual", func(*command.Context) command.Result {
		return command.Error("hook failed")
	})
	s, _ := NewStack(r, "normal")
	ctx := &command.Context{Banner: &command.Banner{}}
	if err := s.Push("visual", ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Banner.Message() != "hook failed" {
		t.Errorf("banner = %q", ctx.Banner.Message())
	}
	if s.Current() != "visual" {
		t.Error("a failing hook does not undo the transition")
	}
}

func TestInputHandlerInheritsThroughChain(t *testing.T) {
	r := testRegistry(t)
	var got string
	r.OnInput("normal", func(_ *command.Context, text string) command.Result {
		got = text
		return command.Ok()
	})

	h := r.InputHandlerFor("visual")
	if h == nil {
		t.Fatal("visual should inherit normal's input handler")
	}
	h(nil, "a")
	if got != "a" {
		t.Errorf("handler received %q", got)
	}
	if r.InputHandlerFor("ghost") != nil {
		t.Error("unknown mode has no handler")
	}
}

func TestVersionTracksTransitions(t *testing.T) {
	r := testRegistry(t)
	s, _ := NewStack(r, "normal")
	v := s.Version()
	s.Push("visual", nil)
	if s.Version() == v {
		t.Error("push should advance the version")
	}
	v = s.Version()
	s.Pop()
	if s.Version() == v {
		t.Error("pop should advance the version")
	}
}
