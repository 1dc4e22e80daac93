package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parleychat/parley/internal/chat"
)

func TestResolveExplicitPathIsRequired(t *testing.T) {
	src, err := Resolve("/tmp/custom.lua")
	if err != nil {
		t.Fatal(err)
	}
	if src.Path != "/tmp/custom.lua" || !src.Required {
		t.Errorf("source = %+v", src)
	}
}

func TestResolveDiscoversXDGPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	src, err := Resolve("")
	if err != nil {
		t.Fatal(err)
	}
	if src.Path != "" {
		t.Fatalf("missing file should resolve to no user layer, got %q", src.Path)
	}

	path := filepath.Join(dir, "parley", "config.lua")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("-- user config"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err = Resolve("")
	if err != nil {
		t.Fatal(err)
	}
	if src.Path != path || src.Required {
		t.Errorf("source = %+v", src)
	}
}

func TestWatcherPostsReloadEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.lua")
	if err := os.WriteFile(path, []byte("-- v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := make(chan chat.Event, 1)
	w, err := Watch(path, events, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("-- v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if _, ok := ev.(chat.EventReload); !ok {
			t.Fatalf("event = %T, want EventReload", ev)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload event after a write")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.lua")
	if err := os.WriteFile(path, []byte("-- v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := make(chan chat.Event, 1)
	w, err := Watch(path, events, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %T for a sibling file", ev)
	case <-time.After(500 * time.Millisecond):
	}
}
