package prefabs

import (
	"testing"
	"time"
)

func TestWatcherCloseClosesEvents(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Fatalf("expected closed events channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("events channel not closed")
	}
}

func TestIsSpecOrScriptFile(t *testing.T) {
	cases := map[string][2]bool{
		"a/enemy.yaml":          {true, false},
		"a/enemy.YML":           {true, false},
		"a/scripts/alert.tengo": {false, true},
		"a/readme.md":           {false, false},
	}
	for path, want := range cases {
		if got := isSpecFile(path); got != want[0] {
			t.Fatalf("isSpecFile(%s) = %v", path, got)
		}
		if got := isScriptFile(path); got != want[1] {
			t.Fatalf("isScriptFile(%s) = %v", path, got)
		}
	}
}
