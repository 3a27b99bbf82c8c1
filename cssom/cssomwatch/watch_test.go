package cssomwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocssom/cssom/cssom"
)

func TestWatchReparsesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "styles.css")
	if err := os.WriteFile(path, []byte("a { color: red; }"), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	stop := make(chan struct{})
	defer close(stop)

	events, err := Watch(dir, cssom.DefaultReaderSettings(), stop)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("a { color: blue; }"), 0o644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Err != nil {
			t.Fatalf("unexpected event error: %v", ev.Err)
		}
		if ev.Sheet == nil {
			t.Fatal("expected a parsed stylesheet")
		}
		if len(ev.Sheet.Rules) != 1 || ev.Sheet.Rules[0].Style == nil {
			t.Fatalf("expected 1 style rule, got %+v", ev.Sheet.Rules)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a watch event")
	}
}

func TestWatchIgnoresNonCSSFiles(t *testing.T) {
	dir := t.TempDir()
	stop := make(chan struct{})
	defer close(stop)

	events, err := Watch(dir, cssom.DefaultReaderSettings(), stop)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	txtPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("hello"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case ev := <-events:
		t.Fatalf("expected no event for a non-.css file, got %+v", ev)
	case <-time.After(300 * time.Millisecond):
		// no event arrived, as expected
	}
}

func TestWatchStopsOnStopChannelClose(t *testing.T) {
	dir := t.TempDir()
	stop := make(chan struct{})

	events, err := Watch(dir, cssom.DefaultReaderSettings(), stop)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	close(stop)

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected events channel to be closed after stop")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the events channel to close")
	}
}
