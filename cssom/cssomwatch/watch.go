// Package cssomwatch watches a directory of .css files and re-parses a
// file whenever it changes, for a bundler dev-server's live-reparse loop.
// This is the one place spec.md's "none in the core" CLI/tooling framing
// is deliberately extended: Watch is a separate, optional package that
// cssom.Parse does not depend on.
package cssomwatch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/gocssom/cssom/cssom"
	"github.com/gocssom/cssom/cssomlog"
)

// Event is delivered once per re-parse. Err is set when the file could
// not be read. Otherwise Sheet holds the result (warnings already
// delivered to settings.ErrorHandler/InterpretErrorHandler), or is nil,
// with Err also nil, when the parse failed fatally.
type Event struct {
	Path  string
	Sheet *cssom.CascadingStyleSheet
	Err   error
}

// Watch watches dir for writes to and creations of *.css files and sends
// an Event for each one on the returned channel. It returns at once; a
// background goroutine delivers the events and, once stop is closed,
// closes the watcher and the event channel.
func Watch(dir string, settings cssom.ReaderSettings, stop <-chan struct{}) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer watcher.Close()
		for {
			select {
			case <-stop:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(ev.Name, ".css") {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				events <- reparse(ev.Name, settings)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				cssomlog.Warnf("watch: fsnotify error for %s: %v", dir, err)
			}
		}
	}()
	return events, nil
}

func reparse(path string, settings cssom.ReaderSettings) Event {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Event{Path: path, Err: err}
	}
	sheet := cssom.Parse(raw, settings)
	return Event{Path: filepath.Clean(path), Sheet: sheet}
}
