package textio

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed reports use of a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// Event reports an external change to the watched file.
type Event struct {
	Path    string
	Removed bool
}

// Watcher reports external modifications to a single open file. The
// file's directory is watched rather than the file itself, so saves
// that replace the file via rename are still seen.
type Watcher struct {
	mu      sync.Mutex
	fw      *fsnotify.Watcher
	path    string
	events  chan Event
	errs    chan error
	closeCh chan struct{}
	wg      sync.WaitGroup
	closed  bool
}

// WatchFile starts watching one file for external changes.
func WatchFile(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		fw:      fw,
		path:    abs,
		events:  make(chan Event, 16),
		errs:    make(chan error, 16),
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Events returns the change event channel.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the watcher error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fw.Close()
	w.wg.Wait()
	close(w.events)
	close(w.errs)
	return err
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// handle forwards events that concern the watched file. Write and
// Create both mean the content changed; Create covers editors that
// save by writing a temp file and renaming it into place.
func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Name != w.path {
		return
	}

	var out Event
	switch {
	case ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create):
		out = Event{Path: w.path}
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		out = Event{Path: w.path, Removed: true}
	default:
		return
	}

	select {
	case w.events <- out:
	default:
		// Channel full, drop; the newest state wins on reload anyway.
	}
}
