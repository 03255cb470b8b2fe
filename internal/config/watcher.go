package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before a change is
// reported.
const DefaultDebounce = 100 * time.Millisecond

// Change reports that a watched file was written, created or removed.
type Change struct {
	File    string // Absolute path
	Removed bool
}

// Watcher monitors the settings file and chart files using fsnotify.
// Parent directories are watched rather than the files themselves so that
// editors which replace a file by rename are still seen.
type Watcher struct {
	Changes  <-chan Change // Read-only external channel
	Debounce time.Duration

	changes chan Change // Internal write channel
	files   map[string]bool
	dirs    []string
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given files. Empty paths are skipped.
func NewWatcher(files ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		Debounce: DefaultDebounce,
		files:    make(map[string]bool),
		done:     make(chan struct{}),
		watcher:  fw,
	}
	seen := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}

	ch := make(chan Change, 16)
	w.Changes = ch
	w.changes = ch
	return w, nil
}

// Files returns the number of files being watched.
func (w *Watcher) Files() int { return len(w.files) }

// Start begins watching.
func (w *Watcher) Start() error {
	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	type pendingChange struct {
		at      time.Time
		removed bool
	}
	pending := make(map[string]pendingChange)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file, p := range pending {
					w.emit(Change{File: file, Removed: p.removed})
				}
				return
			}

			name := filepath.Clean(event.Name)
			if !w.files[name] {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				pending[name] = pendingChange{at: time.Now(), removed: true}
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				pending[name] = pendingChange{at: time.Now()}
			}

		case <-ticker.C:
			now := time.Now()
			for file, p := range pending {
				if now.Sub(p.at) >= debounce {
					w.emit(Change{File: file, Removed: p.removed})
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// emit drops the change when the buffer is full; the consumer re-reads
// everything on any change, so one pending notice is enough.
func (w *Watcher) emit(c Change) {
	select {
	case w.changes <- c:
	default:
	}
}
