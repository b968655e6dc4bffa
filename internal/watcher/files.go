package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
)

// FileWatcher watches a fixed set of files and emits debounced batches of
// changes.
type FileWatcher struct {
	fsWatcher   *fsnotify.Watcher
	poller      *PollingWatcher
	useFsnotify bool
	debouncer   *Debouncer
	errors      chan error
	stopCh      chan struct{}

	// watched maps absolute paths to the paths reported in events.
	watched map[string]string
	dirs    []string

	mu      sync.Mutex
	stopped bool
}

// New prepares a watcher for paths. Every path must name an existing
// regular file.
func New(paths []string, opts Options) (*FileWatcher, error) {
	if len(paths) == 0 {
		return nil, werrors.ValidationError("no files to watch", nil).
			WithSuggestion("Pass one or more files: wordrank watch FILE...")
	}
	if err := opts.Validate(); err != nil {
		return nil, werrors.ValidationError(err.Error(), err)
	}
	opts = opts.WithDefaults()

	w := &FileWatcher{
		debouncer: NewDebouncer(opts.DebounceWindow, opts.EventBufferSize),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
		watched:   make(map[string]string, len(paths)),
	}

	dirSet := make(map[string]struct{})
	display := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, werrors.New(werrors.ErrCodeInvalidPath, "cannot resolve path", err).WithDetail("path", p)
		}
		if err := checkFile(p); err != nil {
			return nil, err
		}
		if _, dup := w.watched[abs]; dup {
			continue
		}
		w.watched[abs] = filepath.Clean(p)
		display = append(display, filepath.Clean(p))
		dirSet[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirSet {
		w.dirs = append(w.dirs, d)
	}
	sort.Strings(w.dirs)

	if !opts.ForcePolling {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			w.fsWatcher = fsw
			w.useFsnotify = true
			return w, nil
		}
		slog.Warn("fsnotify unavailable, falling back to polling", slog.String("error", err.Error()))
	}

	w.poller = NewPollingWatcher(display, opts.PollInterval, w.debouncer.Add)
	return w, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return werrors.New(werrors.ErrCodeFileNotFound, "file not found", err).WithDetail("path", path)
		}
		return werrors.New(werrors.ErrCodeWatchFailed, "cannot watch file", err).WithDetail("path", path)
	}
	if info.IsDir() {
		return werrors.New(werrors.ErrCodeInvalidPath, "cannot watch a directory", nil).
			WithDetail("path", path).
			WithSuggestion("Pass the files inside the directory instead")
	}
	return nil
}

// Start watches until ctx is done or Stop is called. It returns ctx.Err()
// on cancellation and a coded ERR_502 error when watching cannot begin, in
// which case both channels are already closed.
func (w *FileWatcher) Start(ctx context.Context) error {
	if !w.useFsnotify {
		err := w.poller.Start(ctx)
		_ = w.Stop()
		return err
	}

	for _, dir := range w.dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			_ = w.Stop()
			return werrors.New(werrors.ErrCodeWatchFailed, "cannot watch directory", err).WithDetail("path", dir)
		}
	}
	slog.Debug("watch_started",
		slog.Int("files", len(w.watched)),
		slog.Int("dirs", len(w.dirs)))

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.emitError(werrors.Wrap(werrors.ErrCodeWatchFailed, err))
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	path, ok := w.watched[filepath.Clean(event.Name)]
	if !ok {
		return
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&fsnotify.Remove != 0:
		op = OpDelete
	case event.Op&fsnotify.Rename != 0:
		op = OpRename
	default:
		return
	}

	w.debouncer.Add(FileEvent{Path: path, Operation: op, Timestamp: time.Now()})
}

func (w *FileWatcher) emitError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}

// Events returns the channel of debounced batches. It is closed by Stop.
func (w *FileWatcher) Events() <-chan []FileEvent {
	return w.debouncer.Output()
}

// Errors returns non-fatal watch errors. It is closed by Stop.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Stop releases resources and closes both channels. Safe to call multiple
// times.
func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopCh)

	w.debouncer.Stop()
	if w.fsWatcher != nil {
		_ = w.fsWatcher.Close()
	}
	if w.poller != nil {
		_ = w.poller.Stop()
	}
	close(w.errors)
	return nil
}

// Files returns the watched paths as reported in events, sorted.
func (w *FileWatcher) Files() []string {
	files := make([]string, 0, len(w.watched))
	for _, p := range w.watched {
		files = append(files, p)
	}
	sort.Strings(files)
	return files
}

// WatcherType returns "fsnotify" or "polling".
func (w *FileWatcher) WatcherType() string {
	if w.useFsnotify {
		return "fsnotify"
	}
	return "polling"
}
