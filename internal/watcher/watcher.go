package watcher

import (
	"fmt"
	"time"
)

// Operation is a file change type.
type Operation int

const (
	// OpCreate means the file appeared.
	OpCreate Operation = iota
	// OpModify means the file's content changed.
	OpModify
	// OpDelete means the file was removed.
	OpDelete
	// OpRename means the file was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is a change to one watched file.
type FileEvent struct {
	// Path is the watched path as given to New, cleaned.
	Path string

	Operation Operation
	Timestamp time.Time
}

// Options configures the watcher.
type Options struct {
	// DebounceWindow is how long the watcher waits for quiet before
	// emitting a batch. Default: 200ms
	DebounceWindow time.Duration

	// PollInterval is the polling fallback's period. Default: 1s
	PollInterval time.Duration

	// EventBufferSize is the number of batches buffered. Default: 16
	EventBufferSize int

	// ForcePolling skips fsnotify.
	ForcePolling bool
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		DebounceWindow:  200 * time.Millisecond,
		PollInterval:    time.Second,
		EventBufferSize: 16,
	}
}

// Validate rejects negative durations and buffer sizes.
func (o Options) Validate() error {
	if o.DebounceWindow < 0 {
		return fmt.Errorf("debounce window must be non-negative, got %s", o.DebounceWindow)
	}
	if o.PollInterval < 0 {
		return fmt.Errorf("poll interval must be non-negative, got %s", o.PollInterval)
	}
	if o.EventBufferSize < 0 {
		return fmt.Errorf("event buffer size must be non-negative, got %d", o.EventBufferSize)
	}
	return nil
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.DebounceWindow == 0 {
		o.DebounceWindow = defaults.DebounceWindow
	}
	if o.PollInterval == 0 {
		o.PollInterval = defaults.PollInterval
	}
	if o.EventBufferSize == 0 {
		o.EventBufferSize = defaults.EventBufferSize
	}
	return o
}
