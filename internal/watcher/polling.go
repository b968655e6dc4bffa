package watcher

import (
	"context"
	"os"
	"sync"
	"time"
)

// PollingWatcher detects changes by stat-ing each file on a ticker. It is
// the fallback when fsnotify cannot be used.
type PollingWatcher struct {
	interval time.Duration
	paths    []string
	emit     func(FileEvent)
	state    map[string]fileSnapshot
	stopCh   chan struct{}
	mu       sync.Mutex
	stopped  bool
}

type fileSnapshot struct {
	exists  bool
	modTime time.Time
	size    int64
}

// NewPollingWatcher polls paths every interval and passes each change to
// emit.
func NewPollingWatcher(paths []string, interval time.Duration, emit func(FileEvent)) *PollingWatcher {
	return &PollingWatcher{
		interval: interval,
		paths:    paths,
		emit:     emit,
		state:    make(map[string]fileSnapshot, len(paths)),
		stopCh:   make(chan struct{}),
	}
}

// Start records a baseline and polls until ctx is done or Stop is called.
func (p *PollingWatcher) Start(ctx context.Context) error {
	p.mu.Lock()
	for _, path := range p.paths {
		p.state[path] = snapshot(path)
	}
	p.mu.Unlock()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = p.Stop()
			return ctx.Err()
		case <-p.stopCh:
			return nil
		case <-ticker.C:
			p.detectChanges()
		}
	}
}

// Stop halts polling. Safe to call multiple times.
func (p *PollingWatcher) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopCh)
	}
	return nil
}

func (p *PollingWatcher) detectChanges() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}

	now := time.Now()
	for _, path := range p.paths {
		prev := p.state[path]
		cur := snapshot(path)
		p.state[path] = cur

		var op Operation
		switch {
		case !prev.exists && cur.exists:
			op = OpCreate
		case prev.exists && !cur.exists:
			op = OpDelete
		case cur.exists && (!cur.modTime.Equal(prev.modTime) || cur.size != prev.size):
			op = OpModify
		default:
			continue
		}
		p.emit(FileEvent{Path: path, Operation: op, Timestamp: now})
	}
}

func snapshot(path string) fileSnapshot {
	info, err := os.Stat(path)
	if err != nil {
		return fileSnapshot{}
	}
	return fileSnapshot{exists: true, modTime: info.ModTime(), size: info.Size()}
}
