// Package profiling writes pprof CPU and heap profiles around a command run.
package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Options names the profile files to produce. Empty paths are skipped.
type Options struct {
	CPU  string
	Heap string
}

// Enabled reports whether any profile was requested.
func (o Options) Enabled() bool {
	return o.CPU != "" || o.Heap != ""
}

// Session is an active profiling run.
type Session struct {
	opts    Options
	cpuFile *os.File
}

// Start begins CPU profiling when requested. Stop must be called to flush
// the CPU profile and write the heap snapshot.
func Start(opts Options) (*Session, error) {
	s := &Session{opts: opts}
	if opts.CPU == "" {
		return s, nil
	}

	f, err := os.Create(opts.CPU)
	if err != nil {
		return nil, fmt.Errorf("failed to create CPU profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}
	s.cpuFile = f

	return s, nil
}

// Stop ends CPU profiling and writes the heap profile. It is safe to call
// more than once.
func (s *Session) Stop() error {
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		err := s.cpuFile.Close()
		s.cpuFile = nil
		if err != nil {
			return fmt.Errorf("failed to close CPU profile: %w", err)
		}
	}

	if s.opts.Heap != "" {
		path := s.opts.Heap
		s.opts.Heap = ""
		return writeHeap(path)
	}
	return nil
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Live objects only.
	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}
