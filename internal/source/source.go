// Package source acquires the text to be counted, from files or stdin.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
)

// StdinName is both the argument that selects stdin and the Document name
// given to it.
const StdinName = "-"

// DefaultMaxBytes caps one document when no limit is configured.
const DefaultMaxBytes int64 = 64 << 20

// Document is one named input text.
type Document struct {
	Name string
	Text []byte
}

// Options configures Load.
type Options struct {
	// MaxBytes rejects any document larger than this. Zero uses DefaultMaxBytes.
	MaxBytes int64

	// Workers bounds concurrent file reads. Zero uses runtime.NumCPU().
	Workers int
}

// Load reads every path, or stdin when paths is empty. Files are read
// concurrently but returned in argument order so counting stays
// deterministic. The first failure cancels the remaining reads.
func Load(ctx context.Context, paths []string, stdin io.Reader, opts Options) ([]Document, error) {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if len(paths) == 0 {
		paths = []string{StdinName}
	}

	start := time.Now()
	docs := make([]Document, len(paths))

	stdinSeen := false
	for _, p := range paths {
		if p == StdinName {
			if stdinSeen {
				return nil, werrors.New(werrors.ErrCodeInvalidInput, "stdin can only be read once", nil).
					WithSuggestion("Pass '-' at most once")
			}
			stdinSeen = true
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var (
				text []byte
				err  error
			)
			if p == StdinName {
				text, err = readStream(stdin, StdinName, opts.MaxBytes)
			} else {
				text, err = readFile(p, opts.MaxBytes)
			}
			if err != nil {
				return err
			}

			docs[i] = Document{Name: p, Text: text}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, d := range docs {
		total += len(d.Text)
	}
	slog.Debug("sources_loaded",
		slog.Int("documents", len(docs)),
		slog.Int("bytes", total),
		slog.Duration("duration", time.Since(start)))

	return docs, nil
}

func readFile(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, openError(path, err)
	}
	if info.IsDir() {
		return nil, werrors.New(werrors.ErrCodeInvalidPath, fmt.Sprintf("%s is a directory", path), nil).
			WithDetail("path", path).
			WithSuggestion("Pass regular files, or pipe text on stdin")
	}
	if info.Mode().IsRegular() && info.Size() > maxBytes {
		return nil, tooLarge(path, maxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer func() { _ = f.Close() }()

	return readStream(f, path, maxBytes)
}

func readStream(r io.Reader, name string, maxBytes int64) ([]byte, error) {
	if r == nil {
		return nil, werrors.New(werrors.ErrCodeInvalidInput, "no input stream available", nil).
			WithDetail("path", name)
	}

	// One byte over the limit tells an exact fit from an overflow.
	limit := maxBytes
	if limit < math.MaxInt64 {
		limit++
	}
	text, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, werrors.New(werrors.ErrCodeReadFailed, fmt.Sprintf("failed to read %s", name), err).
			WithDetail("path", name)
	}
	if int64(len(text)) > maxBytes {
		return nil, tooLarge(name, maxBytes)
	}
	return text, nil
}

func openError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return werrors.New(werrors.ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), err).
			WithDetail("path", path).
			WithSuggestion("Check the path, or use '-' to read stdin")
	case os.IsPermission(err):
		return werrors.New(werrors.ErrCodeFilePermission, fmt.Sprintf("permission denied: %s", path), err).
			WithDetail("path", path)
	default:
		return werrors.New(werrors.ErrCodeReadFailed, fmt.Sprintf("cannot open %s", path), err).
			WithDetail("path", path)
	}
}

func tooLarge(name string, maxBytes int64) error {
	return werrors.New(werrors.ErrCodeFileTooLarge, fmt.Sprintf("%s exceeds the input size limit", name), nil).
		WithDetail("path", name).
		WithDetail("max_bytes", strconv.FormatInt(maxBytes, 10)).
		WithSuggestion("Raise input.max_bytes in the config")
}
