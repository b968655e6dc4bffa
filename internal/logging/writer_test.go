package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallWriter returns a writer whose size limit is a few bytes.
func smallWriter(t *testing.T, path string, limit int64, maxFiles int) *RotatingWriter {
	t.Helper()
	w, err := NewRotatingWriter(path, 1, maxFiles)
	require.NoError(t, err)
	w.maxSize = limit
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRotatingWriter_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "wordrank.log")

	w, err := NewRotatingWriter(path, 0, 0)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	assert.FileExists(t, path)
	assert.Equal(t, int64(defaultMaxSizeMB)*1024*1024, w.maxSize)
	assert.Equal(t, defaultMaxFiles, w.maxFiles)
}

func TestRotatingWriter_RotatesBySize(t *testing.T) {
	// Given: a writer that rotates past 10 bytes
	path := filepath.Join(t.TempDir(), "wordrank.log")
	w := smallWriter(t, path, 10, 5)

	// When: three 6-byte writes are made
	for _, s := range []string{"first\n", "secnd\n", "third\n"} {
		_, err := w.Write([]byte(s))
		require.NoError(t, err)
	}

	// Then: the newest write is current and older ones shifted up
	assert.Equal(t, "third\n", read(t, path))
	assert.Equal(t, "secnd\n", read(t, path+".1"))
	assert.Equal(t, "first\n", read(t, path+".2"))
}

func TestRotatingWriter_KeepsMaxFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordrank.log")
	w := smallWriter(t, path, 1, 2)

	for _, s := range []string{"a", "b", "c", "d", "e"} {
		_, err := w.Write([]byte(s))
		require.NoError(t, err)
	}

	assert.Equal(t, "e", read(t, path))
	assert.Equal(t, "d", read(t, path+".1"))
	assert.Equal(t, "c", read(t, path+".2"))
	assert.NoFileExists(t, path+".3")
}

func TestRotatingWriter_OversizedFirstWrite(t *testing.T) {
	// A write larger than the limit into an empty file is not rotated away.
	path := filepath.Join(t.TempDir(), "wordrank.log")
	w := smallWriter(t, path, 4, 3)

	_, err := w.Write([]byte(strings.Repeat("x", 20)))
	require.NoError(t, err)

	assert.Len(t, read(t, path), 20)
	assert.NoFileExists(t, path+".1")
}

func TestRotatingWriter_AppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordrank.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	w := smallWriter(t, path, 1024, 3)
	_, err := w.Write([]byte("new\n"))
	require.NoError(t, err)

	assert.Equal(t, "old\nnew\n", read(t, path))
	assert.Equal(t, int64(8), w.written)
}

func TestRotatingWriter_WriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordrank.log")
	w, err := NewRotatingWriter(path, 1, 1)
	require.NoError(t, err)

	w.SetImmediateSync(false)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	require.NoError(t, w.Sync())

	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
