package source

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_NoPaths_ReadsStdin(t *testing.T) {
	// Given: no paths and text on stdin
	stdin := strings.NewReader("I like cookies.")

	// When: loading
	docs, err := Load(context.Background(), nil, stdin, Options{})

	// Then: a single stdin document
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, StdinName, docs[0].Name)
	assert.Equal(t, "I like cookies.", string(docs[0].Text))
}

func TestLoad_Files_PreserveArgumentOrder(t *testing.T) {
	// Given: many files read with several workers
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 20; i++ {
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("f%02d.txt", i), fmt.Sprintf("word%d", i)))
	}

	// When: loading concurrently
	docs, err := Load(context.Background(), paths, nil, Options{Workers: 4})

	// Then: documents come back in argument order
	require.NoError(t, err)
	require.Len(t, docs, len(paths))
	for i, d := range docs {
		assert.Equal(t, paths[i], d.Name)
		assert.Equal(t, fmt.Sprintf("word%d", i), string(d.Text))
	}
}

func TestLoad_MixedFileAndStdin(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")

	docs, err := Load(context.Background(), []string{a, StdinName}, strings.NewReader("beta"), Options{})

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "alpha", string(docs[0].Text))
	assert.Equal(t, "beta", string(docs[1].Text))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	big := writeFile(t, dir, "big.txt", strings.Repeat("x", 100))

	tests := []struct {
		name     string
		paths    []string
		stdin    string
		maxBytes int64
		wantCode string
	}{
		{
			name:     "missing file",
			paths:    []string{filepath.Join(dir, "nope.txt")},
			wantCode: werrors.ErrCodeFileNotFound,
		},
		{
			name:     "directory",
			paths:    []string{dir},
			wantCode: werrors.ErrCodeInvalidPath,
		},
		{
			name:     "file over limit",
			paths:    []string{big},
			maxBytes: 10,
			wantCode: werrors.ErrCodeFileTooLarge,
		},
		{
			name:     "stdin over limit",
			paths:    nil,
			stdin:    strings.Repeat("y", 11),
			maxBytes: 10,
			wantCode: werrors.ErrCodeFileTooLarge,
		},
		{
			name:     "stdin twice",
			paths:    []string{StdinName, StdinName},
			wantCode: werrors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.paths, strings.NewReader(tt.stdin), Options{MaxBytes: tt.maxBytes})
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, werrors.GetCode(err))
		})
	}
}

func TestLoad_ExactLimit_Allowed(t *testing.T) {
	docs, err := Load(context.Background(), nil, strings.NewReader("0123456789"), Options{MaxBytes: 10})

	require.NoError(t, err)
	assert.Len(t, docs[0].Text, 10)
}

func TestLoad_MaxInt64Limit_ReadsInput(t *testing.T) {
	// Given: the largest possible limit
	opts := Options{MaxBytes: math.MaxInt64}

	// When: reading stdin
	docs, err := Load(context.Background(), nil, strings.NewReader("cookies"), opts)

	// Then: the text is read rather than treated as empty
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "cookies", string(docs[0].Text))
}

func TestLoad_StdinReadError(t *testing.T) {
	boom := errors.New("broken pipe")

	_, err := Load(context.Background(), nil, iotest.ErrReader(boom), Options{})

	require.Error(t, err)
	assert.Equal(t, werrors.ErrCodeReadFailed, werrors.GetCode(err))
	assert.ErrorIs(t, err, boom)
}

func TestLoad_NilStdin(t *testing.T) {
	_, err := Load(context.Background(), nil, nil, Options{})

	require.Error(t, err)
	assert.Equal(t, werrors.ErrCodeInvalidInput, werrors.GetCode(err))
}

func TestLoad_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, []string{a}, nil, Options{})

	assert.ErrorIs(t, err, context.Canceled)
}
