package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db.lock")
	a := NewFileLock(path)
	b := NewFileLock(path)

	ok, err := a.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, a.IsLocked())

	ok, err = b.TryLock()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, b.IsLocked())

	require.NoError(t, a.Unlock())
	ok, err = b.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, b.Unlock())
}

func TestFileLock_UnlockWhenNotHeld(t *testing.T) {
	l := NewFileLock(filepath.Join(t.TempDir(), "x.lock"))

	assert.NoError(t, l.Unlock())
	assert.Equal(t, filepath.Join(filepath.Dir(l.Path()), "x.lock"), l.Path())
}
