package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackup_CopiesFile(t *testing.T) {
	// Given: an existing config file
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	// When: backing it up
	backup, err := Backup(path)

	// Then: the backup holds the same content
	require.NoError(t, err)
	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}

func TestBackup_MissingFile(t *testing.T) {
	backup, err := Backup(filepath.Join(t.TempDir(), "none.yaml"))

	assert.NoError(t, err)
	assert.Empty(t, backup)
}

func TestBackup_PrunesToMaxBackups(t *testing.T) {
	// Given: more backups than the limit, with ordered timestamps
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	for i := 0; i < MaxBackups+2; i++ {
		name := fmt.Sprintf("%s%s.20200101-00000%d.000", path, BackupSuffix, i)
		require.NoError(t, os.WriteFile(name, []byte("old"), 0o644))
	}

	// When: a new backup is taken
	newest, err := Backup(path)
	require.NoError(t, err)

	// Then: only the newest MaxBackups remain, newest first
	backups, err := ListBackups(path)
	require.NoError(t, err)
	require.Len(t, backups, MaxBackups)
	assert.Equal(t, newest, backups[0])
}

func TestListBackups_MissingDir(t *testing.T) {
	backups, err := ListBackups(filepath.Join(t.TempDir(), "gone", "config.yaml"))

	assert.NoError(t, err)
	assert.Empty(t, backups)
}
