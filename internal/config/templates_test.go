package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/wordrank/configs"
)

func TestTemplates_LoadCleanly(t *testing.T) {
	// Given: both embedded templates installed where Load looks
	userDir, dir := isolate(t)
	write(t, filepath.Join(userDir, "config.yaml"), configs.UserConfigTemplate)
	write(t, filepath.Join(dir, ".wordrank.yaml"), configs.ProjectConfigTemplate)

	// When: loading
	cfg, err := Load(dir, "")

	// Then: every key is known and the home-relative path is expanded
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".wordrank", "history.db"), cfg.History.Path)
	assert.Equal(t, NewConfig().Input.Workers, cfg.Input.Workers)
	assert.Equal(t, "plain", cfg.Output.Format)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~/x/history.db", filepath.Join(home, "x", "history.db")},
		{"~", home},
		{"/abs/path", "/abs/path"},
		{"rel/~/path", "rel/~/path"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
