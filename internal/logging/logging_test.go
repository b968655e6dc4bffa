package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFromString(tt.input))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "warn", cfg.Level)
	assert.Empty(t, cfg.FilePath)
	assert.True(t, cfg.WriteToStderr)
	assert.False(t, cfg.JSON)
}

func TestDebugConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DebugConfig()

	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.JSON)
	assert.Equal(t, DefaultLogPath(), cfg.FilePath)
	assert.True(t, strings.HasSuffix(cfg.FilePath, filepath.Join(".wordrank", "logs", "wordrank.log")))
}

func TestSetup_TextToStderrFiltersByLevel(t *testing.T) {
	// Given: a warn-level text logger on a buffer
	var stderr bytes.Buffer
	cfg := DefaultConfig()
	cfg.Stderr = &stderr

	logger, cleanup, err := Setup(cfg)
	require.NoError(t, err)
	defer cleanup()

	// When: logging below and at the threshold
	logger.Info("hidden")
	logger.Warn("shown", slog.Int("n", 3))

	// Then: only the warning is written, as text
	out := stderr.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "n=3")
}

func TestSetup_JSONFileAndStderr(t *testing.T) {
	// Given: debug JSON logging to a file, mirrored to a buffer
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "wordrank.log")
	cfg := Config{Level: "debug", FilePath: path, WriteToStderr: true, JSON: true, Stderr: &stderr}

	logger, cleanup, err := Setup(cfg)
	require.NoError(t, err)

	// When: one record is logged
	logger.Debug("analysis_complete", slog.Int64("tokens", 5))
	cleanup()

	// Then: both sinks hold the same JSON record
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, stderr.String(), string(data))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "analysis_complete", rec["msg"])
	assert.Equal(t, float64(5), rec["tokens"])
}

func TestSetup_NoSinks(t *testing.T) {
	logger, cleanup, err := Setup(Config{Level: "debug"})
	require.NoError(t, err)
	defer cleanup()

	assert.NotPanics(t, func() { logger.Error("dropped") })
}

func TestSetupServeMode_FileOnly(t *testing.T) {
	// Given: a serve-mode setup that would mirror to stderr if allowed
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "serve.log")
	cfg := Config{Level: "info", FilePath: path, WriteToStderr: true, Stderr: &stderr}

	// When: serve logging is installed and used
	cleanup, err := SetupServeMode(cfg)
	require.NoError(t, err)
	slog.Info("tool_called", slog.String("tool", "rank_words"))
	cleanup()

	// Then: nothing reaches stderr and the file has JSON lines
	assert.Empty(t, stderr.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"serve_logging_initialized"`)
	assert.Contains(t, lines[1], `"tool":"rank_words"`)
}

func TestFindLogFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := FindLogFile("")
	assert.Error(t, err)

	_, err = FindLogFile(filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)

	require.NoError(t, os.MkdirAll(DefaultLogDir(), 0o755))
	require.NoError(t, os.WriteFile(DefaultLogPath(), nil, 0o644))
	got, err := FindLogFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLogPath(), got)
}

func TestRotatedFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordrank.log")
	for _, p := range []string{path, path + ".1", path + ".2", path + ".4"} {
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	assert.Equal(t, []string{path, path + ".1", path + ".2"}, RotatedFiles(path))
}
