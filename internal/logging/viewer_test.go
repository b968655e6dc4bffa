package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/wordrank/internal/output"
)

func logLine(level, msg string, extra string) string {
	return fmt.Sprintf(`{"time":"2026-01-02T03:04:05.123Z","level":"%s","msg":"%s"%s}`, level, msg, extra)
}

func sampleLog() string {
	return strings.Join([]string{
		logLine("DEBUG", "sources_loaded", `,"count":2`),
		logLine("INFO", "analysis_complete", `,"tokens":5`),
		"not json at all",
		logLine("WARN", "history_busy", ""),
		logLine("ERROR", "read_failed", `,"path":"a.txt"`),
	}, "\n") + "\n"
}

func TestParseLine(t *testing.T) {
	entry := ParseLine(logLine("INFO", "analysis_complete", `,"tokens":5,"lookup":"scan"`))

	require.True(t, entry.IsValid)
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "analysis_complete", entry.Msg)
	assert.Equal(t, 3, entry.Time.Hour())
	assert.Equal(t, map[string]any{"tokens": float64(5), "lookup": "scan"}, entry.Attrs)

	bad := ParseLine("plain text")
	assert.False(t, bad.IsValid)
	assert.Equal(t, "plain text", bad.Raw)
}

func TestViewer_TailReader(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ViewerConfig
		n       int
		wantMsg []string
	}{
		{"all lines", ViewerConfig{}, 10, []string{"sources_loaded", "analysis_complete", "", "history_busy", "read_failed"}},
		{"last two", ViewerConfig{}, 2, []string{"history_busy", "read_failed"}},
		{"level filter keeps raw lines", ViewerConfig{Level: "warn"}, 10, []string{"", "history_busy", "read_failed"}},
		{"pattern", ViewerConfig{Pattern: regexp.MustCompile(`tokens`)}, 10, []string{"analysis_complete"}},
		{"zero lines", ViewerConfig{}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewer(tt.cfg, &strings.Builder{})

			entries, err := v.TailReader(strings.NewReader(sampleLog()), tt.n)
			require.NoError(t, err)

			var msgs []string
			for _, e := range entries {
				msgs = append(msgs, e.Msg)
			}
			assert.Equal(t, tt.wantMsg, msgs)
		})
	}
}

func TestViewer_FormatEntry(t *testing.T) {
	v := NewViewer(ViewerConfig{Styles: output.NoColorStyles()}, &strings.Builder{})

	got := v.FormatEntry(ParseLine(logLine("ERROR", "read_failed", `,"path":"a.txt","code":"ERR_207_READ_FAILED"`)))

	assert.Equal(t, "03:04:05.123 ERROR read_failed code=ERR_207_READ_FAILED path=a.txt", got)
	assert.Equal(t, "raw", v.FormatEntry(ParseLine("raw")))
}

func TestViewer_TailAndPrint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordrank.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog()), 0o644))

	var out strings.Builder
	v := NewViewer(ViewerConfig{Level: "error", Styles: output.NoColorStyles()}, &out)

	entries, err := v.Tail(path, 100)
	require.NoError(t, err)
	v.Print(entries)

	assert.Equal(t, "not json at all\n03:04:05.123 ERROR read_failed path=a.txt\n", out.String())

	_, err = v.Tail(filepath.Join(t.TempDir(), "none.log"), 10)
	assert.Error(t, err)
}

func TestViewer_Follow(t *testing.T) {
	// Given: a log file with history and a follower started at its end
	path := filepath.Join(t.TempDir(), "wordrank.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog()), 0o644))

	v := NewViewer(ViewerConfig{PollInterval: 5 * time.Millisecond}, &strings.Builder{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entries := make(chan LogEntry, 4)
	done := make(chan error, 1)
	go func() { done <- v.Follow(ctx, path, entries) }()

	// When: new lines are appended, one in two pieces
	time.Sleep(20 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	line := logLine("INFO", "appended", "")
	_, err = f.WriteString(line[:10])
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = f.WriteString(line[10:] + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// Then: only the new entry arrives, whole
	select {
	case e := <-entries:
		assert.True(t, e.IsValid)
		assert.Equal(t, "appended", e.Msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no entry followed")
	}

	cancel()
	assert.NoError(t, <-done)
}
