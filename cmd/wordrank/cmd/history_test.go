package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
)

func TestHistoryCmd_EmptyList(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "", "history")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No saved runs")
}

func TestHistoryCmd_EmptyListJSONIsArray(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "", "history", "list", "--format", "json")

	require.NoError(t, err)
	assert.JSONEq(t, "[]", stdout)
}

func TestHistoryCmd_ListNewestFirst(t *testing.T) {
	// Given: two saved runs from different files
	_, dir := isolateEnv(t)
	writeFile(t, dir, "first.txt", "a b c")
	writeFile(t, dir, "second.txt", "d e")
	_, _, err := execute(t, "", "count", "--save", "first.txt")
	require.NoError(t, err)
	_, _, err = execute(t, "", "count", "--save", "second.txt")
	require.NoError(t, err)

	// When: listing as JSON and as a table
	stdout, _, err := execute(t, "", "history", "list", "-o", "json")
	require.NoError(t, err)
	table, _, err := execute(t, "", "history")
	require.NoError(t, err)

	// Then: the newest run comes first and the table names both sources
	var runs []struct {
		ID      int64    `json:"id"`
		Sources []string `json:"sources"`
		Tokens  int64    `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, int64(2), runs[0].ID)
	assert.Equal(t, []string{"second.txt"}, runs[0].Sources)
	assert.Equal(t, int64(3), runs[1].Tokens)

	assert.Contains(t, table, "SOURCES")
	assert.Contains(t, table, "first.txt")
	assert.Contains(t, table, "second.txt")
}

func TestHistoryCmd_ListLimit(t *testing.T) {
	isolateEnv(t)
	for i := 0; i < 3; i++ {
		_, _, err := execute(t, cookies, "--save")
		require.NoError(t, err)
	}

	stdout, _, err := execute(t, "", "history", "--limit", "2", "-o", "json")

	require.NoError(t, err)
	var runs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &runs))
	assert.Len(t, runs, 2)
}

func TestHistoryCmd_ShowFormats(t *testing.T) {
	isolateEnv(t)
	_, _, err := execute(t, cookies, "--save")
	require.NoError(t, err)

	t.Run("table", func(t *testing.T) {
		stdout, _, err := execute(t, "", "history", "show", "1")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Run #1")
		assert.Contains(t, stdout, "alnum tokenizer, scan lookup, recursive sort")
		assert.Contains(t, stdout, "cookies")
	})

	t.Run("plain", func(t *testing.T) {
		stdout, _, err := execute(t, "", "history", "show", "1", "-o", "plain")
		require.NoError(t, err)
		assert.Equal(t, "'cookies':\t2\n'mmm':\t\t1\n'like':\t\t1\n'i':\t\t1\n", stdout)
	})

	t.Run("yaml", func(t *testing.T) {
		stdout, _, err := execute(t, "", "history", "show", "1", "-o", "yaml")
		require.NoError(t, err)
		assert.Contains(t, stdout, "id: 1")
		assert.Contains(t, stdout, "word: cookies")
	})
}

func TestHistoryCmd_ShowErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"not a number", []string{"history", "show", "abc"}, werrors.ErrCodeInvalidInput},
		{"zero", []string{"history", "show", "0"}, werrors.ErrCodeInvalidInput},
		{"missing run", []string{"history", "show", "42"}, werrors.ErrCodeInvalidInput},
		{"bad format", []string{"history", "list", "-o", "csv"}, werrors.ErrCodeUnknownFormat},
		{"negative limit", []string{"history", "--limit", "-1"}, werrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)

			_, _, err := execute(t, "", tt.args...)

			require.Error(t, err)
			assert.Equal(t, tt.code, werrors.GetCode(err))
		})
	}
}

func TestHistoryCmd_Clear(t *testing.T) {
	// Given: one saved run
	isolateEnv(t)
	_, _, err := execute(t, cookies, "--save")
	require.NoError(t, err)

	// When: clearing
	stdout, _, err := execute(t, "", "history", "clear")

	// Then: the run is gone
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed 1 saved run(s)")

	list, _, err := execute(t, "", "history", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", list)
}

func TestHistoryCmd_EnabledByConfig(t *testing.T) {
	_, dir := isolateEnv(t)
	writeFile(t, dir, ".wordrank.yaml", "history:\n  enabled: true\n  path: runs.db\n")

	_, _, err := execute(t, cookies)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "runs.db"))
}
