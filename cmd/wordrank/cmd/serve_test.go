package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
)

func TestServeCmd_Help(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "", "serve", "--help")

	require.NoError(t, err)
	assert.Contains(t, stdout, "rank_words")
}

func TestServeCmd_InvalidConfigFailsBeforeServing(t *testing.T) {
	// Given: a broken project config
	_, dir := isolateEnv(t)
	writeFile(t, dir, ".wordrank.yaml", "tokenizer:\n  mode: regex\n")

	// When: starting the server
	stdout, _, err := execute(t, "", "serve")

	// Then: it fails with a config error and never touches stdout
	require.Error(t, err)
	assert.Equal(t, werrors.ErrCodeConfigInvalid, werrors.GetCode(err))
	assert.Empty(t, stdout)
}

func TestServeCmd_RejectsArgs(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "", "serve", "extra")

	assert.Error(t, err)
}
