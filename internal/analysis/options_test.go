package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
	"github.com/Aman-CERP/wordrank/internal/wordindex"
	"github.com/Aman-CERP/wordrank/pkg/ranksort"
)

func TestParseOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := ParseOptions("", "", "", 0)
		require.NoError(t, err)
		assert.Equal(t, "alnum", opts.Tokenizer.Name())
		assert.Equal(t, wordindex.LookupScan, opts.Lookup)
		assert.Equal(t, ranksort.StrategyRecursive, opts.Strategy)
	})

	t.Run("explicit", func(t *testing.T) {
		opts, err := ParseOptions("unicode", "hash", "stack", 128)
		require.NoError(t, err)
		assert.Equal(t, "unicode", opts.Tokenizer.Name())
		assert.Equal(t, wordindex.LookupHash, opts.Lookup)
		assert.Equal(t, ranksort.StrategyStack, opts.Strategy)
		assert.Equal(t, 128, opts.FoldCacheSize)
	})

	invalid := []struct {
		name                        string
		tokenizer, lookup, strategy string
		cache                       int
	}{
		{"tokenizer", "words", "", "", 0},
		{"lookup", "", "btree", "", 0},
		{"strategy", "", "", "bogo", 0},
		{"cache", "", "", "", -1},
	}
	for _, tt := range invalid {
		t.Run("invalid "+tt.name, func(t *testing.T) {
			_, err := ParseOptions(tt.tokenizer, tt.lookup, tt.strategy, tt.cache)
			require.Error(t, err)
			assert.Equal(t, werrors.ErrCodeInvalidInput, werrors.GetCode(err))
		})
	}
}
