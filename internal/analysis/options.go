package analysis

import (
	werrors "github.com/Aman-CERP/wordrank/internal/errors"
	"github.com/Aman-CERP/wordrank/internal/tokenize"
	"github.com/Aman-CERP/wordrank/internal/wordindex"
	"github.com/Aman-CERP/wordrank/pkg/ranksort"
)

// ParseOptions builds Options from config or flag values. Empty strings pick
// the defaults; unknown names are validation errors.
func ParseOptions(tokenizer, lookup, strategy string, foldCacheSize int) (Options, error) {
	tok, err := tokenize.New(tokenizer)
	if err != nil {
		return Options{}, werrors.ValidationError(err.Error(), err).
			WithSuggestion("Use --tokenizer alnum or --tokenizer unicode")
	}
	lk, err := wordindex.ParseLookup(lookup)
	if err != nil {
		return Options{}, werrors.ValidationError(err.Error(), err).
			WithSuggestion("Use --lookup scan or --lookup hash")
	}
	st, err := ranksort.ParseStrategy(strategy)
	if err != nil {
		return Options{}, werrors.ValidationError(err.Error(), err).
			WithSuggestion("Use --strategy recursive or --strategy stack")
	}
	if foldCacheSize < 0 {
		return Options{}, werrors.ValidationError("fold cache size must be non-negative", nil)
	}

	return Options{
		Tokenizer:     tok,
		Lookup:        lk,
		FoldCacheSize: foldCacheSize,
		Strategy:      st,
	}, nil
}
