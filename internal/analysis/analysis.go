// Package analysis counts and ranks the words of a set of documents.
package analysis

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Aman-CERP/wordrank/internal/source"
	"github.com/Aman-CERP/wordrank/internal/tokenize"
	"github.com/Aman-CERP/wordrank/internal/wordindex"
	"github.com/Aman-CERP/wordrank/pkg/ranksort"
)

// Options configures one analysis run. The zero value counts with the alnum
// tokenizer, a scanning index and the recursive sort.
type Options struct {
	Tokenizer     tokenize.Tokenizer
	Lookup        wordindex.Lookup
	FoldCacheSize int
	Strategy      ranksort.Strategy
	Observer      Observer
}

// Observer is notified after every completed run.
type Observer interface {
	ObserveRun(res *Result)
}

// Result is a ranked word count.
type Result struct {
	// Entries are ranked from most to least frequent.
	Entries []wordindex.IndexedWord

	// Tokens is the number of tokens counted.
	Tokens int64

	// Distinct is the number of distinct folded words.
	Distinct int

	// Sources names the documents in reading order.
	Sources []string

	Tokenizer string
	Strategy  ranksort.Strategy
	Lookup    wordindex.Lookup
	Elapsed   time.Duration
}

// Analyze tokenizes every document in order into one index, then ranks the
// entries. ctx is checked between documents.
func Analyze(ctx context.Context, docs []source.Document, opts Options) (*Result, error) {
	start := time.Now()

	tok := opts.Tokenizer
	if tok == nil {
		tok = tokenize.Alnum{}
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = ranksort.StrategyRecursive
	}

	idx := wordindex.New(
		wordindex.WithLookup(opts.Lookup),
		wordindex.WithFolder(newFolder(opts.FoldCacheSize)),
	)

	sources := make([]string, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := idx.Total()
		for word, err := range tok.Tokens(bytes.NewReader(doc.Text)) {
			if err != nil {
				return nil, fmt.Errorf("tokenize %s: %w", doc.Name, err)
			}
			idx.Record(word)
		}
		sources = append(sources, doc.Name)

		slog.Debug("document_counted",
			slog.String("source", doc.Name),
			slog.Int("bytes", len(doc.Text)),
			slog.Int64("tokens", idx.Total()-before),
			slog.Int("distinct_so_far", idx.Len()))
	}

	entries := idx.Entries()
	ranksort.Sort(entries, wordindex.IndexedWord.Weight, strategy)

	res := &Result{
		Entries:   entries,
		Tokens:    idx.Total(),
		Distinct:  idx.Len(),
		Sources:   sources,
		Tokenizer: tok.Name(),
		Strategy:  strategy,
		Lookup:    idx.Lookup(),
		Elapsed:   time.Since(start),
	}

	slog.Debug("analysis_complete",
		slog.Int("documents", len(docs)),
		slog.Int64("tokens", res.Tokens),
		slog.Int("distinct", res.Distinct),
		slog.String("strategy", string(strategy)),
		slog.Duration("duration", res.Elapsed))

	if opts.Observer != nil {
		opts.Observer.ObserveRun(res)
	}

	return res, nil
}

// AnalyzeText is Analyze over a single in-memory text.
func AnalyzeText(ctx context.Context, name, text string, opts Options) (*Result, error) {
	return Analyze(ctx, []source.Document{{Name: name, Text: []byte(text)}}, opts)
}

func newFolder(cacheSize int) wordindex.Folder {
	lower := wordindex.NewLowerFolder()
	if cacheSize <= 0 {
		return lower
	}
	return wordindex.NewCachedFolder(lower, cacheSize)
}
