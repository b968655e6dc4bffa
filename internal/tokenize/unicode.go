package tokenize

import (
	"io"
	"iter"

	"github.com/blevesearch/segment"
)

// Unicode emits words found by UAX #29 word segmentation. Unlike Alnum it
// keeps contractions ("don't") and decimal numbers ("3.14") whole, and emits
// each ideograph as its own token.
type Unicode struct{}

// Name implements Tokenizer.
func (Unicode) Name() string { return string(ModeUnicode) }

// Tokens implements Tokenizer.
func (Unicode) Tokens(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		seg := segment.NewWordSegmenter(r)
		for seg.Segment() {
			switch seg.Type() {
			case segment.Letter, segment.Number, segment.Kana, segment.Ideo:
				if !yield(string(seg.Bytes()), nil) {
					return
				}
			}
		}
		if err := seg.Err(); err != nil {
			yield("", err)
		}
	}
}
