// Package tokenize splits text into raw word tokens.
//
// Tokenizers yield lazily and never yield an empty token. A read error is
// yielded once, with an empty token, and ends the sequence.
package tokenize

import (
	"fmt"
	"io"
	"iter"
)

// Mode names a tokenizer in config and flags.
type Mode string

const (
	// ModeAlnum splits on every rune that is neither a letter nor a number.
	ModeAlnum Mode = "alnum"
	// ModeUnicode follows Unicode word boundaries (UAX #29).
	ModeUnicode Mode = "unicode"
)

// Tokenizer turns a text stream into word tokens.
type Tokenizer interface {
	Name() string
	Tokens(r io.Reader) iter.Seq2[string, error]
}

// New returns the tokenizer for mode. An empty mode selects ModeAlnum.
func New(mode string) (Tokenizer, error) {
	switch Mode(mode) {
	case "", ModeAlnum:
		return Alnum{}, nil
	case ModeUnicode:
		return Unicode{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q (use: alnum, unicode)", mode)
	}
}

// Collect drains t over r into a slice.
func Collect(t Tokenizer, r io.Reader) ([]string, error) {
	var tokens []string
	for tok, err := range t.Tokens(r) {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
