package tokenize

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Alnum emits maximal runs of alphabetic and numeric runes. Any other rune
// ends the current word. Bytes that are not valid UTF-8 are dropped without
// ending the word they appear in, and a word at end of input is emitted even
// with no separator after it.
type Alnum struct{}

// Name implements Tokenizer.
func (Alnum) Name() string { return string(ModeAlnum) }

// Tokens implements Tokenizer.
func (Alnum) Tokens(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		br, ok := r.(io.RuneReader)
		if !ok {
			br = bufio.NewReader(r)
		}

		var word strings.Builder
		flush := func() bool {
			if word.Len() == 0 {
				return true
			}
			tok := word.String()
			word.Reset()
			return yield(tok, nil)
		}

		for {
			ch, size, err := br.ReadRune()
			if err != nil {
				if !flush() {
					return
				}
				if !errors.Is(err, io.EOF) {
					yield("", err)
				}
				return
			}

			if ch == utf8.RuneError && size == 1 {
				continue
			}

			if isWordRune(ch) {
				word.WriteRune(ch)
				continue
			}

			if !flush() {
				return
			}
		}
	}
}

// isWordRune reports whether ch is alphabetic or numeric. Alphabetic includes
// Other_Alphabetic marks such as Devanagari vowel signs, which are not letters
// on their own but belong inside a word.
func isWordRune(ch rune) bool {
	return unicode.In(ch, unicode.Letter, unicode.Number, unicode.Other_Alphabetic)
}
