// Package report renders a ranked word count.
//
// Reports never reorder words: ties are printed exactly as the ranking sort
// left them.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
	"github.com/Aman-CERP/wordrank/internal/output"
	"github.com/Aman-CERP/wordrank/internal/wordindex"
)

// Format names an output format.
type Format string

const (
	FormatPlain Format = "plain"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatPlain, FormatTable, FormatJSON, FormatYAML}

// ParseFormat converts a flag or config value. An empty string selects
// FormatPlain.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatPlain, nil
	}
	for _, f := range Formats {
		if Format(s) == f {
			return f, nil
		}
	}
	return "", werrors.New(werrors.ErrCodeUnknownFormat, fmt.Sprintf("unknown output format %q", s), nil).
		WithSuggestion("Use one of: plain, table, json, yaml")
}

// Word is one ranked line.
type Word struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Word  string `json:"word" yaml:"word"`
	Count int64  `json:"count" yaml:"count"`
}

// Report is the rendered view of one run.
type Report struct {
	Sources  []string `json:"sources,omitempty" yaml:"sources,omitempty"`
	Tokens   int64    `json:"tokens" yaml:"tokens"`
	Distinct int      `json:"distinct" yaml:"distinct"`
	Words    []Word   `json:"words" yaml:"words"`
}

// Filter limits which ranked words are shown.
type Filter struct {
	// Top keeps only the first Top words. Zero keeps all.
	Top int

	// MinLength drops words with fewer runes. Zero keeps all.
	MinLength int
}

// Build selects and numbers the words to show. Ranks are positions in the
// filtered list, starting at 1.
func Build(entries []wordindex.IndexedWord, tokens int64, distinct int, sources []string, f Filter) Report {
	rep := Report{
		Sources:  sources,
		Tokens:   tokens,
		Distinct: distinct,
		Words:    []Word{},
	}

	for _, e := range entries {
		if f.MinLength > 0 && utf8.RuneCountInString(e.Word) < f.MinLength {
			continue
		}
		if f.Top > 0 && len(rep.Words) >= f.Top {
			break
		}
		rep.Words = append(rep.Words, Word{
			Rank:  len(rep.Words) + 1,
			Word:  e.Word,
			Count: e.Appeared,
		})
	}

	return rep
}

// Write renders rep to w in the given format. styles only affect FormatTable.
func Write(w io.Writer, rep Report, format Format, styles output.Styles) error {
	switch format {
	case FormatPlain, "":
		return writePlain(w, rep)
	case FormatTable:
		return writeTable(w, rep, styles)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := ParseFormat(string(format))
		return err
	}
}

// plainAlignWidth is the word length, in bytes, from which one tab is enough
// to line counts up.
const plainAlignWidth = 5

func writePlain(w io.Writer, rep Report) error {
	var sb strings.Builder
	for _, word := range rep.Words {
		sep := "\t"
		if len(word.Word) < plainAlignWidth {
			sep = "\t\t"
		}
		fmt.Fprintf(&sb, "'%s':%s%d\n", word.Word, sep, word.Count)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
