// Package wordindex counts case-folded word occurrences in first-seen order.
//
// The index is a plain slice scanned linearly on every Record, which makes
// counting n distinct words O(n²). That cost is accepted: the slice order is
// what fixes the tie order that ranking later relies on. LookupHash adds a
// position map beside the slice and yields identical entries.
package wordindex

import "fmt"

// IndexedWord is one distinct folded word and how often it was seen.
type IndexedWord struct {
	Word     string `json:"word" yaml:"word"`
	Appeared int64  `json:"count" yaml:"count"`
}

// Weight ranks a word by its occurrence count.
func (w IndexedWord) Weight() int64 {
	return w.Appeared
}

// Lookup selects how Record finds an existing entry.
type Lookup string

const (
	// LookupScan walks the entries in order.
	LookupScan Lookup = "scan"
	// LookupHash keeps a word to position map next to the entries.
	LookupHash Lookup = "hash"
)

// ParseLookup converts a config or flag value into a Lookup.
// An empty string selects LookupScan.
func ParseLookup(s string) (Lookup, error) {
	switch Lookup(s) {
	case "", LookupScan:
		return LookupScan, nil
	case LookupHash:
		return LookupHash, nil
	default:
		return "", fmt.Errorf("unknown index lookup %q (use: scan, hash)", s)
	}
}

// Record folds word and counts it into entries, returning the updated slice
// in the manner of append. An existing entry is incremented in place; a new
// word is appended at the end. word must not be empty.
func Record(entries []IndexedWord, word string) []IndexedWord {
	return record(entries, NewLowerFolder().Fold(word))
}

func record(entries []IndexedWord, folded string) []IndexedWord {
	for i := range entries {
		if entries[i].Word == folded {
			entries[i].Appeared++
			return entries
		}
	}
	return append(entries, IndexedWord{Word: folded, Appeared: 1})
}

// Option configures an Index.
type Option func(*Index)

// WithFolder replaces the default lower-case folder.
func WithFolder(f Folder) Option {
	return func(x *Index) {
		if f != nil {
			x.folder = f
		}
	}
}

// WithLookup selects the entry lookup.
func WithLookup(l Lookup) Option {
	return func(x *Index) {
		x.lookup = l
	}
}

// Index accumulates word counts. It is not safe for concurrent use.
type Index struct {
	entries   []IndexedWord
	folder    Folder
	lookup    Lookup
	positions map[string]int
	total     int64
}

// New creates an empty index.
func New(opts ...Option) *Index {
	x := &Index{lookup: LookupScan}
	for _, opt := range opts {
		opt(x)
	}
	if x.folder == nil {
		x.folder = NewLowerFolder()
	}
	if x.lookup == LookupHash {
		x.positions = make(map[string]int)
	}
	return x
}

// Record counts one occurrence of word.
func (x *Index) Record(word string) {
	folded := x.folder.Fold(word)
	x.total++

	if x.positions == nil {
		x.entries = record(x.entries, folded)
		return
	}

	if pos, ok := x.positions[folded]; ok {
		x.entries[pos].Appeared++
		return
	}
	x.positions[folded] = len(x.entries)
	x.entries = append(x.entries, IndexedWord{Word: folded, Appeared: 1})
}

// Entries returns the entries in first-seen order. The slice is owned by the
// index; ranking it in place reorders the index, after which Record must not
// be called again when LookupHash is in use.
func (x *Index) Entries() []IndexedWord {
	return x.entries
}

// Len returns the number of distinct words.
func (x *Index) Len() int {
	return len(x.entries)
}

// Total returns the number of recorded tokens.
func (x *Index) Total() int64 {
	return x.total
}

// Lookup returns the lookup in use.
func (x *Index) Lookup() Lookup {
	return x.lookup
}
