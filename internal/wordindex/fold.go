package wordindex

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultFoldCacheSize is used when a CachedFolder is created with a
// non-positive size.
const DefaultFoldCacheSize = 4096

// Folder maps a raw token onto its canonical form.
type Folder interface {
	Fold(word string) string
}

// LowerFolder applies Unicode default lower-casing. It is not safe for
// concurrent use.
type LowerFolder struct {
	caser cases.Caser
}

// NewLowerFolder creates a language-neutral lower-case folder.
func NewLowerFolder() *LowerFolder {
	return &LowerFolder{caser: cases.Lower(language.Und)}
}

// Fold implements Folder.
func (f *LowerFolder) Fold(word string) string {
	return f.caser.String(word)
}

// CachedFolder remembers recent raw to folded mappings. Natural text repeats
// a small vocabulary, so most tokens skip the case transform.
type CachedFolder struct {
	inner Folder
	cache *lru.Cache[string, string]
}

// NewCachedFolder wraps inner with an LRU cache holding size mappings.
func NewCachedFolder(inner Folder, size int) *CachedFolder {
	if size <= 0 {
		size = DefaultFoldCacheSize
	}
	cache, _ := lru.New[string, string](size)
	return &CachedFolder{
		inner: inner,
		cache: cache,
	}
}

// Fold implements Folder.
func (c *CachedFolder) Fold(word string) string {
	if folded, ok := c.cache.Get(word); ok {
		return folded
	}
	folded := c.inner.Fold(word)
	c.cache.Add(word, folded)
	return folded
}

// Len returns the number of cached mappings.
func (c *CachedFolder) Len() int {
	return c.cache.Len()
}

// Inner returns the wrapped folder.
func (c *CachedFolder) Inner() Folder {
	return c.inner
}
