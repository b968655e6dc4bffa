//go:build ignore

// Package main generates a synthetic text corpus for benchmarking wordrank.
// Usage: go run scripts/generate-corpus.go -files 100 -words 50000 -output testdata/bench
//
// Word frequencies follow a Zipf distribution, like natural language, so a
// few words dominate and a long tail appears once or twice.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numFiles   = flag.Int("files", 100, "Number of files to generate")
	numWords   = flag.Int("words", 50000, "Words per file")
	vocabulary = flag.Int("vocab", 20000, "Distinct words to draw from")
	skew       = flag.Float64("skew", 1.07, "Zipf exponent (> 1)")
	outputDir  = flag.String("output", "testdata/bench", "Output directory")
	seed       = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var syllables = []string{
	"ka", "lo", "mi", "ne", "ru", "sa", "ti", "vo", "ze", "an",
	"el", "or", "us", "ba", "de", "fi", "go", "hu", "ja", "py",
}

var separators = []string{" ", " ", " ", " ", ", ", ". ", "! ", "? ", "; ", "\n"}

func main() {
	flag.Parse()

	if *skew <= 1 {
		fmt.Fprintln(os.Stderr, "skew must be greater than 1")
		os.Exit(1)
	}

	r := rand.New(rand.NewSource(*seed))
	vocab := buildVocabulary(r, *vocabulary)
	zipf := rand.NewZipf(r, *skew, 1, uint64(len(vocab)-1))

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	total := 0
	for i := 0; i < *numFiles; i++ {
		path := filepath.Join(*outputDir, fmt.Sprintf("doc_%04d.txt", i))
		if err := writeDocument(path, r, zipf, vocab, *numWords); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}
		total += *numWords
	}

	fmt.Printf("Generated %d files (%d words, %d-word vocabulary) in %s\n",
		*numFiles, total, len(vocab), *outputDir)
}

// buildVocabulary returns n distinct pseudo-words.
func buildVocabulary(r *rand.Rand, n int) []string {
	seen := make(map[string]struct{}, n)
	vocab := make([]string, 0, n)
	for len(vocab) < n {
		var b strings.Builder
		for j := 0; j < 1+r.Intn(4); j++ {
			b.WriteString(syllables[r.Intn(len(syllables))])
		}
		w := b.String()
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		vocab = append(vocab, w)
	}
	return vocab
}

func writeDocument(path string, r *rand.Rand, zipf *rand.Zipf, vocab []string, words int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < words; i++ {
		word := vocab[zipf.Uint64()]
		// Mixed case exercises folding.
		if r.Intn(10) == 0 {
			word = strings.ToUpper(word[:1]) + word[1:]
		}
		w.WriteString(word)
		w.WriteString(separators[r.Intn(len(separators))])
	}
	return w.Flush()
}
