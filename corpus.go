package smizip

import (
	"bufio"
	"io"
	"strings"
)

// Corpus is a sequence of training strings consumed strictly in order.
// Implementations need not support rewinding: the Learner calls Next to
// draw the reserved holdout set first, then each iteration's sample, never
// revisiting earlier strings.
type Corpus interface {
	// Next returns the next training string, or ok=false once the corpus
	// is exhausted.
	Next() (string, bool)
}

// SliceCorpus is a Corpus backed by an in-memory slice of strings, useful
// for tests and small training sets.
type SliceCorpus struct {
	strings []string
	pos     int
}

// NewSliceCorpus wraps strings as a Corpus.
func NewSliceCorpus(strings []string) *SliceCorpus {
	return &SliceCorpus{strings: strings}
}

// Next implements Corpus.
func (c *SliceCorpus) Next() (string, bool) {
	if c.pos >= len(c.strings) {
		return "", false
	}
	s := c.strings[c.pos]
	c.pos++
	return s, true
}

// LineCorpus reads training strings from a line-oriented reader, taking the
// first whitespace-delimited field of each line as one training string and
// skipping blank lines. This mirrors the original find_best_ngrams.py's
// `next(smiles_iter).split()[0]` convention, where each corpus line is a
// SMILES string optionally followed by a title.
type LineCorpus struct {
	scanner *bufio.Scanner
}

// NewLineCorpus wraps r as a Corpus.
func NewLineCorpus(r io.Reader) *LineCorpus {
	return &LineCorpus{scanner: bufio.NewScanner(r)}
}

// Next implements Corpus.
func (c *LineCorpus) Next() (string, bool) {
	for c.scanner.Scan() {
		fields := strings.Fields(c.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		return fields[0], true
	}
	return "", false
}

// readN draws exactly n strings from c, returning ErrInsufficientCorpus if
// c is exhausted before n strings are drawn.
func readN(c Corpus, n int) ([]string, error) {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, ok := c.Next()
		if !ok {
			return out, ErrInsufficientCorpus
		}
		out = append(out, s)
	}
	return out, nil
}
