package smizip

import "strings"

// maxMultigramLen is the longest candidate multigram the Learner considers,
// per spec.md §3.
const maxMultigramLen = 60

// ngramValue is one entry in the Learner's value table: value is the
// estimated or measured reduction in token count contributed by one
// occurrence of a candidate multigram, and measured distinguishes a
// full remeasurement from an optimistic self-parse estimate (spec.md §3,
// §4.C step 4).
type ngramValue struct {
	value    float64
	measured bool
}

// valueTable is the Learner's persistent n-gram value cache. Entries
// survive across iterations; the only invalidation trigger is the
// substring rule in getOrEstimate, per spec.md §9's design note that this
// should be the sole path reverting a measured entry back to estimated.
type valueTable struct {
	values map[string]ngramValue
}

func newValueTable() *valueTable {
	return &valueTable{values: make(map[string]ngramValue)}
}

// getOrEstimate returns the current value for ngram. A stored, measured
// value is kept as-is unless lastChosen (the multigram committed in the
// previous iteration) is a substring of ngram, in which case the entry is
// invalidated and replaced with a fresh optimistic estimate: the cost of
// parsing ngram against the dictionary represented by parser, minus one
// (the token ngram would itself become).
func (t *valueTable) getOrEstimate(ngram, lastChosen string, parser *Parser) (value float64, measured bool) {
	if entry, ok := t.values[ngram]; ok && entry.measured {
		if lastChosen == "" || !strings.Contains(ngram, lastChosen) {
			return entry.value, true
		}
	}
	estimate := float64(parser.Length(ngram) - 1)
	t.values[ngram] = ngramValue{value: estimate, measured: false}
	return estimate, false
}

// recordMeasurement stores a fully measured value for ngram. Measurement
// always overrides estimation, even when the measured value is zero or
// negative: the Learner tested it, so the number is trusted as-is (spec.md
// §9, Open Question on negative-value handling).
func (t *valueTable) recordMeasurement(ngram string, value float64) {
	t.values[ngram] = ngramValue{value: value, measured: true}
}

// countNgrams implements the N-gram Count Table of spec.md §3 / §4.C step
// 3: for every substring of length 2..maxMultigramLen appearing anywhere in
// sample, tally total occurrences across the whole sample, but keep only
// those appearing in at least two distinct sample strings. This is the Go
// counterpart of find_best_ngrams.py's NgramManager.calculate_ngrams.
func countNgrams(sample []string) map[string]int {
	counts := make(map[string]int)
	moleculeCounts := make(map[string]int)

	for _, s := range sample {
		seen := make(map[string]struct{})
		n := len(s)
		for start := 0; start+2 <= n; start++ {
			maxEnd := start + maxMultigramLen
			if maxEnd > n {
				maxEnd = n
			}
			for end := start + 2; end <= maxEnd; end++ {
				ngram := s[start:end]
				counts[ngram]++
				seen[ngram] = struct{}{}
			}
		}
		for ngram := range seen {
			moleculeCounts[ngram]++
		}
	}

	filtered := make(map[string]int, len(counts))
	for ngram, c := range counts {
		if moleculeCounts[ngram] > 1 {
			filtered[ngram] = c
		}
	}
	return filtered
}
