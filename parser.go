package smizip

import "github.com/smizip/smizip-go/internal/ahocorasick"

// Parser performs optimal-parse tokenization: given a set of multichar
// tokens, it finds the minimum-cardinality way to cover a string using
// those multichars plus an implicit single-character fallback available at
// every position, even for characters absent from any dictionary. Parser
// has no error path; every string is parseable.
//
// A Parser owns an Aho-Corasick automaton built eagerly at construction
// (see SPEC_FULL.md §4.B for why this module prefers eager construction over the
// origin implementation's build-on-first-use).
type Parser struct {
	auto *ahocorasick.Automaton
}

// NewParser builds a Parser over the given multichar tokens. Single
// characters never need to be registered: the DP always has a length-1
// fallback available.
func NewParser(multichars []string) *Parser {
	b := ahocorasick.NewBuilder()
	for _, m := range multichars {
		b.AddPattern(m)
	}
	return &Parser{auto: b.Build()}
}

// Parse returns the unique shortest tokenization of text under the
// deterministic tie-break described in spec.md §4.A: among predecessors of
// equal cost, the shorter token wins.
func (p *Parser) Parse(text string) []string {
	if len(text) == 0 {
		return nil
	}
	_, chosenLen := p.solve(text)

	tokens := make([]string, 0, len(text))
	i := len(text) - 1
	for i >= 0 {
		l := chosenLen[i]
		tokens = append(tokens, text[i-l+1:i+1])
		i -= l
	}
	for l, r := 0, len(tokens)-1; l < r; l, r = l+1, r-1 {
		tokens[l], tokens[r] = tokens[r], tokens[l]
	}
	return tokens
}

// Length returns len(Parse(text)) without materializing the token slice.
func (p *Parser) Length(text string) int {
	if len(text) == 0 {
		return 0
	}
	solution, _ := p.solve(text)
	return solution[len(text)]
}

// solve runs the shortest-path DP described in spec.md §4.A. solution[i] is
// the minimum token count for text[:i]; chosenLen[i] is the length of the
// token ending at i chosen by the DP.
func (p *Parser) solve(text string) (solution []int, chosenLen []int) {
	n := len(text)
	matchesByEnd := make([][]ahocorasick.Match, n)
	for _, m := range p.auto.Matches(stringToBytes(text)) {
		matchesByEnd[m.End] = append(matchesByEnd[m.End], m)
	}

	solution = make([]int, n+1)
	chosenLen = make([]int, n)

	for i := 0; i < n; i++ {
		// Single-char fallback: predecessor cost solution[i], length 1.
		bestCost, bestLen := solution[i], 1
		for _, m := range matchesByEnd[i] {
			l := len(m.Pattern)
			predecessor := solution[i-l+1]
			if predecessor < bestCost || (predecessor == bestCost && l < bestLen) {
				bestCost, bestLen = predecessor, l
			}
		}
		chosenLen[i] = bestLen
		solution[i+1] = bestCost + 1
	}
	return solution, chosenLen
}
