// Package ahocorasick implements a small multi-pattern string matcher.
//
// The public shape (Builder/AddPattern/Build/Automaton) follows the
// vocabulary of github.com/coregx/ahocorasick, but the automaton returned by
// Build reports every match ending at every offset in the input, not just a
// single leftmost match. The optimal parser in package smizip needs the
// full match set indexed by end offset to drive its shortest-path DP; the
// single-match Find/IsMatch surface of the published package cannot serve
// that, so this is a standalone implementation rather than a dependency.
package ahocorasick

// Match is one pattern occurrence. End is the index of the last byte of the
// match, inclusive, matching the "(end_index, token)" pairs in spec.md's
// description of the Aho-Corasick phase.
type Match struct {
	End     int
	Pattern string
}

type node struct {
	children map[byte]int32
	fail     int32
	word     string   // non-empty if some pattern ends exactly at this node
	output   []string // every pattern ending here, including via suffix links
}

// Builder incrementally assembles the trie before the failure links and
// output sets are computed by Build.
type Builder struct {
	nodes []node
}

// NewBuilder returns an empty Builder seeded with the root node.
func NewBuilder() *Builder {
	b := &Builder{nodes: make([]node, 1, 64)}
	b.nodes[0] = node{children: make(map[byte]int32)}
	return b
}

// AddPattern inserts pattern into the trie. Empty patterns are ignored:
// they would match at every position and are never useful multigrams.
func (b *Builder) AddPattern(pattern string) {
	if len(pattern) == 0 {
		return
	}
	cur := int32(0)
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		next, ok := b.nodes[cur].children[c]
		if !ok {
			b.nodes = append(b.nodes, node{children: make(map[byte]int32)})
			next = int32(len(b.nodes) - 1)
			b.nodes[cur].children[c] = next
		}
		cur = next
	}
	b.nodes[cur].word = pattern
}

// Build computes failure links and output sets, returning a frozen
// Automaton safe for concurrent read-only use.
func (b *Builder) Build() *Automaton {
	nodes := b.nodes

	queue := make([]int32, 0, len(nodes))
	for c, child := range nodes[0].children {
		nodes[child].fail = 0
		queue = append(queue, child)
		_ = c
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for c, v := range nodes[u].children {
			queue = append(queue, v)

			f := nodes[u].fail
			for f != 0 {
				if _, ok := nodes[f].children[c]; ok {
					break
				}
				f = nodes[f].fail
			}
			if next, ok := nodes[f].children[c]; ok && next != v {
				nodes[v].fail = next
			} else {
				nodes[v].fail = 0
			}
		}
	}

	for _, idx := range queue {
		n := &nodes[idx]
		if n.word != "" {
			n.output = append(n.output, n.word)
		}
		n.output = append(n.output, nodes[n.fail].output...)
	}

	return &Automaton{nodes: nodes}
}

// Automaton matches a fixed pattern set against arbitrary text.
type Automaton struct {
	nodes []node
}

// Matches returns every (end index, pattern) occurrence in text, in
// ascending order of end index. Overlapping and nested matches are all
// reported; the caller's DP decides which to use.
func (a *Automaton) Matches(text []byte) []Match {
	if len(a.nodes) <= 1 {
		return nil
	}
	var matches []Match
	cur := int32(0)
	for i, c := range text {
		for cur != 0 {
			if _, ok := a.nodes[cur].children[c]; ok {
				break
			}
			cur = a.nodes[cur].fail
		}
		if next, ok := a.nodes[cur].children[c]; ok {
			cur = next
		} else {
			cur = 0
		}
		for _, word := range a.nodes[cur].output {
			matches = append(matches, Match{End: i, Pattern: word})
		}
	}
	return matches
}

// IsEmpty reports whether the automaton has zero patterns.
func (a *Automaton) IsEmpty() bool {
	return len(a.nodes) <= 1
}
