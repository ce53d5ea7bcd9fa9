package smizip

import (
	"sort"
	"strings"
	"unsafe"
)

// Format selects the shape Zip returns. FormatBytes is the default: a
// packed byte sequence, one byte per token, suitable for writing directly
// to a compressed file.
type Format int

const (
	// FormatBytes returns []byte, one byte per token (the default).
	FormatBytes Format = iota
	// FormatTokens returns []string, the tokens themselves.
	FormatTokens
	// FormatIndices returns []int, the byte index of each token.
	FormatIndices
)

// Dictionary is an ordered, immutable set of up to 256 tokens. A token's
// position in the codebook is the byte value the Codec emits for it; see
// spec.md §3 and §4.B.
type Dictionary struct {
	codebook    [256]string
	index       map[string]byte
	size        int
	singlechars map[byte]struct{}
	multichars  []string
	parser      *Parser
}

// NewDictionary assembles a Dictionary from a set of single-char tokens
// (given as their ASCII codes; values above 127 are rejected by nothing
// today but are outside the domain this module targets and will confuse
// MultiChars, since their UTF-8 encoding is more than one byte long) and an
// ordered list of multichar tokens,
// following spec.md §4.B's three assembly steps: single chars occupy their
// own ASCII slot, and multichars fill the remaining slots in order,
// starting from index 0 upward.
func NewDictionary(singlechars []byte, multichars []string) (*Dictionary, error) {
	if len(singlechars)+len(multichars) > 256 {
		return nil, ErrDictionaryTooLarge
	}

	d := &Dictionary{
		index:       make(map[string]byte, len(singlechars)+len(multichars)),
		singlechars: make(map[byte]struct{}, len(singlechars)),
		multichars:  append([]string(nil), multichars...),
	}

	for _, c := range singlechars {
		d.codebook[c] = string(c)
		d.singlechars[c] = struct{}{}
	}

	remaining := append([]string(nil), multichars...)
	for idx := 0; idx < 256 && len(remaining) > 0; idx++ {
		if d.codebook[idx] != "" {
			continue
		}
		d.codebook[idx] = remaining[0]
		remaining = remaining[1:]
	}

	for i := 0; i < 256; i++ {
		if d.codebook[i] != "" {
			d.index[d.codebook[i]] = byte(i)
			d.size++
		}
	}

	d.parser = NewParser(multichars)
	return d, nil
}

// Size returns the number of occupied codebook slots (<=256).
func (d *Dictionary) Size() int { return d.size }

// SingleChars returns the dictionary's single-char tokens as a sorted byte
// slice.
func (d *Dictionary) SingleChars() []byte {
	out := make([]byte, 0, len(d.singlechars))
	for c := range d.singlechars {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MultiChars returns the dictionary's multichar tokens in codebook order.
func (d *Dictionary) MultiChars() []string {
	out := make([]string, 0, 256-len(d.singlechars))
	for i := 0; i < 256; i++ {
		if len(d.codebook[i]) > 1 {
			out = append(out, d.codebook[i])
		}
	}
	return out
}

// Token returns the token bound to byte value b.
func (d *Dictionary) Token(b byte) string { return d.codebook[b] }

// IndexOf returns the byte value bound to token, and whether it exists.
func (d *Dictionary) IndexOf(token string) (byte, bool) {
	b, ok := d.index[token]
	return b, ok
}

// HasControlChars reports whether TAB and newline are both present as
// single-char tokens, as required by the line-framed compressed-file
// format in spec.md §6.
func (d *Dictionary) HasControlChars() bool {
	_, hasTab := d.index["\t"]
	_, hasNewline := d.index["\n"]
	return hasTab && hasNewline
}

// Zip compresses text into the shape selected by format. It returns
// ErrDictionaryCharsetIncomplete if the optimal parse falls back to a
// single character absent from the dictionary.
func (d *Dictionary) Zip(text string, format Format) (any, error) {
	tokens := d.parser.Parse(text)

	switch format {
	case FormatTokens:
		for _, tok := range tokens {
			if _, ok := d.index[tok]; !ok {
				return nil, ErrDictionaryCharsetIncomplete
			}
		}
		return tokens, nil
	case FormatIndices:
		indices := make([]int, len(tokens))
		for i, tok := range tokens {
			b, ok := d.index[tok]
			if !ok {
				return nil, ErrDictionaryCharsetIncomplete
			}
			indices[i] = int(b)
		}
		return indices, nil
	default:
		out := make([]byte, len(tokens))
		for i, tok := range tokens {
			b, ok := d.index[tok]
			if !ok {
				return nil, ErrDictionaryCharsetIncomplete
			}
			out[i] = b
		}
		return out, nil
	}
}

// Unzip decompresses a byte sequence produced by Zip(text, FormatBytes).
// It has no failure mode on valid byte input.
func (d *Dictionary) Unzip(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteString(d.codebook[b])
	}
	return sb.String()
}

// WithExtraChars returns a new Dictionary with the given extra single-char
// tokens added, displacing the lowest-priority trailing multichars to make
// room. It mirrors the original implementation's add_char_to_ngrams tool
// (original_source/smizip/scripts/add_char_to_ngrams.py): it is an error to
// request a character already present as a single-char token.
func (d *Dictionary) WithExtraChars(chars ...byte) (*Dictionary, error) {
	singles := d.SingleChars()
	seen := make(map[byte]struct{}, len(singles)+len(chars))
	for _, c := range singles {
		seen[c] = struct{}{}
	}
	for _, c := range chars {
		if _, ok := seen[c]; ok {
			return nil, &MalformedDictionaryError{Reason: "character already present as a single-char token"}
		}
		seen[c] = struct{}{}
		singles = append(singles, c)
	}
	sort.Slice(singles, func(i, j int) bool { return singles[i] < singles[j] })

	multichars := d.MultiChars()
	if len(singles)+len(multichars) > 256 {
		multichars = multichars[:256-len(singles)]
	}
	return NewDictionary(singles, multichars)
}

// stringToBytes borrows the memory backing s as a []byte without copying.
// The returned slice must never be mutated; it is only used to feed
// read-only matchers. Mirrors the teacher's DecodeString/TrainStrings
// zero-copy conversions.
func stringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
