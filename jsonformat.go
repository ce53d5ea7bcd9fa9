package smizip

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DictionaryJSON is the on-disk representation of a Dictionary, matching
// the field names find_best_ngrams.py writes to its output JSON (spec.md
// §6). Ngrams is the full 256-entry codebook in index order: single-char
// entries are one byte long, everything else is a multichar token.
// Metadata records the training run that produced the dictionary and is
// informational only: UnmarshalDictionary does not require it and discards
// it once the codebook is assembled, since nothing downstream of decoding
// needs it.
type DictionaryJSON struct {
	Ngrams   []string        `json:"ngrams"`
	Metadata *DictionaryMeta `json:"metadata,omitempty"`
}

// DictionaryMeta is the metadata block find_best_ngrams.py attaches to its
// output: the training run's configuration, useful for reproducing or
// resuming a search but not for decoding.
type DictionaryMeta struct {
	InitialChars          string  `json:"initial_chars,omitempty"`
	InitialMultigrams     string  `json:"initial_multigrams,omitempty"`
	NumSmilesToTest       int     `json:"num_smiles_to_test,omitempty"`
	DeltaToTest           float64 `json:"delta_to_test,omitempty"`
	TestAtLeastN          int     `json:"test_at_least_N,omitempty"`
	TestAtLeastNMeasured  int     `json:"test_at_least_N_measured,omitempty"`
	TestAtLeastNSometimes int     `json:"test_at_least_N_sometimes,omitempty"`
	SometimesInterval     int     `json:"sometimes_interval,omitempty"`
	Filename              string  `json:"filename,omitempty"`
}

// MarshalDictionary encodes d as a DictionaryJSON document. meta records the
// training run that produced d (see Learner.Learn) and may be nil for a
// hand-built or previously-loaded dictionary with no run to report.
func MarshalDictionary(d *Dictionary, meta *DictionaryMeta) ([]byte, error) {
	doc := DictionaryJSON{Ngrams: make([]string, 256), Metadata: meta}
	for i := 0; i < 256; i++ {
		doc.Ngrams[i] = d.codebook[i]
	}
	return json.MarshalIndent(&doc, "", "  ")
}

// UnmarshalDictionary decodes a DictionaryJSON document into a Dictionary,
// returning a *MalformedDictionaryError for any structural defect: wrong
// length, a duplicate token, or an empty token.
func UnmarshalDictionary(data []byte) (*Dictionary, error) {
	var doc DictionaryJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedDictionaryError{Reason: err.Error()}
	}
	if len(doc.Ngrams) != 256 {
		return nil, &MalformedDictionaryError{Reason: fmt.Sprintf("ngrams has %d entries, want 256", len(doc.Ngrams))}
	}

	seen := make(map[string]struct{}, 256)
	var singles []byte
	var multis []string
	for i, tok := range doc.Ngrams {
		if tok == "" {
			return nil, &MalformedDictionaryError{Reason: fmt.Sprintf("ngrams[%d] is empty", i)}
		}
		if _, dup := seen[tok]; dup {
			return nil, &MalformedDictionaryError{Reason: fmt.Sprintf("ngrams[%d] duplicates an earlier token %q", i, tok)}
		}
		seen[tok] = struct{}{}
		if len(tok) == 1 {
			singles = append(singles, tok[0])
		} else {
			multis = append(multis, tok)
		}
	}

	return NewDictionary(singles, multis)
}

// LoadDictionary resolves source as a built-in example name, an
// "https://" URL, or a filesystem path, and loads the Dictionary it names.
// This mirrors the original implementation's SmiZip.load classmethod and
// its compress.py get_examples() helper.
func LoadDictionary(source string) (*Dictionary, error) {
	if d, err := LoadExample(source); err == nil {
		return d, nil
	}

	var data []byte
	var err error
	switch {
	case strings.HasPrefix(source, "https://") || strings.HasPrefix(source, "http://"):
		data, err = fetchURL(source)
	default:
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalDictionary(data)
}

func fetchURL(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("smizip: fetching %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
