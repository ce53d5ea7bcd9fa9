package smizip

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"
)

func TestMarshalUnmarshalDictionaryRoundTrip(t *testing.T) {
	// JSON dictionaries are always full: every one of the 256 codebook
	// slots must hold a token.
	singles := make([]byte, 126)
	for i := range singles {
		singles[i] = byte(i)
	}
	multis := make([]string, 256-len(singles))
	for i := range multis {
		multis[i] = string(rune('A'+i%26)) + string(rune('a'+(i/26)%26))
	}
	d, err := NewDictionary(singles, multis)
	if err != nil {
		t.Fatalf("NewDictionary() error = %v", err)
	}
	data, err := MarshalDictionary(d, nil)
	if err != nil {
		t.Fatalf("MarshalDictionary() error = %v", err)
	}
	got, err := UnmarshalDictionary(data)
	if err != nil {
		t.Fatalf("UnmarshalDictionary() error = %v", err)
	}
	for i := 0; i < 256; i++ {
		if got.Token(byte(i)) != d.Token(byte(i)) {
			t.Fatalf("round trip changed slot %d: got %q, want %q", i, got.Token(byte(i)), d.Token(byte(i)))
		}
	}
}

func TestMarshalDictionaryIncludesMetadata(t *testing.T) {
	singles := make([]byte, 126)
	for i := range singles {
		singles[i] = byte(i)
	}
	multis := make([]string, 256-len(singles))
	for i := range multis {
		multis[i] = string(rune('A'+i%26)) + string(rune('a'+(i/26)%26))
	}
	d, err := NewDictionary(singles, multis)
	if err != nil {
		t.Fatalf("NewDictionary() error = %v", err)
	}

	meta := &DictionaryMeta{
		InitialChars:    string(singles),
		NumSmilesToTest: SpeedFast.NumSmilesToTest,
		Filename:        "corpus.smi",
	}
	data, err := MarshalDictionary(d, meta)
	if err != nil {
		t.Fatalf("MarshalDictionary() error = %v", err)
	}

	var doc DictionaryJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if doc.Metadata == nil {
		t.Fatalf("MarshalDictionary() with non-nil meta produced a document with no metadata block")
	}
	if doc.Metadata.Filename != "corpus.smi" {
		t.Fatalf("doc.Metadata.Filename = %q, want \"corpus.smi\"", doc.Metadata.Filename)
	}
	if doc.Metadata.NumSmilesToTest != SpeedFast.NumSmilesToTest {
		t.Fatalf("doc.Metadata.NumSmilesToTest = %d, want %d", doc.Metadata.NumSmilesToTest, SpeedFast.NumSmilesToTest)
	}
}

func TestUnmarshalDictionaryRejectsWrongLength(t *testing.T) {
	data := []byte(`{"ngrams": ["a", "b"]}`)
	_, err := UnmarshalDictionary(data)
	var malformed *MalformedDictionaryError
	if !errors.As(err, &malformed) {
		t.Fatalf("UnmarshalDictionary() error = %v, want *MalformedDictionaryError", err)
	}
}

func TestUnmarshalDictionaryRejectsDuplicate(t *testing.T) {
	ngrams := make([]string, 256)
	for i := range ngrams {
		ngrams[i] = "tok" + strconv.Itoa(i)
	}
	ngrams[1] = ngrams[0]
	data, _ := json.Marshal(DictionaryJSON{Ngrams: ngrams})
	if _, err := UnmarshalDictionary(data); !errors.Is(err, ErrMalformedDictionary) {
		t.Fatalf("UnmarshalDictionary() error = %v, want ErrMalformedDictionary", err)
	}
}

func TestUnmarshalDictionaryRejectsEmptyToken(t *testing.T) {
	ngrams := make([]string, 256)
	for i := range ngrams {
		ngrams[i] = "tok" + strconv.Itoa(i)
	}
	ngrams[5] = ""
	data, _ := json.Marshal(DictionaryJSON{Ngrams: ngrams})
	if _, err := UnmarshalDictionary(data); !errors.Is(err, ErrMalformedDictionary) {
		t.Fatalf("UnmarshalDictionary() error = %v, want ErrMalformedDictionary", err)
	}
}
