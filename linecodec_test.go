package smizip

import (
	"errors"
	"testing"
)

func TestNewLineCodecRequiresControlChars(t *testing.T) {
	d, _ := NewDictionary([]byte("abc"), nil)
	if _, err := NewLineCodec(d); !errors.Is(err, ErrRequiredControlCharMissing) {
		t.Fatalf("NewLineCodec() error = %v, want ErrRequiredControlCharMissing", err)
	}
}

func TestLineCodecRoundTrip(t *testing.T) {
	d, err := NewDictionary([]byte("abc\t\n"), []string{"ab", "bc"})
	if err != nil {
		t.Fatalf("NewDictionary() error = %v", err)
	}
	codec, err := NewLineCodec(d)
	if err != nil {
		t.Fatalf("NewLineCodec() error = %v", err)
	}

	line, err := codec.CompressLine("abcabc", "example molecule")
	if err != nil {
		t.Fatalf("CompressLine() error = %v", err)
	}

	text, title, err := codec.DecompressLine(line)
	if err != nil {
		t.Fatalf("DecompressLine() error = %v", err)
	}
	if text != "abcabc" {
		t.Fatalf("DecompressLine() text = %q, want \"abcabc\"", text)
	}
	if title != "example molecule" {
		t.Fatalf("DecompressLine() title = %q, want \"example molecule\"", title)
	}
}

func TestLineCodecDecompressRejectsMissingTab(t *testing.T) {
	d, _ := NewDictionary([]byte("abc\t\n"), nil)
	codec, _ := NewLineCodec(d)
	if _, _, err := codec.DecompressLine([]byte("abc\n")); err == nil {
		t.Fatalf("DecompressLine() on a line with no TAB should fail")
	}
}
