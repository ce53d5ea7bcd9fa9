package smizip

import (
	"bytes"
	"errors"
)

// LineCodec reads and writes the TAB-framed compressed line format from
// spec.md §6: one record per line, compressed bytes then a TAB then the
// record's title, terminated by a newline. Building one requires a
// Dictionary carrying both TAB and newline as single-char tokens, since
// those bytes must never appear inside the compressed field.
type LineCodec struct {
	dict *Dictionary
}

// NewLineCodec wraps dict as a LineCodec, or returns
// ErrRequiredControlCharMissing if dict cannot represent TAB and newline as
// single tokens.
func NewLineCodec(dict *Dictionary) (*LineCodec, error) {
	if !dict.HasControlChars() {
		return nil, ErrRequiredControlCharMissing
	}
	return &LineCodec{dict: dict}, nil
}

// CompressLine compresses text and appends title, returning one
// newline-terminated line in the format described in spec.md §6.
func (c *LineCodec) CompressLine(text, title string) ([]byte, error) {
	zipped, err := c.dict.Zip(text, FormatBytes)
	if err != nil {
		return nil, err
	}
	data := zipped.([]byte)

	line := make([]byte, 0, len(data)+len(title)+2)
	line = append(line, data...)
	line = append(line, '\t')
	line = append(line, title...)
	line = append(line, '\n')
	return line, nil
}

// DecompressLine parses one line produced by CompressLine and returns the
// decompressed text and its title.
func (c *LineCodec) DecompressLine(line []byte) (text, title string, err error) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	idx := bytes.IndexByte(line, '\t')
	if idx < 0 {
		return "", "", errors.New("smizip: line is missing the TAB field separator")
	}
	text = c.dict.Unzip(line[:idx])
	title = string(line[idx+1:])
	return text, title, nil
}
