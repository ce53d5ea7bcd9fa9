package smizip

import (
	"errors"
	"fmt"
)

// Sentinel errors for the five fatal error kinds named in the
// specification. None are retried by the core; callers decide what to do.
var (
	// ErrDictionaryTooLarge is returned when building a Dictionary from more
	// than 256 tokens.
	ErrDictionaryTooLarge = errors.New("smizip: dictionary has more than 256 tokens")

	// ErrDictionaryCharsetIncomplete is returned by Zip when the input
	// contains a character absent from the dictionary's single-char tokens.
	ErrDictionaryCharsetIncomplete = errors.New("smizip: input contains a character outside the dictionary charset")

	// ErrRequiredControlCharMissing is returned when a Dictionary lacking
	// TAB or newline as single-char tokens is used for line-framed I/O.
	ErrRequiredControlCharMissing = errors.New("smizip: dictionary is missing TAB or newline as a single-char token")

	// ErrInsufficientCorpus is returned when the Learner exhausts its
	// training corpus before filling all 256 dictionary slots, or when an
	// iteration's sample yields no candidate that shortens it.
	ErrInsufficientCorpus = errors.New("smizip: training corpus exhausted before the dictionary was filled")
)

// MalformedDictionaryError reports a specific defect in a decoded
// Dictionary JSON document: a missing "ngrams" field, a wrong length,
// a duplicate token, or an empty token. It wraps ErrMalformedDictionary so
// callers can use errors.Is against that sentinel without caring which
// defect was found.
type MalformedDictionaryError struct {
	Reason string
}

func (e *MalformedDictionaryError) Error() string {
	return fmt.Sprintf("smizip: malformed dictionary: %s", e.Reason)
}

func (e *MalformedDictionaryError) Unwrap() error {
	return ErrMalformedDictionary
}

// ErrMalformedDictionary is the sentinel that every MalformedDictionaryError
// wraps; match against it with errors.Is when the specific reason does not
// matter.
var ErrMalformedDictionary = errors.New("smizip: malformed dictionary")
