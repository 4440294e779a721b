package dictionary

import (
	"context"
	"errors"
	"fmt"
)

// Dictionary resolves a word to its dictionary entry
type Dictionary interface {
	Lookup(ctx context.Context, word string) (*Entry, error)
	Name() string
}

// Entry is the part of a dictionary record needed for a card
type Entry struct {
	Word    string   // Dictionary spelling, e.g. 傷つける
	Reading string   // Kana reading, e.g. きずつける
	Senses  []string // First English definition of each sense, in order
}

var (
	// ErrNoResult is returned when the service knows no entry for the word
	ErrNoResult = errors.New("no dictionary entry")
	// ErrMissingField is returned when the first entry lacks word, reading or definitions
	ErrMissingField = errors.New("dictionary entry is missing a field")
	// ErrMalformed is returned when the response cannot be decoded
	ErrMalformed = errors.New("malformed dictionary response")
)

// StatusError is returned when the service answers with a non-200 status
type StatusError struct {
	Service string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Service, e.Code)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.Code, e.Message)
}
