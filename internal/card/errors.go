package card

import (
	"errors"
	"fmt"
)

// Load failures. Schema violations are not errors: they become warnings.
var (
	ErrFetch     = errors.New("fetch failed")
	ErrParse     = errors.New("JSON must be an array of cards")
	ErrEmptyDeck = errors.New("no valid cards found, check schema rules")
)

// FetchError describes a failed request or read of a card source.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("failed to fetch %s: status %d", e.Source, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("failed to fetch %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("failed to fetch %s", e.Source)
	}
}

func (e *FetchError) Unwrap() error { return ErrFetch }

// ParseError describes a source whose body is not a JSON array.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Source, ErrParse, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, ErrParse)
}

func (e *ParseError) Unwrap() error { return ErrParse }
