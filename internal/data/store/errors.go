package store

import (
	"errors"
	"fmt"
)

// ErrFormat matches every *FormatError via errors.Is.
var ErrFormat = errors.New("malformed reading log")

// FormatError reports a row of the reading log that could not be parsed.
// Row is 1-based and counts the header line.
type FormatError struct {
	Path   string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: row %d: invalid %s %q: %v", e.Path, e.Row, e.Column, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
