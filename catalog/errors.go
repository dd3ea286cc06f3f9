package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks failures to open or read the input.
	ErrIO = errors.New("catalog: i/o failure")

	// ErrSchema marks header-level failures such as a missing required column.
	ErrSchema = errors.New("catalog: invalid schema")

	// ErrFormat marks row-level failures such as malformed numeric text.
	ErrFormat = errors.New("catalog: invalid format")
)

// ParseError describes the row and column that aborted a load.
//
// It matches ErrFormat via errors.Is; the underlying strconv or csv error can
// be accessed via errors.Unwrap.
type ParseError struct {
	Line   int // 1-based physical line of the input
	Column string
	Value  string
	Offset int // 1-based byte column of a CSV syntax error, 0 otherwise
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		if e.Offset > 0 {
			return fmt.Sprintf("catalog: line %d, column %d: %v", e.Line, e.Offset, e.Err)
		}
		return fmt.Sprintf("catalog: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("catalog: line %d: column %q: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrFormat membership.
func (e *ParseError) Is(target error) bool { return target == ErrFormat }

var errEmptyRequired = errors.New("required field is empty")
