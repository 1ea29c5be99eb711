package command

import (
	"errors"
	"fmt"
)

// ErrParse is returned for malformed lines: unknown keyword or shape type,
// wrong token count, or a token that is not a finite number.
var ErrParse = errors.New("parse error")

// Failure is one rejected line.
type Failure struct {
	Line int    // 1-based line number in the source
	Text string // the line as read
	Err  error
}

// Error implements error.
func (f Failure) Error() string {
	return fmt.Sprintf("line %d: %v", f.Line, f.Err)
}

// Unwrap exposes the underlying error to errors.Is.
func (f Failure) Unwrap() error {
	return f.Err
}
