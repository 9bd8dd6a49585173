package regex

import "github.com/pkg/errors"

// ParseError reports a failure to compile a pattern. Pos is the rune offset
// into the whole pattern that the parser had reached when it failed.
type ParseError struct {
	Message string
	Pos     int
	cause   error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

func newParseError(pos int, cause error) *ParseError {
	return &ParseError{
		Message: errors.Cause(cause).Error(),
		Pos:     pos,
		cause:   cause,
	}
}
