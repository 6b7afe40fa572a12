package parse

import "fmt"

// ParseError reports a non-fatal ingestion failure tied to a specific file
// and line. It mirrors internal/core's NotFoundError/IsNotFound shape: a
// concrete type plus a predicate helper, so callers can distinguish parse
// failures from other errors without a type switch at every call site.
type ParseError struct {
	File  string
	Line  int
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Cause)
	}
	return fmt.Sprintf("%s:%d: parse error", e.File, e.Line)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *ParseError) Unwrap() error { return e.Cause }

// NewParseError builds a ParseError for file/line with the given cause.
func NewParseError(file string, line int, cause error) error {
	return &ParseError{File: file, Line: line, Cause: cause}
}

// IsParseError reports whether err is a *ParseError.
func IsParseError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ParseError)
	return ok
}
