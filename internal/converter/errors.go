package converter

import (
	"errors"
	"fmt"
	"io/fs"
)

// UsageError reports a command line that cannot be run, such as an
// unsupported pair of file extensions.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return e.Reason
}

// ParseError reports a source document that could not be read as the
// expected format.
type ParseError struct {
	// Format is "XML" or "VDF".
	Format string

	// Path is the input file.
	Path string

	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s file %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError reports a file that could not be opened, read or written.
type IOError struct {
	// Op is "read" or "write".
	Op string

	// Path is the file involved.
	Path string

	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// classifyReadError turns an error from a parsing phase into an IOError
// when a file operation failed, and a ParseError otherwise.
func classifyReadError(format, path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return &IOError{Op: "read", Path: path, Err: err}
	}
	return &ParseError{Format: format, Path: path, Err: err}
}
