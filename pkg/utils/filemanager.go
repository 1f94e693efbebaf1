// =============================================================================
// steam2xml - File Manager Utility
// =============================================================================
//
// This module provides the file handling used by the converter:
//   - Opening and reading input files
//   - Writing output files, optionally atomically
//   - Extension helpers for direction detection
//
// ATOMIC WRITES:
//   With atomic writes enabled the output is written to a temporary file in
//   the destination directory and renamed over the destination only after
//   every byte was written. A failed conversion leaves any existing
//   destination file untouched. Without atomic writes the destination is
//   truncated first, and a failure may leave a partial file.
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/facebookgo/atomicfile"
)

// OutputFileMode is the permission used for created output files.
const OutputFileMode os.FileMode = 0o644

// =============================================================================
// INPUT FILES
// =============================================================================

// OpenInput opens an input file for streaming. The caller closes it.
func OpenInput(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return file, nil
}

// ReadInput reads a whole input file.
func ReadInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// =============================================================================
// OUTPUT FILES
// =============================================================================

// Output is a destination file that is either committed or aborted.
type Output interface {
	io.Writer

	// Commit flushes and closes the file, making it visible at its path.
	Commit() error

	// Abort closes the file after a failure.
	Abort() error
}

// CreateOutput opens path for writing.
//
// PARAMETERS:
//   - path: The destination path. An existing file is overwritten.
//   - atomic: Write through a temporary file and rename on Commit.
//
// RETURNS:
//   - The output file.
//   - An error if the file cannot be created.
func CreateOutput(path string, atomic bool) (Output, error) {
	if atomic {
		file, err := atomicfile.New(path, OutputFileMode)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return &atomicOutput{file: file}, nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, OutputFileMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &directOutput{file: file}, nil
}

// WriteOutput creates path, runs write against it and commits the result.
// The file is aborted if write fails, so it is closed on every path.
//
// RETURNS:
//   - The number of bytes written.
//   - The first error from creating, writing or committing the file.
func WriteOutput(path string, atomic bool, write func(io.Writer) error) (int64, error) {
	out, err := CreateOutput(path, atomic)
	if err != nil {
		return 0, err
	}

	counter := &countingWriter{w: out}
	if err := write(counter); err != nil {
		if abortErr := out.Abort(); abortErr != nil {
			return counter.n, errors.Join(err, fmt.Errorf("failed to discard output file: %w", abortErr))
		}
		return counter.n, err
	}

	if err := out.Commit(); err != nil {
		return counter.n, fmt.Errorf("failed to save output file: %w", err)
	}
	return counter.n, nil
}

type atomicOutput struct {
	file *atomicfile.File
}

func (o *atomicOutput) Write(p []byte) (int, error) {
	return o.file.Write(p)
}

func (o *atomicOutput) Commit() error {
	return o.file.Close()
}

func (o *atomicOutput) Abort() error {
	return o.file.Abort()
}

type directOutput struct {
	file *os.File
}

func (o *directOutput) Write(p []byte) (int, error) {
	return o.file.Write(p)
}

func (o *directOutput) Commit() error {
	if err := o.file.Sync(); err != nil {
		o.file.Close()
		return err
	}
	return o.file.Close()
}

func (o *directOutput) Abort() error {
	return o.file.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// Extension returns the file name extension of path, including the dot.
// The comparison callers make against it is case-sensitive.
func Extension(path string) string {
	return filepath.Ext(path)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
