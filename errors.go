package dataio

import (
	"errors"
	"fmt"
)

var (
	// ErrFileAccess indicates that an input path is missing or unreadable.
	ErrFileAccess = errors.New("dataio: file access failed")

	// ErrParse indicates a malformed field or record.
	ErrParse = errors.New("dataio: parse failed")

	// ErrRowLength indicates a row whose field count differs from the first row.
	ErrRowLength = errors.New("dataio: row length mismatch")

	// ErrFieldMissing indicates that a field path could not be resolved in a record.
	ErrFieldMissing = errors.New("dataio: field missing")
)

// FileAccessError reports a path that could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("dataio: cannot access %s: %v", e.Path, e.Err)
}

// Is reports whether target is ErrFileAccess.
func (e *FileAccessError) Is(target error) bool { return target == ErrFileAccess }

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports input that could not be parsed.
// Line and Column are 1-based; zero means unknown.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("dataio: %s:%d: field %d: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("dataio: %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("dataio: %s: %v", e.Path, e.Err)
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// RowLengthError reports a row whose length differs from the established width.
type RowLengthError struct {
	Path string
	Line int
	Want int
	Got  int
}

func (e *RowLengthError) Error() string {
	return fmt.Sprintf("dataio: %s:%d: row has %d fields, expected %d", e.Path, e.Line, e.Got, e.Want)
}

// Is reports whether target is ErrRowLength.
func (e *RowLengthError) Is(target error) bool { return target == ErrRowLength }

// FieldMissingError reports a field path that is absent from a record.
// Segment is the first path element that could not be resolved and
// Record is the 0-based index of the record in its sequence, or -1.
type FieldMissingError struct {
	Path    string
	Segment string
	Record  int
}

func (e *FieldMissingError) Error() string {
	if e.Record >= 0 {
		return fmt.Sprintf("dataio: record %d: field %q missing at %q", e.Record, e.Path, e.Segment)
	}
	return fmt.Sprintf("dataio: field %q missing at %q", e.Path, e.Segment)
}

// Is reports whether target is ErrFieldMissing.
func (e *FieldMissingError) Is(target error) bool { return target == ErrFieldMissing }
