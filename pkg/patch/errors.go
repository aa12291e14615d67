package patch

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to one of these so callers can
// classify failures with errors.Is.
var (
	ErrApply               = errors.New("patch does not apply")
	ErrInvalidPatchFormat  = errors.New("invalid patch format")
	ErrInvalidChunkHeader  = errors.New("invalid chunk header")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrLineNotFound        = errors.New("line not found")
	ErrFileNotFound        = errors.New("file not found")
)

// FormatError reports malformed patch text at a 1-based input line.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid patch format at line %d: %s", e.Line, e.Reason)
	}
	return "invalid patch format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return ErrInvalidPatchFormat }

// ChunkHeaderError reports an "@@" line that cannot be parsed.
type ChunkHeaderError struct {
	Header string
	Reason string
	Err    error
}

func (e *ChunkHeaderError) Error() string {
	msg := fmt.Sprintf("invalid chunk header %q: %s", e.Header, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ChunkHeaderError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidChunkHeader, e.Err}
	}
	return []error{ErrInvalidChunkHeader}
}

// NumberFormatError reports a range number in a chunk header that is not a
// non-negative integer.
type NumberFormatError struct {
	Value string
	Err   error
}

func (e *NumberFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid number %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid number %q", e.Value)
}

func (e *NumberFormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidNumberFormat, e.Err}
	}
	return []error{ErrInvalidNumberFormat}
}

// CountMismatchError reports a chunk whose body does not match the line
// counts declared in its header.
type CountMismatchError struct {
	Header                   string
	DeclaredOld, DeclaredNew int
	ObservedOld, ObservedNew int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("chunk line count mismatch: header %q declares (-%d, +%d), body has (-%d, +%d)",
		e.Header, e.DeclaredOld, e.DeclaredNew, e.ObservedOld, e.ObservedNew)
}

func (e *CountMismatchError) Unwrap() error { return ErrInvalidPatchFormat }

// ApplyError reports a chunk that could not be applied. Chunk and Line are
// 1-based; Line is the expected position in the content being patched.
type ApplyError struct {
	Chunk  int
	Line   int
	Reason string
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("chunk %d: %s near line %d", e.Chunk, e.Reason, e.Line)
}

func (e *ApplyError) Unwrap() error { return ErrApply }

// LineNotFoundError reports content that ran out while a chunk still
// expected lines. Line is 1-based.
type LineNotFoundError struct {
	Line int
}

func (e *LineNotFoundError) Error() string {
	return fmt.Sprintf("line %d not found: content ends before the chunk does", e.Line)
}

func (e *LineNotFoundError) Unwrap() error { return ErrLineNotFound }

// FileNotFoundError reports a missing source file.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return "file not found: " + e.Path
}

func (e *FileNotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFileNotFound, e.Err}
	}
	return []error{ErrFileNotFound}
}
