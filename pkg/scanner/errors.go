package scanner

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the kind of a scan failure. Use errors.Is
// against a returned error to branch on the kind.
var (
	ErrNotFound = errors.New("file not found")
	ErrIO       = errors.New("i/o error")
	ErrDecode   = errors.New("decode error")
)

// ScanError describes why a scan stopped early.
type ScanError struct {
	// Kind is one of ErrNotFound, ErrIO or ErrDecode.
	Kind error

	// Path is the chat file being scanned.
	Path string

	// Line is the 1-based line where the failure happened, 0 if it happened
	// before any line was read.
	Line int

	// Err is the underlying cause, if any.
	Err error
}

func (e *ScanError) Error() string {
	switch {
	case e.Line > 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s at line %d: %v", e.Kind, e.Path, e.Line, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s: %s at line %d", e.Kind, e.Path, e.Line)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *ScanError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName returns a short label for the failure kind, used in logs and
// reports.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "unknown"
	}
}
