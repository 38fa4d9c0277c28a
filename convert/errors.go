package convert

import (
	"errors"
	"fmt"
)

// Kind partitions conversion failures. Collaborator-specific failures are
// translated into one of these at the call site that produced them and never
// cross the package boundary untyped.
type Kind int

const (
	// KindInputNotFound: the input path does not exist or is not readable.
	KindInputNotFound Kind = iota + 1
	// KindUnsupportedInput: the file exists but cannot be opened as a PDF
	// (corrupted, truncated, or encrypted beyond collaborator capability).
	KindUnsupportedInput
	// KindBackendFailure: a selected backend failed during extraction.
	KindBackendFailure
	// KindWriteError: the output document could not be persisted.
	KindWriteError
)

func (k Kind) String() string {
	switch k {
	case KindInputNotFound:
		return "input not found"
	case KindUnsupportedInput:
		return "unsupported input"
	case KindBackendFailure:
		return "backend failure"
	case KindWriteError:
		return "write error"
	default:
		return "unknown"
	}
}

// Error is a classified conversion failure. Page is 1-based and zero when the
// failure is not tied to a page.
type Error struct {
	Kind Kind
	Page int
	Err  error
}

func (e *Error) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s (page %d): %v", e.Kind, e.Page, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

func failf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func pageFailf(kind Kind, page int, format string, args ...any) *Error {
	return &Error{Kind: kind, Page: page, Err: fmt.Errorf(format, args...)}
}
