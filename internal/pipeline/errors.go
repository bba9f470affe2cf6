package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure for callers.
type Kind string

const (
	// KindExtractionFailed marks an unreadable or corrupt document. It is
	// recovered at document granularity: the document is excluded and its
	// siblings continue.
	KindExtractionFailed Kind = "extraction_failed"
	// KindInvalidQuery marks an empty persona/job query. Fatal for the
	// whole ranking request since the query is shared across documents.
	KindInvalidQuery Kind = "invalid_query"
	// KindInvalidInput marks a document count outside the allowed range,
	// rejected before any processing begins.
	KindInvalidInput Kind = "invalid_input"
	// KindModelUnavailable marks an unreachable embedding encoder. Fatal
	// for ranking mode only; outline mode has no embedding dependency.
	KindModelUnavailable Kind = "model_unavailable"
	// KindTimeout marks an exceeded request deadline. The whole request
	// fails; partial rankings are never returned because normalization is
	// pool-wide.
	KindTimeout Kind = "timeout"
)

// Error is a classified pipeline failure with a human-readable cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds a classified error from a format string.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the kind from an error chain, or "" for unclassified
// errors.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
