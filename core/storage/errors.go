package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes
const (
	CodeValidation     = "VALIDATION"
	CodeBackend        = "BACKEND"
	CodePartialFailure = "PARTIAL_FAILURE"
	CodeInterrupted    = "INTERRUPTED"
)

// Error is the single error type surfaced by the gateway.
type Error struct {
	// Code classifies the failure (see the Code* constants).
	Code string
	// Backend is the adapter that produced the error, if any.
	Backend Kind
	// Op is the gateway operation, e.g. "upload" or "delete bucket".
	Op string
	// Resource names the bucket, object or tenant involved.
	Resource string
	Message  string
	// Failed lists object keys for partial failures.
	Failed []string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(e.Code)
	if e.Backend != "" {
		b.WriteString("/")
		b.WriteString(string(e.Backend))
	}
	b.WriteString("] ")
	b.WriteString(e.Op)
	if e.Resource != "" {
		b.WriteString(" ")
		b.WriteString(e.Resource)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrValidation     = &Error{Code: CodeValidation}
	ErrBackend        = &Error{Code: CodeBackend}
	ErrPartialFailure = &Error{Code: CodePartialFailure}
	ErrInterrupted    = &Error{Code: CodeInterrupted}
)

// Validation creates a validation error. These are never retried.
func Validation(op, resource, message string) error {
	return &Error{Code: CodeValidation, Op: op, Resource: resource, Message: message}
}

// Backend wraps a transport or SDK failure. A nil err yields nil.
func Backend(kind Kind, op, resource string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Code: CodeBackend, Backend: kind, Op: op, Resource: resource, Err: err}
}

// PartialFailure reports that some keys of a batch could not be processed.
func PartialFailure(kind Kind, op, bucket string, failed []string, causes []error) error {
	return &Error{
		Code:     CodePartialFailure,
		Backend:  kind,
		Op:       op,
		Resource: bucket,
		Message:  fmt.Sprintf("%d object(s) failed: %s", len(failed), strings.Join(failed, ", ")),
		Failed:   failed,
		Err:      errors.Join(causes...),
	}
}

// Interrupted reports a retry wait cut short by cancellation.
func Interrupted(op string, err error) error {
	return &Error{Code: CodeInterrupted, Op: op, Message: "retry interrupted", Err: err}
}

// IsBackend reports whether err is a backend-classified failure eligible for retry.
// Only the outermost *Error is inspected: a partial failure wrapping backend causes
// is not retryable as a whole.
func IsBackend(err error) bool {
	return codeOf(err) == CodeBackend
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return codeOf(err) == CodeValidation
}

func codeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
