// Package exception provides the error types shared by pipeline stages.
// It standardizes errors raised while records move through a stage, carrying
// the stage-defined error code and, when attributable, the identifier of the
// record that caused the failure.
package exception

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorCode identifies an entry in a stage's error catalog (e.g. "INDEX_04").
// Each stage defines its own codes; the operator sees the code together with
// the rendered message when a pipeline run is stopped.
type ErrorCode string

// StageError is the error type raised by pipeline stages.
// It holds the stage module where the error occurred, the catalog code, a
// message, the wrapped original error, and the source identifier of the
// offending record when one can be attributed.
type StageError struct {
	// Module indicates the stage module where the error occurred (e.g. "search_index_target").
	Module string
	// Code is the stage catalog code for this error.
	Code ErrorCode
	// Message is a concise description of the error.
	Message string
	// SourceID is the source identifier of the record that caused the error.
	// Empty when the failure cannot be attributed to a single record.
	SourceID string
	// Cause is the wrapped original error.
	Cause error
	// StackTrace is the stack trace at the time of the error (for debugging).
	StackTrace string
}

// NewStageError creates a new StageError instance.
// module: The stage module where the error occurred.
// code: The stage catalog code.
// message: The error message.
// cause: The original error to wrap (may be nil).
func NewStageError(module string, code ErrorCode, message string, cause error) *StageError {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)

	return &StageError{
		Module:     module,
		Code:       code,
		Message:    message,
		Cause:      cause,
		StackTrace: string(buf[:n]),
	}
}

// NewStageErrorf creates a new StageError using a format string for the message.
func NewStageErrorf(module string, code ErrorCode, cause error, format string, a ...interface{}) *StageError {
	return NewStageError(module, code, fmt.Sprintf(format, a...), cause)
}

// WithSourceID attaches the source identifier of the offending record and
// returns the receiver for chaining.
func (e *StageError) WithSourceID(id string) *StageError {
	e.SourceID = id
	return e
}

// Error implements the error interface.
// It renders the module, code, message and, when present, the source
// identifier and the wrapped cause.
func (e *StageError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Module, e.Code, e.Message)
	if e.SourceID != "" {
		msg = fmt.Sprintf("%s (record: %s)", msg, e.SourceID)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the wrapped cause for errors.Unwrap.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// IsStageError determines if the given error is of type StageError.
func IsStageError(err error) bool {
	if err == nil {
		return false
	}
	var se *StageError
	return errors.As(err, &se)
}

// CodeOf returns the catalog code of err when it is (or wraps) a StageError,
// and the empty code otherwise.
func CodeOf(err error) ErrorCode {
	var se *StageError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ExtractErrorMessage extracts the message string from an error.
// For StageError it returns the cleaner Message field; otherwise the standard
// Error() string.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *StageError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
