// Package errors provides unified error handling with a structured Code.
// Fatal kinds terminate the process; the frame loop skips retryable ones.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies an AppError.
type Code uint8

const (
	CodeUnknown Code = iota
	CodeInternal
	CodeConfigInvalid
	CodeCaptureUnavailable // no display to capture, fatal
	CodeCaptureFailed      // single capture attempt failed, skip the tick
	CodeDegenerateBlock    // zero-area block, skipped by the scanner
	CodeRenderSurfaceInit  // windowing system refused the overlay, fatal
)

var codeNames = [...]string{
	CodeUnknown:            "UNKNOWN",
	CodeInternal:           "INTERNAL",
	CodeConfigInvalid:      "CONFIG_INVALID",
	CodeCaptureUnavailable: "CAPTURE_UNAVAILABLE",
	CodeCaptureFailed:      "CAPTURE_FAILED",
	CodeDegenerateBlock:    "DEGENERATE_BLOCK",
	CodeRenderSurfaceInit:  "RENDER_SURFACE_INIT",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("CODE(%d)", uint8(c))
}

// AppError is the base error type with structured error code and metadata.
type AppError struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if len(e.Metadata) > 0 {
		s += fmt.Sprintf(" %v", e.Metadata)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" caused by: %v", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Cause }

// Fatal reports whether the error should terminate the process.
func (e *AppError) Fatal() bool {
	switch e.Code {
	case CodeCaptureUnavailable, CodeRenderSurfaceInit, CodeConfigInvalid:
		return true
	default:
		return false
	}
}

// New creates a new AppError with the given code and message.
func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// Newf creates a new AppError with formatted message.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError.
func Wrap(err error, code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Cause: err}
}

// Wrapf wraps an existing error with formatted message.
func Wrapf(err error, code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// WithMetadata adds metadata to an AppError.
func (e *AppError) WithMetadata(key, value string) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// CodeOf returns the code of the first AppError in err's chain.
func CodeOf(err error) Code {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code Code) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsFatal returns true if err carries a fatal code.
func IsFatal(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Fatal()
	}
	return false
}

// IsRetryable returns true if the error is potentially retryable.
func IsRetryable(err error) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	switch appErr.Code {
	case CodeCaptureFailed, CodeInternal:
		return true
	default:
		return false
	}
}
