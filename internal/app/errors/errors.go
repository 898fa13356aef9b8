package errors

import (
	"errors"
	"fmt"
)

// Failure categories for the processing pipeline. Every per-item failure
// wraps exactly one of these so callers can classify without string
// matching.
var (
	// ErrFFmpegMissing indicates the external conversion utility could not
	// be found on PATH.
	ErrFFmpegMissing = New("ffmpeg not found on PATH - install it from https://ffmpeg.org/download.html or via your package manager (brew install ffmpeg / apt install ffmpeg)")

	// ErrConversionFailed indicates ffmpeg was present but the transform failed.
	ErrConversionFailed = New("audio conversion failed")

	// ErrTranscriptionFailed indicates the transcription backend returned an error.
	ErrTranscriptionFailed = New("transcription failed")

	// ErrUnsupportedFormat indicates the file extension is not one the
	// pipeline accepts.
	ErrUnsupportedFormat = New("unsupported audio format")
)

// Error is a message with an optional cause.
type Error struct {
	message string
	cause   error
}

// New creates a new error.
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{message: message, cause: err}
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{message: fmt.Sprintf(format, args...), cause: err}
}

// WithCause attaches a cause to a category sentinel, keeping the sentinel
// reachable through errors.Is.
func WithCause(sentinel *Error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &Error{message: cause.Error(), cause: sentinel}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Is re-exports errors.Is so callers don't need two error imports.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
