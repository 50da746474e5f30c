package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the categories of failure the recorder can report
type ErrorType string

const (
	ErrorTypeMissingFile      ErrorType = "missing_file"
	ErrorTypeMalformedContent ErrorType = "malformed_content"
	ErrorTypeOutOfRange       ErrorType = "out_of_range"
	ErrorTypeIOFailure        ErrorType = "io_failure"
	ErrorTypeNotRecorded      ErrorType = "not_recorded"
	ErrorTypeInvalidAudio     ErrorType = "invalid_audio"
	ErrorTypeUnknown          ErrorType = "unknown"
)

// Error represents a typed failure with the path it concerns
type Error struct {
	Type    ErrorType
	Message string
	Path    string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Type, e.Message)
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error
func New(errorType ErrorType, path, message string, err error) *Error {
	return &Error{Type: errorType, Message: message, Path: path, Err: err}
}

// MissingFile reports a file that does not exist
func MissingFile(path string) *Error {
	return New(ErrorTypeMissingFile, path, "file does not exist", nil)
}

// OutOfRange reports an index outside the valid prompt range
func OutOfRange(index, total int) *Error {
	return New(ErrorTypeOutOfRange, "", fmt.Sprintf("index %d outside [0, %d)", index, total), nil)
}

// IOFailure reports a failed filesystem operation
func IOFailure(path, message string, err error) *Error {
	return New(ErrorTypeIOFailure, path, message, err)
}

// IsType reports whether err, or any error it wraps, is an *Error of the given type
func IsType(err error, errorType ErrorType) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == errorType
	}
	return false
}

// TypeOf returns the type of err, or ErrorTypeUnknown for untyped errors
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}
