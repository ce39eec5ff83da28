// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types for hioload-port. Ports distinguish configuration
// errors (rejected before any OS resource is touched) from system errors
// (a named syscall failed with an OS error code). Transient I/O conditions
// never surface as errors; they degrade to shorter batches.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrPortClosed     = errors.New("port is closed")
	ErrDriverNotFound = errors.New("port driver not found")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeSyscall
	ErrCodeAlreadyExists
	ErrCodeInternal
)

// Error is a structured error with a code and an optional wrapped cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Cause }

// NewConfigError reports an invalid port configuration.
func NewConfigError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewSysError reports a failed syscall by name, wrapping the OS error code.
func NewSysError(call string, cause error) *Error {
	return &Error{
		Code:    ErrCodeSyscall,
		Message: fmt.Sprintf("%s failed", call),
		Cause:   cause,
	}
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidArgument
}
