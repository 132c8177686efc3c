package api

import (
	"fmt"
	"runtime"
	"strings"
)

// Error is the structured error type surfaced to the host. Every fatal
// condition raised by this extension carries a code, a human-readable
// message and, when available, the error that caused it.
type Error struct {
	Code    ErrorCode
	Message string
	Stack   []string
	Cause   error
}

// ErrorCode classifies extension errors.
type ErrorCode string

const (
	ErrCodeInvalidWKT   ErrorCode = "INVALID_WKT"
	ErrCodeInvalidParam ErrorCode = "INVALID_PARAM"
	ErrCodeNotSupported ErrorCode = "NOT_SUPPORTED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// StackTrace returns the call stack captured when the error was created.
func (e *Error) StackTrace() []string {
	return e.Stack
}

// NewError creates an Error with a captured call stack.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Stack:   captureStackTrace(),
		Cause:   cause,
	}
}

// WrapError wraps an existing error under a new code and message. If err
// is already an *Error its original stack is preserved.
func WrapError(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*Error); ok {
		return &Error{
			Code:    code,
			Message: message,
			Stack:   apiErr.Stack,
			Cause:   apiErr,
		}
	}
	return &Error{
		Code:    code,
		Message: message,
		Stack:   captureStackTrace(),
		Cause:   err,
	}
}

func captureStackTrace() []string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return []string{}
	}

	frames := runtime.CallersFrames(pc[:n])
	stack := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		if !more {
			break
		}
		fn := frame.Function
		file := frame.File
		if idx := strings.LastIndex(file, "/"); idx != -1 {
			file = file[idx+1:]
		}
		if idx := strings.LastIndex(fn, "/"); idx != -1 {
			fn = fn[idx+1:]
		}
		stack = append(stack, fmt.Sprintf("  at %s (%s:%d)", fn, file, frame.Line))
	}
	return stack
}

// IsErrorCode reports whether err is an *Error carrying the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := err.(*Error); ok {
		return apiErr.Code == code
	}
	return false
}

// GetErrorCode returns the code of err, or "" when err is not an *Error.
func GetErrorCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if apiErr, ok := err.(*Error); ok {
		return apiErr.Code
	}
	return ""
}
