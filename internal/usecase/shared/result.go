package shared

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeInvalidState ErrorCode = "INVALID_STATE"
	CodeValidation   ErrorCode = "VALIDATION"
)

// DomainError is an expected use-case failure carried inside a Result.
type DomainError struct {
	Code    ErrorCode
	Message string
	cause   error
}

// Sentinels match any DomainError with the same code via errors.Is.
var (
	ErrNotFound     = &DomainError{Code: CodeNotFound}
	ErrConflict     = &DomainError{Code: CodeConflict}
	ErrInvalidState = &DomainError{Code: CodeInvalidState}
	ErrValidation   = &DomainError{Code: CodeValidation}
)

func (e *DomainError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Message == "" && t.Code == e.Code
}

func NotFound(entity string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: entity + " not found"}
}

func Conflict(format string, args ...any) *DomainError {
	return &DomainError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(msg string, cause error) *DomainError {
	return &DomainError{Code: CodeInvalidState, Message: msg, cause: cause}
}

func Validation(msg string, cause error) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg, cause: cause}
}

// Result is either a value or a DomainError, never both.
type Result[T any] struct {
	value   T
	failure *DomainError
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Fail[T any](err *DomainError) Result[T] {
	if err == nil {
		panic("shared.Fail: err cannot be nil")
	}
	return Result[T]{failure: err}
}

func (r Result[T]) IsOk() bool            { return r.failure == nil }
func (r Result[T]) Value() T              { return r.value }
func (r Result[T]) Failure() *DomainError { return r.failure }

func (r Result[T]) Get() (T, *DomainError) {
	return r.value, r.failure
}

// FromError turns a DomainError into a failed Result; any other error is returned as a fault.
func FromError[T any](err error) (Result[T], error) {
	var de *DomainError
	if errors.As(err, &de) {
		return Fail[T](de), nil
	}
	return Result[T]{}, err
}
