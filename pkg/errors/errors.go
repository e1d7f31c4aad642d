package errors

import (
	"errors"
	"fmt"
	"time"
)

type RejectedExecutionError struct {
	reason string
	cause  error
}

func NewRejectedExecutionError(reason string) error {
	return &RejectedExecutionError{reason: reason}
}

func NewRejectedExecutionErrorWithCause(reason string, cause error) error {
	return &RejectedExecutionError{reason: reason, cause: cause}
}

func (e *RejectedExecutionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("rejected execution: %s: %v", e.reason, e.cause)
	}
	return fmt.Sprintf("rejected execution: %s", e.reason)
}

func (e *RejectedExecutionError) Unwrap() error {
	return e.cause
}

func IsRejectedExecutionError(err error) bool {
	var e *RejectedExecutionError
	return errors.As(err, &e)
}

type CancellationError struct{}

func NewCancellationError() error {
	return &CancellationError{}
}

func (e *CancellationError) Error() string {
	return "task was cancelled"
}

func IsCancellationError(err error) bool {
	var e *CancellationError
	return errors.As(err, &e)
}

// ExecutionError is returned when retrieving the result of a task that failed.
type ExecutionError struct {
	cause error
}

func NewExecutionError(cause error) error {
	return &ExecutionError{cause: cause}
}

func (e *ExecutionError) Error() string {
	if e.cause == nil {
		return "execution failed"
	}
	return fmt.Sprintf("execution failed: %v", e.cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.cause
}

func IsExecutionError(err error) bool {
	var e *ExecutionError
	return errors.As(err, &e)
}

type TimeoutError struct {
	timeout time.Duration
}

func NewTimeoutError(timeout time.Duration) error {
	return &TimeoutError{timeout: timeout}
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s", e.timeout)
}

func IsTimeoutError(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}

// InterruptedError is returned by blocking calls whose context was cancelled
// while waiting.
type InterruptedError struct {
	cause error
}

func NewInterruptedError(cause error) error {
	return &InterruptedError{cause: cause}
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("interrupted: %v", e.cause)
}

func (e *InterruptedError) Unwrap() error {
	return e.cause
}

func IsInterruptedError(err error) bool {
	var e *InterruptedError
	return errors.As(err, &e)
}

type PanicError struct {
	Value any
	Stack []byte
}

func NewPanicError(value any, stack []byte) error {
	return &PanicError{Value: value, Stack: stack}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func IsPanicError(err error) bool {
	var e *PanicError
	return errors.As(err, &e)
}

type IllegalArgumentError struct {
	msg string
}

func NewIllegalArgumentError(format string, args ...any) error {
	return &IllegalArgumentError{msg: fmt.Sprintf(format, args...)}
}

func (e *IllegalArgumentError) Error() string {
	return fmt.Sprintf("illegal argument: %s", e.msg)
}

func IsIllegalArgumentError(err error) bool {
	var e *IllegalArgumentError
	return errors.As(err, &e)
}

type IllegalStateError struct {
	msg string
}

func NewIllegalStateError(format string, args ...any) error {
	return &IllegalStateError{msg: fmt.Sprintf(format, args...)}
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("illegal state: %s", e.msg)
}

func IsIllegalStateError(err error) bool {
	var e *IllegalStateError
	return errors.As(err, &e)
}
