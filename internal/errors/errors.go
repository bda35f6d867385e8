package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the evaluation timed out.
	ExitErrorMismatch = 3   // Indicates disagreeing products between multiplication strategies.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvaluationError reports a failed expression evaluation while preserving the
// original cause, typically grou.ErrUnderflow, a *grou.FormatError or a
// context error.
type EvaluationError struct {
	// Expr is the expression text being evaluated, if known.
	Expr string
	// Cause is the underlying error that triggered this evaluation error.
	Cause error
}

// Error returns the cause message, prefixed with the expression when set.
func (e EvaluationError) Error() string {
	if e.Expr == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("evaluating %q: %v", e.Expr, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e EvaluationError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports that multiplication strategies disagreed on the same
// operands. Strategies lists the names of the strategies whose product
// differed from the reference.
type MismatchError struct {
	// Reference is the strategy whose product the others were compared to.
	Reference string
	// Strategies names the strategies that disagreed with Reference.
	Strategies []string
}

// Error returns a formatted message naming the disagreeing strategies.
func (e MismatchError) Error() string {
	return fmt.Sprintf("product mismatch: %s disagree with %s", strings.Join(e.Strategies, ", "), e.Reference)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var (
		cfgErr      ConfigError
		validErr    ValidationError
		timeoutErr  TimeoutError
		mismatchErr MismatchError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &cfgErr), errors.As(err, &validErr):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	}
	return ExitErrorGeneric
}
