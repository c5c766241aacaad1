package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrResultNotFound = errors.New("result not found")

// ValidationError rejects a portfolio before any computation runs.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) error {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// DependencyUnavailableError is what the I/O layer returns once its retry
// budget is spent or the failure is not retryable.
type DependencyUnavailableError struct {
	Dependency string
	Err        error
}

func (e DependencyUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e DependencyUnavailableError) Unwrap() error {
	return e.Err
}

func IsDependencyUnavailable(err error) bool {
	var d DependencyUnavailableError
	return errors.As(err, &d)
}

// CombineError lists the result files absent at combine time.
type CombineError struct {
	PortfolioID string
	Missing     []string
}

func (e CombineError) Error() string {
	return fmt.Sprintf("missing required result files for %s: [%s]", e.PortfolioID, strings.Join(e.Missing, ", "))
}

func IsCombineError(err error) bool {
	var c CombineError
	return errors.As(err, &c)
}
