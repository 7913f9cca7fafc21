// Package simerrors defines the error kinds surfaced at the
// internal/simulate orchestrator boundary. All errors are synchronous and
// carry no partial results; an in-path depletion is never one of these, it
// is a normal simulation outcome.
package simerrors

import "fmt"

// ValidationError reports a malformed scenario: weights that don't sum to
// one, negative balances, inverted ages, a non-PSD correlation matrix,
// degrees of freedom below 3, negative jump magnitudes, and similar.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Reason)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

// NumericalError reports a failure in the numerical core: a Cholesky
// factorization on a non-positive-definite covariance, a NaN/Inf surfacing
// in generated returns, or a pilot mean correction that diverges
// (|delta| > spec-defined tolerance per asset).
type NumericalError struct {
	Stage  string
	Reason string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("numerical error in %s: %s", e.Stage, e.Reason)
}

// CancelledError reports a cooperative cancellation observed by a worker
// before a chunk starts or between simulated paths.
type CancelledError struct {
	Reason string
}

func (e *CancelledError) Error() string {
	if e.Reason == "" {
		return "simulation cancelled"
	}
	return fmt.Sprintf("simulation cancelled: %s", e.Reason)
}

// InternalError is the catch-all for unexpected invariant violations. It
// carries the failing path index and year for debuggability, per spec.md §7.
type InternalError struct {
	PathIndex int
	Year      int
	Reason    string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error at path=%d year=%d: %s", e.PathIndex, e.Year, e.Reason)
}

// NewValidationError constructs a ValidationError for the named field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NewNumericalError constructs a NumericalError for the named stage.
func NewNumericalError(stage, reason string) error {
	return &NumericalError{Stage: stage, Reason: reason}
}

// NewCancelledError constructs a CancelledError.
func NewCancelledError(reason string) error {
	return &CancelledError{Reason: reason}
}

// NewInternalError constructs an InternalError pinned to a path and year.
func NewInternalError(pathIndex, year int, reason string) error {
	return &InternalError{PathIndex: pathIndex, Year: year, Reason: reason}
}
