package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned for expression constructs the learner cannot
// process (disjunction, equality) and for malformed effect trees.
var ErrUnsupported = errors.New("unsupported construct")

// ErrCoverage is returned when an operator parameter of a type was never
// observed in any trace, so its states cannot be resolved.
var ErrCoverage = errors.New("coverage error")

// ErrInconsistent signals a violated automaton invariant (an algorithm defect).
var ErrInconsistent = errors.New("internal inconsistency")

// ErrNoTraces is returned when there is nothing to learn from.
var ErrNoTraces = errors.New("no traces supplied")

// ErrCanceled is returned, joined with the context error, when a run is aborted.
var ErrCanceled = errors.New("induction canceled")

// ErrInvalidTrace is returned for traces that do not fit the domain.
var ErrInvalidTrace = errors.New("invalid trace")

// ErrInvalidDomain is returned for malformed domain descriptions.
var ErrInvalidDomain = errors.New("invalid domain")

// CoverageError names the operator parameter whose states are unknown.
type CoverageError struct {
	Type     string
	Operator string
	Index    int
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("coverage error: type %q was never observed at parameter %d of operator %q", e.Type, e.Index, e.Operator)
}

func (e *CoverageError) Unwrap() error {
	return ErrCoverage
}

// Canceled wraps a context error so it matches both ErrCanceled and the cause.
func Canceled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCanceled, cause)
}
