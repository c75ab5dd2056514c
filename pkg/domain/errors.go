package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedOperation is returned when an operation is not offered for a variant.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// ErrBudgetExceeded is returned when an evaluation explores more configurations
// than it is allowed to.
var ErrBudgetExceeded = errors.New("exploration budget exceeded")

// ErrVerdictNotFound is returned by verdict caches on a miss.
var ErrVerdictNotFound = errors.New("verdict not found")

// ValidationError aggregates every structural problem found in a description.
type ValidationError struct {
	Variant  Variant
	Problems []string
}

func (e *ValidationError) Error() string {
	prefix := "invalid automaton"
	if e.Variant != "" {
		prefix = fmt.Sprintf("invalid %s automaton", e.Variant)
	}
	if len(e.Problems) == 1 {
		return prefix + ": " + e.Problems[0]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d problems:\n", prefix, len(e.Problems))
	for i, p := range e.Problems {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
	}
	return b.String()
}

// ValidationProblems returns the problems if err wraps a ValidationError.
// Otherwise returns nil.
func ValidationProblems(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Problems
	}
	return nil
}

// UnknownVariantError is returned for a variant tag outside the recognized set.
type UnknownVariantError struct {
	Tag string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown automaton type %q", e.Tag)
}

// UnsupportedOperationError is returned when an operation is requested for a
// variant that does not offer it (e.g. emptiness of a register automaton).
type UnsupportedOperationError struct {
	Operation string
	Variant   Variant
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s is not supported for %s", e.Operation, e.Variant)
}

func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// BudgetExceededError reports an evaluation that hit its exploration budget.
type BudgetExceededError struct {
	Variant  Variant
	Explored int
	Limit    int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("%s evaluation explored %d configurations (limit: %d)", e.Variant, e.Explored, e.Limit)
}

func (e *BudgetExceededError) Is(target error) bool {
	return target == ErrBudgetExceeded
}

// ErrorKind is a stable, transport-friendly classification of engine errors.
type ErrorKind string

const (
	KindValidation           ErrorKind = "validation"
	KindUnknownVariant       ErrorKind = "unknown_variant"
	KindUnsupportedOperation ErrorKind = "unsupported_operation"
	KindBudgetExceeded       ErrorKind = "budget_exceeded"
	KindCanceled             ErrorKind = "canceled"
	KindInternal             ErrorKind = "internal"
)

// KindOf classifies err. A nil error has an empty kind.
func KindOf(err error) ErrorKind {
	var (
		verr *ValidationError
		uerr *UnknownVariantError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return KindValidation
	case errors.As(err, &uerr):
		return KindUnknownVariant
	case errors.Is(err, ErrUnsupportedOperation):
		return KindUnsupportedOperation
	case errors.Is(err, ErrBudgetExceeded):
		return KindBudgetExceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	}
	return KindInternal
}
