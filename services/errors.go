package services

import (
	"errors"
	"fmt"
)

// Business error kinds. Controllers recover these at the request boundary and
// map them to HTTP status plus a machine-readable code; they never crash the
// process. Anything else bubbling out of a service is an infrastructure error.
var (
	ErrInvalidBudget     = errors.New("invalid budget")
	ErrInvalidGroupSize  = errors.New("invalid group size")
	ErrAlreadyFinalized  = errors.New("task already finalized")
	ErrAlreadyProcessed  = errors.New("withdrawal already processed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotAllowed        = errors.New("actor is not allowed to perform this operation")
)

// ValidationError reports malformed or missing required input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidStateTransitionError reports an operation attempted from a state that
// does not permit it, naming both sides.
type InvalidStateTransitionError struct {
	Current   string
	Attempted string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: cannot move from %q to %q", e.Current, e.Attempted)
}
