package gateway

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindConstraintViolation ErrorKind = "constraint_violation"
	KindTransportFailure    ErrorKind = "transport_failure"
	KindBadRequest          ErrorKind = "bad_request"
)

// Error is the structured failure every gateway call returns. Callers match
// on Kind (and Constraint for uniqueness violations), never on message text.
type Error struct {
	Kind       ErrorKind
	Constraint string
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("gateway: %s (%s): %s", e.Kind, e.Constraint, e.Message)
	}
	return fmt.Sprintf("gateway: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func constraintViolation(constraint string) *Error {
	return &Error{
		Kind:       KindConstraintViolation,
		Constraint: constraint,
		Message:    "unique constraint violated",
	}
}

func transportFailure(cause error) *Error {
	return &Error{Kind: KindTransportFailure, Message: cause.Error(), cause: cause}
}

func badRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// IsConstraint reports whether err is a violation of the named constraint.
func IsConstraint(err error, constraint string) bool {
	var gerr *Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Kind == KindConstraintViolation && gerr.Constraint == constraint
}
