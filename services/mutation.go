package services

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Outcome is the terminal state of one mutation attempt. Every call runs the
// same machine: idle, submitting, then exactly one of the variants below.
// A fresh call always starts a new attempt; nothing is retried automatically.
type Outcome int

const (
	// OutcomeFresh is a first-time success: a row was created.
	OutcomeFresh Outcome = iota
	// OutcomeIdempotent means the requested state already existed. It is a
	// success from the caller's point of view, surfaced with different text.
	OutcomeIdempotent
	// OutcomeUnauthenticated is a refusal before any gateway call; the caller
	// is expected to prompt for sign-in.
	OutcomeUnauthenticated
	// OutcomeFailed carries the underlying error alongside.
	OutcomeFailed
)

// Succeeded reports whether the requested state exists after the attempt.
func (o Outcome) Succeeded() bool {
	return o == OutcomeFresh || o == OutcomeIdempotent
}

func (o Outcome) String() string {
	switch o {
	case OutcomeFresh:
		return "fresh"
	case OutcomeIdempotent:
		return "idempotent"
	case OutcomeUnauthenticated:
		return "unauthenticated"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}
