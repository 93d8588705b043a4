package errors

import "fmt"

var (
	ErrUnauthenticated = fmt.Errorf("no authenticated user")
	ErrEmptyContent    = fmt.Errorf("message content is empty")
	ErrUnknownKind     = fmt.Errorf("unknown message kind")
)
