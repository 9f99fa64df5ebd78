package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCardID    = errors.New("invalid card id")
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrCardNotFound     = errors.New("card not found")
	ErrOwnerNotFound    = errors.New("card owner not found")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("forbidden")
	ErrUnknownOperation = errors.New("unknown operation")
)

// ErrBusinessRequired is a forbidden decision; errors.Is matches both.
var ErrBusinessRequired = fmt.Errorf("%w: only business users can create cards", ErrForbidden)
