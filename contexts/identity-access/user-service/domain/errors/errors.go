package errors

import "errors"

var (
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("user already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("forbidden")
	ErrUnknownOperation    = errors.New("unknown operation")
	ErrCardCascadeFailed   = errors.New("owned card cleanup failed")
	ErrTokenIssueFailed    = errors.New("session token could not be issued")
	ErrPasswordHashFailure = errors.New("password could not be hashed")
)
