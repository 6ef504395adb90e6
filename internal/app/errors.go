package app

import "errors"

var (
	// ErrInvalidCredentials is returned by AuthenticateUser for unknown users and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrForbidden is returned when the actor lacks the capability an operation requires.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput wraps validation failures of user-supplied data.
	ErrInvalidInput = errors.New("invalid input")
)
