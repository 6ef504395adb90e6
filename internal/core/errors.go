package core

import "errors"

var (
	// ErrNotFound is wrapped by lookups that match no row.
	ErrNotFound = errors.New("not found")

	// ErrInvalidNonce is returned by NonceManager.Verify for any rejected token.
	ErrInvalidNonce = errors.New("invalid nonce")
)
