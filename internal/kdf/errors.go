package kdf

import "errors"

var (
	// ErrInvalidParameters is returned for out-of-range KDF parameters.
	ErrInvalidParameters = errors.New("invalid kdf parameters")

	// ErrCancelled is returned when a derivation is aborted by its progress
	// callback or its context.
	ErrCancelled = errors.New("key derivation cancelled")
)
