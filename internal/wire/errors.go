package wire

import "errors"

var (
	// ErrInvalidCharacter is returned when a string contains a character
	// outside the alphabet being substituted.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrMalformed is returned for frames that cannot be parsed: a missing
	// magic, a short header, or out-of-range metadata.
	ErrMalformed = errors.New("malformed frame")
)
