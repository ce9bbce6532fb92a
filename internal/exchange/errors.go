package exchange

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned for a family and size outside
	// the menu, or for the reserved 571-bit slot.
	ErrUnsupportedAlgorithm = errors.New("unsupported key exchange algorithm")

	// ErrAlgorithmMismatch is returned when the peer's blob uses a
	// different algorithm than the local key.
	ErrAlgorithmMismatch = errors.New("key exchange algorithm mismatch")

	// ErrInvalidPublicKey is returned when a blob cannot be parsed or its
	// key is not a valid group element.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrInvalidSecret is returned when a shared secret is empty or not hex.
	ErrInvalidSecret = errors.New("invalid shared secret")

	// ErrSaltCollision is returned when both salts compare equal.
	ErrSaltCollision = errors.New("salt collision")

	// ErrSessionClosed is returned when a session is used after its
	// private key was wiped.
	ErrSessionClosed = errors.New("key exchange session closed")
)
