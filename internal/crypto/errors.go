package crypto

import "errors"

var (
	// ErrUnsupportedCipher is returned for an unknown algorithm or block
	// mode. It is always reported before any cryptographic work.
	ErrUnsupportedCipher = errors.New("unsupported cipher")

	// ErrInvalidSuite is returned for a cipher suite index outside 0..24.
	ErrInvalidSuite = errors.New("invalid cipher suite index")

	// ErrInvalidCiphertext is returned when an envelope is too short or is
	// not a whole number of blocks.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")

	// ErrDecryptionFailed is returned when GCM authentication fails.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrEmptyKey is returned when no key material is supplied.
	ErrEmptyKey = errors.New("empty key")
)
