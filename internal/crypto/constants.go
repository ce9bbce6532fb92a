package crypto

const (
	// SaltSize is the size of the per-message salt in bytes.
	SaltSize = 8

	// DefaultKDFIterations is the PBKDF2 iteration count used when the
	// caller does not choose one.
	DefaultKDFIterations = 1000

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// GCMNonceSize is the size of the GCM IV derived for blob encryption.
	GCMNonceSize = 16
	// GCMTagSize is the size of an AES-GCM authentication tag in bytes.
	GCMTagSize = 16

	// blowfishMaxKey is the longest key the Blowfish primitive accepts.
	blowfishMaxKey = 56
)
