package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/chatseal/chatseal/internal/kdf"
)

// randReader is the random source for salts and blob IV material.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func random() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// NormalizeKey returns key resized to keyBits/8 bytes. Keys that already
// have the target length are returned unchanged; any other length is
// hashed with the digest assigned to the target size:
//
//	 64 bits  Whirlpool, first 8 bytes
//	128 bits  SHA-512, first 16 bytes
//	160 bits  SHA-1
//	192 bits  SHA-512, first 24 bytes
//	256 bits  SHA-256
//	512 bits  Whirlpool, or SHA-512 when preferSHA512 is set
func NormalizeKey(key []byte, keyBits int, preferSHA512 bool) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if len(key)*8 == keyBits {
		return key, nil
	}

	switch keyBits {
	case 64:
		return kdf.Whirlpool64(key), nil
	case 128:
		return kdf.SHA512Trunc128(key), nil
	case 160:
		return kdf.SHA1(key), nil
	case 192:
		return kdf.SHA512Trunc192(key), nil
	case 256:
		return kdf.SHA256(key), nil
	case 512:
		if preferSHA512 {
			return kdf.SHA512(key), nil
		}
		return kdf.Whirlpool(key), nil
	default:
		return nil, fmt.Errorf("%w: no normalization for %d-bit keys", ErrUnsupportedCipher, keyBits)
	}
}

// NormalizeSalt returns an 8-byte salt. A nil salt yields fresh random
// bytes. A salt of any other length than 8 is replaced by the first 8
// bytes of its Whirlpool digest, so the result is deterministic.
func NormalizeSalt(salt []byte) ([]byte, error) {
	switch {
	case salt == nil:
		s := make([]byte, SaltSize)
		if _, err := io.ReadFull(random(), s); err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
		return s, nil
	case len(salt) == SaltSize:
		return salt, nil
	default:
		return kdf.Whirlpool64(salt), nil
	}
}

// deriveIVAndKey stretches a normalized key into an IV followed by a
// cipher key using PBKDF2-HMAC-SHA256.
func deriveIVAndKey(key, salt []byte, ivLen, keyLen, iterations int) (iv, cipherKey []byte, err error) {
	if iterations <= 0 {
		iterations = DefaultKDFIterations
	}
	material, err := kdf.PBKDF2(key, salt, kdf.HashSHA256, ivLen+keyLen, iterations)
	if err != nil {
		return nil, nil, err
	}
	return material[:ivLen], material[ivLen:], nil
}
