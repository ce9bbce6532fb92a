package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/chatseal/chatseal/internal/padding"
)

// newGCM builds AES-256-GCM with the 16-byte IV the blob format derives.
func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, GCMNonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// EncryptGCM encrypts plaintext with AES-256-GCM under a key and IV
// derived from key and a salt, exactly like the block cipher wrapper.
// The plaintext is PKCS#7 padded first.
// Returns: tag (16 bytes) || salt (8 bytes) || ciphertext
func EncryptGCM(plaintext, key, salt, aad []byte, iterations int) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	padded, err := padding.Pad(plaintext, padding.PKCS7, aes.BlockSize*8)
	if err != nil {
		return nil, err
	}

	salt, err = NormalizeSalt(salt)
	if err != nil {
		return nil, err
	}

	gcm, iv, err := gcmFor(key, salt, iterations)
	if err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nil, iv, padded, aad)
	ct, tag := sealed[:len(padded)], sealed[len(padded):]

	out := make([]byte, 0, GCMTagSize+SaltSize+len(ct))
	out = append(out, tag...)
	out = append(out, salt...)
	out = append(out, ct...)
	return out, nil
}

// DecryptGCM reverses EncryptGCM. A tag mismatch returns
// ErrDecryptionFailed and no plaintext.
// The envelope format is: tag (16 bytes) || salt (8 bytes) || ciphertext
func DecryptGCM(envelope, key, aad []byte, iterations int) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	if len(envelope) < GCMTagSize+SaltSize+aes.BlockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidCiphertext, len(envelope))
	}

	tag := envelope[:GCMTagSize]
	salt := envelope[GCMTagSize : GCMTagSize+SaltSize]
	ct := envelope[GCMTagSize+SaltSize:]

	gcm, iv, err := gcmFor(key, salt, iterations)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ct)+GCMTagSize)
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	padded, err := gcm.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return padding.Unpad(padded, padding.PKCS7, aes.BlockSize*8)
}

func gcmFor(key, salt []byte, iterations int) (cipher.AEAD, []byte, error) {
	normalized, err := NormalizeKey(key, AESKeySize*8, false)
	if err != nil {
		return nil, nil, err
	}

	iv, aesKey, err := deriveIVAndKey(normalized, salt, GCMNonceSize, AESKeySize, iterations)
	if err != nil {
		return nil, nil, err
	}

	gcm, err := newGCM(aesKey)
	if err != nil {
		return nil, nil, err
	}
	return gcm, iv, nil
}
