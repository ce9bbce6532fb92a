package crypto

import "fmt"

// EncryptBlob seals a configuration document under a master key with
// AES-256-GCM and returns standard base64.
func EncryptBlob(plaintext, masterKey []byte) (string, error) {
	envelope, err := EncryptGCM(plaintext, masterKey, nil, nil, DefaultKDFIterations)
	if err != nil {
		return "", err
	}
	return ToBase64(envelope), nil
}

// DecryptBlob opens a document sealed by EncryptBlob. A wrong key or any
// modification yields ErrDecryptionFailed.
func DecryptBlob(encoded string, masterKey []byte) ([]byte, error) {
	envelope, err := DecodeBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCiphertext, err)
	}
	return DecryptGCM(envelope, masterKey, nil, DefaultKDFIterations)
}
