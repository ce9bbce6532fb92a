package chatseal

import (
	"errors"

	"github.com/chatseal/chatseal/internal/upload"
)

// UploadMetadata describes an encrypted attachment.
type UploadMetadata = upload.Metadata

// SealedUpload is an encrypted attachment. Identity and Ciphertext may be
// stored publicly; Seed must only be shared with the recipients.
type SealedUpload = upload.Sealed

// SealUpload encrypts a file and its metadata under a fresh random seed
// with AES-256-CCM.
func SealUpload(file []byte, meta UploadMetadata) (*SealedUpload, error) {
	sealed, err := upload.Seal(file, meta)
	if err != nil {
		return nil, wrapUploadError(err)
	}
	return sealed, nil
}

// OpenUpload decrypts an attachment sealed by SealUpload. A wrong seed or
// a modified ciphertext returns a *DecodeError of kind KindAuthFailed.
func OpenUpload(seed, ciphertext []byte) (UploadMetadata, []byte, error) {
	meta, file, err := upload.Open(seed, ciphertext)
	if err != nil {
		return UploadMetadata{}, nil, wrapUploadError(err)
	}
	return meta, file, nil
}

func wrapUploadError(err error) error {
	switch {
	case errors.Is(err, upload.ErrInvalidSeed), errors.Is(err, upload.ErrTooLarge):
		return &ConfigError{Field: "upload", Err: err}
	case errors.Is(err, upload.ErrAuthenticationFailed), errors.Is(err, upload.ErrMalformedPayload):
		return wrapDecodeError(err)
	}
	return err
}
