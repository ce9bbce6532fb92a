package chatseal

import (
	"context"

	"github.com/chatseal/chatseal/internal/crypto"
	"github.com/chatseal/chatseal/internal/kdf"
)

// EncryptBlob seals data under a master key with AES-256-GCM and returns
// standard base64. It is used for configuration storage.
func EncryptBlob(data, masterKey []byte) (string, error) {
	if len(masterKey) == 0 {
		return "", &ConfigError{Field: "master key", Err: crypto.ErrEmptyKey}
	}
	return crypto.EncryptBlob(data, masterKey)
}

// DecryptBlob opens a blob sealed by EncryptBlob. A wrong key or a
// modified blob returns a *DecodeError of kind KindAuthFailed; input that
// is not a blob returns KindMalformed.
func DecryptBlob(blob string, masterKey []byte) ([]byte, error) {
	if len(masterKey) == 0 {
		return nil, &ConfigError{Field: "master key", Err: crypto.ErrEmptyKey}
	}
	data, err := crypto.DecryptBlob(blob, masterKey)
	if err != nil {
		return nil, wrapDecodeError(err)
	}
	return data, nil
}

// DeriveMasterKey stretches a password into a master key with scrypt,
// salted with the password's Whirlpool digest. The derivation can be
// cancelled through ctx or by returning true from progress.
func DeriveMasterKey(ctx context.Context, password []byte, progress ProgressFunc) ([]byte, error) {
	return deriveMasterKey(ctx, password, defaultMasterKeyParams, progress)
}

// DeriveMasterKey is like the package-level DeriveMasterKey but uses the
// engine's scrypt costs.
func (e *Engine) DeriveMasterKey(ctx context.Context, password []byte, progress ProgressFunc) ([]byte, error) {
	e.log.WithField("n", e.cfg.masterKeyParams.N).Debug("deriving master key")
	key, err := deriveMasterKey(ctx, password, e.cfg.masterKeyParams, progress)
	if err != nil {
		e.log.WithError(err).Debug("master key derivation stopped")
	}
	return key, err
}

func deriveMasterKey(ctx context.Context, password []byte, params ScryptParams, progress ProgressFunc) ([]byte, error) {
	if len(password) == 0 {
		return nil, &ConfigError{Field: "password", Err: crypto.ErrEmptyKey}
	}
	key, err := kdf.Scrypt(ctx, password, kdf.Whirlpool(password), params, progress)
	if err != nil {
		return nil, wrapError("master key derivation", err)
	}
	return key, nil
}
