package chatseal

import (
	"errors"
	"fmt"

	"github.com/chatseal/chatseal/internal/crypto"
	"github.com/chatseal/chatseal/internal/dual"
	"github.com/chatseal/chatseal/internal/exchange"
	"github.com/chatseal/chatseal/internal/kdf"
	"github.com/chatseal/chatseal/internal/padding"
	"github.com/chatseal/chatseal/internal/upload"
	"github.com/chatseal/chatseal/internal/wire"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrAuthenticationFailed is returned when an HMAC or GCM tag does not
	// verify. Nothing is decrypted in that case.
	ErrAuthenticationFailed = errors.New("authentication of cipher text failed")

	// ErrDecryptionFailed is returned when a cipher stage or the padding
	// removal fails.
	ErrDecryptionFailed = errors.New("failed to decrypt cipher text")

	// ErrMalformedMessage is returned when a message cannot be parsed:
	// missing magic, short header, out-of-range metadata or foreign
	// characters.
	ErrMalformedMessage = errors.New("invalid key or malformed message")

	// ErrInvalidConfiguration is returned for out-of-range options.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnsupportedAlgorithm is returned for a cipher, mode, group or
	// curve that is not available.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrCancelled is returned when a key derivation is stopped by its
	// progress callback or its context.
	ErrCancelled = errors.New("operation cancelled")

	// ErrAlgorithmMismatch is returned when the peer's public key uses a
	// different key exchange algorithm.
	ErrAlgorithmMismatch = errors.New("key exchange algorithm mismatch")

	// ErrInvalidPublicKey is returned for an unparseable or invalid peer key.
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrSaltCollision is returned when both exchange salts are identical.
	ErrSaltCollision = errors.New("key exchange salt collision")

	// ErrKeyExchangeClosed is returned when a key exchange is reused after
	// its secret was computed.
	ErrKeyExchangeClosed = errors.New("key exchange already completed")
)

// SealError is implemented by all typed errors of this package.
type SealError interface {
	error
	SealError() // marker method
}

// ErrorKind classifies a failed decode.
type ErrorKind int

const (
	// KindMalformed means the message could not be parsed.
	KindMalformed ErrorKind = iota
	// KindAuthFailed means the authentication tag did not verify.
	KindAuthFailed
	// KindDecryptFailed means a cipher stage or unpadding failed.
	KindDecryptFailed
)

// String returns the message shown to users for this kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAuthFailed:
		return "AUTHENTICATION OF CIPHER TEXT FAILED"
	case KindDecryptFailed:
		return "FAILED TO DECRYPT CIPHER TEXT"
	default:
		return "DECRYPTION FAILURE: INVALID KEY OR MALFORMED MESSAGE"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindAuthFailed:
		return ErrAuthenticationFailed
	case KindDecryptFailed:
		return ErrDecryptionFailed
	default:
		return ErrMalformedMessage
	}
}

// DecodeError reports why a message or blob could not be opened.
type DecodeError struct {
	Kind ErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.sentinel(), e.Err)
	}
	return e.Kind.sentinel().Error()
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecodeError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// SealError implements the SealError interface.
func (e *DecodeError) SealError() {}

// ConfigError reports an invalid option.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ConfigError) Is(target error) bool {
	switch target {
	case ErrInvalidConfiguration:
		return true
	case ErrUnsupportedAlgorithm:
		return errors.Is(e.Err, crypto.ErrUnsupportedCipher) || errors.Is(e.Err, exchange.ErrUnsupportedAlgorithm)
	}
	return false
}

// SealError implements the SealError interface.
func (e *ConfigError) SealError() {}

// KeyExchangeError reports a failed key exchange step.
type KeyExchangeError struct {
	Op  string // "generate", "parse", "compute", "derive"
	Err error
}

func (e *KeyExchangeError) Error() string {
	return fmt.Sprintf("key exchange %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyExchangeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyExchangeError) Is(target error) bool {
	switch target {
	case ErrAlgorithmMismatch:
		return errors.Is(e.Err, exchange.ErrAlgorithmMismatch)
	case ErrInvalidPublicKey:
		return errors.Is(e.Err, exchange.ErrInvalidPublicKey) || errors.Is(e.Err, wire.ErrMalformed)
	case ErrSaltCollision:
		return errors.Is(e.Err, exchange.ErrSaltCollision)
	case ErrUnsupportedAlgorithm:
		return errors.Is(e.Err, exchange.ErrUnsupportedAlgorithm)
	case ErrKeyExchangeClosed:
		return errors.Is(e.Err, exchange.ErrSessionClosed)
	case ErrCancelled:
		return errors.Is(e.Err, kdf.ErrCancelled)
	}
	return false
}

// SealError implements the SealError interface.
func (e *KeyExchangeError) SealError() {}

// CancelledError reports a key derivation that was stopped before it
// finished.
type CancelledError struct {
	Op  string
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("%s cancelled: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *CancelledError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

// SealError implements the SealError interface.
func (e *CancelledError) SealError() {}

// wrapDecodeError converts internal decode failures to *DecodeError.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapDecodeError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, dual.ErrAuthenticationFailed),
		errors.Is(err, crypto.ErrDecryptionFailed),
		errors.Is(err, upload.ErrAuthenticationFailed):
		return &DecodeError{Kind: KindAuthFailed, Err: err}
	case errors.Is(err, dual.ErrDecryptionFailed),
		errors.Is(err, padding.ErrPadding):
		return &DecodeError{Kind: KindDecryptFailed, Err: err}
	default:
		return &DecodeError{Kind: KindMalformed, Err: err}
	}
}

// wrapError converts other internal errors to public errors.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, kdf.ErrCancelled):
		return &CancelledError{Op: op, Err: err}
	case errors.Is(err, crypto.ErrUnsupportedCipher),
		errors.Is(err, crypto.ErrInvalidSuite),
		errors.Is(err, padding.ErrInvalidScheme),
		errors.Is(err, kdf.ErrInvalidParameters):
		return &ConfigError{Field: op, Err: err}
	}
	return err
}
