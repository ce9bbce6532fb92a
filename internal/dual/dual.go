// Package dual composes two block cipher stages into one message body.
//
// Encryption runs the primary cipher over the plaintext, base64-encodes
// that envelope, and runs the secondary cipher over the base64 text. When
// authentication is enabled an HMAC-SHA256 tag over the second envelope,
// keyed with the primary key, is prepended. The result is encoded in the
// private wire alphabet.
//
// Decryption reports three distinct failure classes: ErrMalformed for
// bodies that cannot be parsed, ErrAuthenticationFailed for tag
// mismatches (checked before any decryption), and ErrDecryptionFailed
// for cipher or padding failures.
package dual

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/chatseal/chatseal/internal/crypto"
	"github.com/chatseal/chatseal/internal/kdf"
	"github.com/chatseal/chatseal/internal/padding"
	"github.com/chatseal/chatseal/internal/wire"
)

// TagSize is the length of the authentication tag.
const TagSize = sha256.Size

var (
	ErrMalformed            = errors.New("malformed message")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrDecryptionFailed     = errors.New("decryption failed")
)

// Params selects the ciphers and options for one message.
type Params struct {
	Suite   crypto.Suite
	Mode    crypto.BlockMode
	Padding padding.Scheme

	// Authenticate adds an HMAC-SHA256 tag.
	Authenticate bool

	// Iterations is the PBKDF2 count for both stages. Zero means
	// crypto.DefaultKDFIterations.
	Iterations int

	// PreferSHA512 is passed to both stages.
	PreferSHA512 bool
}

// Validate rejects out-of-range selections.
func (p Params) Validate() error {
	switch {
	case !p.Suite.Valid():
		return fmt.Errorf("%w: %d", crypto.ErrInvalidSuite, p.Suite)
	case !p.Mode.Valid():
		return fmt.Errorf("%w: %s", crypto.ErrUnsupportedCipher, p.Mode)
	case !p.Padding.Valid():
		return fmt.Errorf("%w: %s", padding.ErrInvalidScheme, p.Padding)
	}
	return nil
}

func (p Params) stage(alg crypto.Algorithm, key []byte) crypto.CipherParams {
	return crypto.CipherParams{
		Algorithm:    alg,
		Mode:         p.Mode,
		Padding:      p.Padding,
		Key:          key,
		Iterations:   p.Iterations,
		PreferSHA512: p.PreferSHA512,
	}
}

// Encrypt returns message encrypted under both keys, encoded in the
// private wire alphabet. The result does not carry the frame header.
func Encrypt(message string, primaryKey, secondaryKey []byte, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if len(primaryKey) == 0 || len(secondaryKey) == 0 {
		return "", crypto.ErrEmptyKey
	}

	inner, err := crypto.Encrypt([]byte(message), p.stage(p.Suite.Primary(), primaryKey))
	if err != nil {
		return "", fmt.Errorf("primary stage: %w", err)
	}

	outer, err := crypto.Encrypt([]byte(base64.StdEncoding.EncodeToString(inner)), p.stage(p.Suite.Secondary(), secondaryKey))
	if err != nil {
		return "", fmt.Errorf("secondary stage: %w", err)
	}

	if p.Authenticate {
		tag := kdf.HMACSHA256(primaryKey, outer)
		outer = append(tag, outer...)
	}

	return wire.Encode(outer), nil
}

// Decrypt reverses Encrypt with the same keys and parameters.
func Decrypt(body string, primaryKey, secondaryKey []byte, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if len(primaryKey) == 0 || len(secondaryKey) == 0 {
		return "", crypto.ErrEmptyKey
	}

	outer, err := wire.Decode(body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if p.Authenticate {
		if len(outer) < TagSize+crypto.SaltSize {
			return "", fmt.Errorf("%w: body of %d bytes is too short", ErrMalformed, len(outer))
		}
		tag, rest := outer[:TagSize], outer[TagSize:]
		if !hmac.Equal(tag, kdf.HMACSHA256(primaryKey, rest)) {
			return "", ErrAuthenticationFailed
		}
		outer = rest
	}

	if len(outer) < crypto.SaltSize {
		return "", fmt.Errorf("%w: body of %d bytes is too short", ErrMalformed, len(outer))
	}

	inner64, err := crypto.Decrypt(outer, p.stage(p.Suite.Secondary(), secondaryKey))
	if errors.Is(err, crypto.ErrInvalidCiphertext) {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: secondary stage: %w", ErrDecryptionFailed, err)
	}

	inner, err := base64.StdEncoding.DecodeString(string(inner64))
	if err != nil {
		return "", fmt.Errorf("%w: secondary stage produced invalid base64", ErrDecryptionFailed)
	}

	plain, err := crypto.Decrypt(inner, p.stage(p.Suite.Primary(), primaryKey))
	if err != nil {
		return "", fmt.Errorf("%w: primary stage: %w", ErrDecryptionFailed, err)
	}

	if !utf8.Valid(plain) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", ErrDecryptionFailed)
	}
	return string(plain), nil
}
