// Package upload implements the attachment encryption format.
//
// A random 16-byte seed is hashed with SHA-512; the digest is split into
// an AES-256 key (bytes 0..31), an IV (32..47) and a public identity
// (48..63) under which the ciphertext can be stored. The plaintext is
//
//	UTF-16BE(JSON {"mime", "name"}) || 0x0000 || file bytes
//
// sealed with AES-256-CCM and a 16-byte tag. The CCM length field L is
// the smallest of 2, 3 or 4 bytes that can express the payload length,
// and the nonce is the first 15-L bytes of the IV.
package upload

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"crypto/sha512"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pion/dtls/v2/pkg/crypto/ccm"
	"golang.org/x/text/encoding/unicode"
)

const (
	// SeedSize is the length of the random seed.
	SeedSize = 16
	// TagSize is the CCM authentication tag length.
	TagSize = 16
)

var (
	ErrInvalidSeed          = errors.New("invalid upload seed")
	ErrTooLarge             = errors.New("upload too large")
	ErrAuthenticationFailed = errors.New("upload authentication failed")
	ErrMalformedPayload     = errors.New("malformed upload payload")
)

// randReader is the seed source. Nil means crypto/rand.
var randReader io.Reader

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Metadata describes the uploaded file.
type Metadata struct {
	MIME string `json:"mime"`
	Name string `json:"name"`
}

// Keys is the material derived from a seed.
type Keys struct {
	Key      []byte
	IV       []byte
	Identity []byte
}

// DeriveKeys expands a seed into key, IV and identity.
func DeriveKeys(seed []byte) (Keys, error) {
	if len(seed) != SeedSize {
		return Keys{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSeed, len(seed), SeedSize)
	}
	h := sha512.Sum512(seed)
	return Keys{
		Key:      bytes.Clone(h[0:32]),
		IV:       bytes.Clone(h[32:48]),
		Identity: bytes.Clone(h[48:64]),
	}, nil
}

// Sealed is an encrypted upload. Seed stays with the sender and the
// recipients; Identity and Ciphertext can be stored publicly.
type Sealed struct {
	Seed       []byte
	Identity   []byte
	Ciphertext []byte
}

// Seal encrypts file and its metadata under a fresh seed.
func Seal(file []byte, meta Metadata) (*Sealed, error) {
	r := randReader
	if r == nil {
		r = rand.Reader
	}
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("failed to generate seed: %w", err)
	}
	return SealWithSeed(seed, file, meta)
}

// SealWithSeed is Seal with a caller-chosen seed.
func SealWithSeed(seed, file []byte, meta Metadata) (*Sealed, error) {
	keys, err := DeriveKeys(seed)
	if err != nil {
		return nil, err
	}

	header, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	header, err = utf16be.NewEncoder().Bytes(header)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	payload := make([]byte, 0, len(header)+2+len(file))
	payload = append(payload, header...)
	payload = append(payload, 0, 0)
	payload = append(payload, file...)

	aead, nonce, err := newCCM(keys, len(payload))
	if err != nil {
		return nil, err
	}

	return &Sealed{
		Seed:       bytes.Clone(seed),
		Identity:   keys.Identity,
		Ciphertext: aead.Seal(nil, nonce, payload, nil),
	}, nil
}

// Open decrypts an upload sealed under seed.
func Open(seed, ciphertext []byte) (Metadata, []byte, error) {
	keys, err := DeriveKeys(seed)
	if err != nil {
		return Metadata{}, nil, err
	}
	if len(ciphertext) < TagSize {
		return Metadata{}, nil, fmt.Errorf("%w: ciphertext of %d bytes", ErrMalformedPayload, len(ciphertext))
	}

	aead, nonce, err := newCCM(keys, len(ciphertext)-TagSize)
	if err != nil {
		return Metadata{}, nil, err
	}
	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Metadata{}, nil, ErrAuthenticationFailed
	}

	end := -1
	for i := 0; i+1 < len(payload); i += 2 {
		if payload[i] == 0 && payload[i+1] == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return Metadata{}, nil, fmt.Errorf("%w: no metadata terminator", ErrMalformedPayload)
	}

	header, err := utf16be.NewDecoder().Bytes(payload[:end])
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	var meta Metadata
	if err := json.Unmarshal(header, &meta); err != nil {
		return Metadata{}, nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return meta, payload[end+2:], nil
}

// lengthFieldSize returns the CCM L parameter for a payload length.
func lengthFieldSize(n int) (int, error) {
	switch {
	case n < 1<<16:
		return 2, nil
	case n < 1<<24:
		return 3, nil
	case uint64(n) < 1<<32:
		return 4, nil
	}
	return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
}

func newCCM(keys Keys, payloadLen int) (ccm.CCM, []byte, error) {
	l, err := lengthFieldSize(payloadLen)
	if err != nil {
		return nil, nil, err
	}

	block, err := aes.NewCipher(keys.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonceSize := 15 - l
	aead, err := ccm.NewCCM(block, TagSize, nonceSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create CCM: %w", err)
	}
	return aead, keys.IV[:nonceSize], nil
}
