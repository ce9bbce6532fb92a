package wire

import (
	"fmt"
	"unicode/utf8"

	"github.com/chatseal/chatseal/internal/crypto"
	"github.com/chatseal/chatseal/internal/padding"
)

// MetadataLen is the length of encoded metadata in characters.
const MetadataLen = 8

// Metadata describes how a message body was produced.
type Metadata struct {
	Suite   crypto.Suite
	Mode    crypto.BlockMode
	Padding padding.Scheme
	// Random is a filler byte that varies the encoded header.
	Random byte
}

// Validate checks every field against its range.
func (m Metadata) Validate() error {
	switch {
	case !m.Suite.Valid():
		return fmt.Errorf("%w: cipher suite %d", ErrMalformed, m.Suite)
	case !m.Mode.Valid():
		return fmt.Errorf("%w: block mode %d", ErrMalformed, m.Mode)
	case !m.Padding.Valid():
		return fmt.Errorf("%w: padding scheme %d", ErrMalformed, m.Padding)
	}
	return nil
}

// Bytes returns the 4-byte metadata word.
func (m Metadata) Bytes() [4]byte {
	return [4]byte{byte(m.Suite), byte(m.Mode), byte(m.Padding), m.Random}
}

// EncodeMetadata returns the 8-character private-alphabet form of m.
func EncodeMetadata(m Metadata) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	word := m.Bytes()
	return Encode(word[:]), nil
}

// DecodeMetadata parses the output of EncodeMetadata.
func DecodeMetadata(s string) (Metadata, error) {
	if utf8.RuneCountInString(s) != MetadataLen {
		return Metadata{}, fmt.Errorf("%w: metadata must be %d characters", ErrMalformed, MetadataLen)
	}

	b64, err := Substitute(s, false)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	word, err := strictEncoding.DecodeString(b64)
	if err != nil || len(word) != 4 {
		return Metadata{}, fmt.Errorf("%w: metadata is not a 4-byte word", ErrMalformed)
	}

	m := Metadata{
		Suite:   crypto.Suite(word[0]),
		Mode:    crypto.BlockMode(word[1]),
		Padding: padding.Scheme(word[2]),
		Random:  word[3],
	}
	if err := m.Validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}
