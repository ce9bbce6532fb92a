package wire

import (
	"fmt"
	"strings"
)

const (
	// MessageMagic starts every encrypted message.
	MessageMagic = "⢷⢸⢹⢺"
	// KeyMagic starts every public key post.
	KeyMagic = "⢻⢼⢽⢾"
)

// IsMessage reports whether s carries the message magic.
func IsMessage(s string) bool { return strings.HasPrefix(s, MessageMagic) }

// IsKey reports whether s carries the public key magic.
func IsKey(s string) bool { return strings.HasPrefix(s, KeyMagic) }

// FrameMessage prefixes an encoded body with the magic and metadata.
func FrameMessage(m Metadata, body string) (string, error) {
	meta, err := EncodeMetadata(m)
	if err != nil {
		return "", err
	}
	return MessageMagic + meta + body, nil
}

// ParseMessage splits a framed message into its metadata and body. The
// body is returned still encoded.
func ParseMessage(s string) (Metadata, string, error) {
	rest, ok := strings.CutPrefix(s, MessageMagic)
	if !ok {
		return Metadata{}, "", fmt.Errorf("%w: missing message magic", ErrMalformed)
	}

	runes := 0
	split := -1
	for i := range rest {
		if runes == MetadataLen {
			split = i
			break
		}
		runes++
	}
	if split < 0 {
		return Metadata{}, "", fmt.Errorf("%w: message shorter than its header", ErrMalformed)
	}

	m, err := DecodeMetadata(rest[:split])
	if err != nil {
		return Metadata{}, "", err
	}
	return m, rest[split:], nil
}

// FrameKey encodes a public key blob and prefixes it with the key magic.
func FrameKey(blob []byte) string {
	return KeyMagic + Encode(blob)
}

// ParseKey returns the public key blob carried by a framed key post.
func ParseKey(s string) ([]byte, error) {
	rest, ok := strings.CutPrefix(s, KeyMagic)
	if !ok {
		return nil, fmt.Errorf("%w: missing key magic", ErrMalformed)
	}
	if rest == "" {
		return nil, fmt.Errorf("%w: empty key body", ErrMalformed)
	}
	blob, err := Decode(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return blob, nil
}
