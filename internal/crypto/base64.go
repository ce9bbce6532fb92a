package crypto

import (
	"encoding/base64"
	"strings"
)

// ToBase64 encodes bytes to standard base64 with padding.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes base64 leniently: surrounding whitespace is
// ignored and both the standard and URL-safe alphabets are accepted, with
// or without padding. Use it for values a user may have copied by hand.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	if data, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return data, nil
	}

	if data, err := base64.URLEncoding.DecodeString(s); err == nil {
		return data, nil
	}

	if data, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return data, nil
	}

	// Report the error from the canonical encoding.
	return nil, err
}
