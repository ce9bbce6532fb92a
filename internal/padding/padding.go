// Package padding implements the reversible byte padding schemes applied
// to plaintext before block encryption.
//
// Four schemes are supported:
//
//   - PKCS7: every padding byte holds the padding length.
//   - ANSIX923: zero bytes followed by a final length byte.
//   - ISO10126: random bytes followed by a final length byte.
//   - ISO97971: ISO/IEC 9797-1 method 2, a 0x80 marker followed by zeros.
//
// Padding is always applied: data that is already a multiple of the block
// size receives one full block of padding. The three length-prefixed
// schemes trust the trailing length byte on removal and do not inspect the
// other padding bytes; only an impossible length (larger than the buffer)
// is rejected.
package padding

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Scheme identifies a padding scheme. The numeric values are part of the
// message metadata wire format.
type Scheme uint8

const (
	// PKCS7 fills every padding byte with the padding length.
	PKCS7 Scheme = iota
	// ANSIX923 fills with zeros and ends with the padding length.
	ANSIX923
	// ISO10126 fills with random bytes and ends with the padding length.
	ISO10126
	// ISO97971 writes 0x80 followed by zeros.
	ISO97971
)

// NumSchemes is the number of defined padding schemes.
const NumSchemes = 4

// iso97971Marker is the first padding byte of ISO/IEC 9797-1 method 2.
const iso97971Marker = 0x80

var (
	// ErrPadding is returned when padding cannot be removed from a buffer.
	ErrPadding = errors.New("invalid padding")

	// ErrInvalidScheme is returned for an unknown padding scheme.
	ErrInvalidScheme = errors.New("invalid padding scheme")

	// ErrInvalidBlockSize is returned when the block size is not a whole
	// number of bytes between 1 and 255.
	ErrInvalidBlockSize = errors.New("invalid block size")
)

// randReader is the source of ISO 10126 filler bytes. Nil means crypto/rand.
var randReader io.Reader

// String returns the short name used in configuration files.
func (s Scheme) String() string {
	switch s {
	case PKCS7:
		return "PKCS7"
	case ANSIX923:
		return "ANSIX923"
	case ISO10126:
		return "ISO10126"
	case ISO97971:
		return "ISO97971"
	default:
		return fmt.Sprintf("Scheme(%d)", uint8(s))
	}
}

// Valid reports whether s names a defined scheme.
func (s Scheme) Valid() bool {
	return s < NumSchemes
}

// ParseScheme parses a scheme name. Matching is case-insensitive and also
// accepts the four-letter tags used by older settings files
// (PKC7, ANS2, ISO1, ISO9).
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "PKCS7", "PKCS#7", "PKC7":
		return PKCS7, nil
	case "ANSIX923", "ANSI X9.23", "X923", "ANS2":
		return ANSIX923, nil
	case "ISO10126", "ISO1":
		return ISO10126, nil
	case "ISO97971", "ISO9797-1", "ISO9":
		return ISO97971, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidScheme, name)
}

func blockBytes(blockSizeBits int) (int, error) {
	if blockSizeBits <= 0 || blockSizeBits%8 != 0 || blockSizeBits/8 > 255 {
		return 0, fmt.Errorf("%w: %d bits", ErrInvalidBlockSize, blockSizeBits)
	}
	return blockSizeBits / 8, nil
}

// Length returns the number of padding bytes Pad appends to a buffer of
// dataLen bytes. The result is always in [1, blockSize].
func Length(dataLen, blockSize int) int {
	return blockSize - dataLen%blockSize
}

// Pad returns a copy of data padded to a multiple of blockSizeBits using
// the given scheme.
func Pad(data []byte, scheme Scheme, blockSizeBits int) ([]byte, error) {
	bs, err := blockBytes(blockSizeBits)
	if err != nil {
		return nil, err
	}
	if !scheme.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScheme, uint8(scheme))
	}

	n := Length(len(data), bs)
	out := make([]byte, len(data)+n)
	copy(out, data)
	pad := out[len(data):]

	switch scheme {
	case PKCS7:
		for i := range pad {
			pad[i] = byte(n)
		}
	case ANSIX923:
		pad[n-1] = byte(n)
	case ISO10126:
		r := randReader
		if r == nil {
			r = rand.Reader
		}
		if _, err := io.ReadFull(r, pad[:n-1]); err != nil {
			return nil, fmt.Errorf("read padding bytes: %w", err)
		}
		pad[n-1] = byte(n)
	case ISO97971:
		pad[0] = iso97971Marker
	}

	return out, nil
}

// Unpad removes padding added by Pad and returns a sub-slice of data.
func Unpad(data []byte, scheme Scheme, blockSizeBits int) ([]byte, error) {
	bs, err := blockBytes(blockSizeBits)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || len(data) < bs {
		return nil, fmt.Errorf("%w: input of %d bytes is shorter than one block", ErrPadding, len(data))
	}

	switch scheme {
	case PKCS7, ANSIX923, ISO10126:
		n := int(data[len(data)-1])
		if n > len(data) {
			return nil, fmt.Errorf("%w: length byte %d exceeds buffer of %d bytes", ErrPadding, n, len(data))
		}
		return data[:len(data)-n], nil
	case ISO97971:
		for i := len(data) - 1; i >= 0; i-- {
			if data[i] == 0 {
				continue
			}
			if data[i] != iso97971Marker {
				return nil, fmt.Errorf("%w: expected 0x80 marker, found 0x%02x", ErrPadding, data[i])
			}
			return data[:i], nil
		}
		return nil, fmt.Errorf("%w: no 0x80 marker", ErrPadding)
	}

	return nil, fmt.Errorf("%w: %d", ErrInvalidScheme, uint8(scheme))
}
