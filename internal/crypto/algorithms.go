package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"fmt"
	"strings"

	"github.com/dgryski/go-camellia"
	"github.com/dgryski/go-idea"
	"golang.org/x/crypto/blowfish"
)

// Algorithm identifies one of the five block ciphers. The order is fixed:
// it defines how a cipher suite index decomposes.
type Algorithm uint8

const (
	Blowfish Algorithm = iota
	AES
	Camellia
	IDEA
	TripleDES
)

// NumAlgorithms is the number of block ciphers.
const NumAlgorithms = 5

type algorithmInfo struct {
	name      string
	keyBits   int
	blockBits int
	newCipher func(key []byte) (cipher.Block, error)
}

var algorithms = [NumAlgorithms]algorithmInfo{
	Blowfish:  {"Blowfish", 512, 64, newBlowfish},
	AES:       {"AES", 256, 128, aes.NewCipher},
	Camellia:  {"Camellia", 256, 128, camellia.New},
	IDEA:      {"IDEA", 128, 64, idea.NewCipher},
	TripleDES: {"TripleDES", 192, 64, des.NewTripleDESCipher},
}

// newBlowfish keys Blowfish with the leading 448 bits of a 512-bit key,
// the longest key the primitive accepts.
func newBlowfish(key []byte) (cipher.Block, error) {
	if len(key) > blowfishMaxKey {
		key = key[:blowfishMaxKey]
	}
	return blowfish.NewCipher(key)
}

// Valid reports whether a names a defined cipher.
func (a Algorithm) Valid() bool { return a < NumAlgorithms }

// String returns the cipher name.
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return algorithms[a].name
}

// KeyBits returns the derived key size in bits.
func (a Algorithm) KeyBits() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].keyBits
}

// BlockBits returns the cipher block size in bits.
func (a Algorithm) BlockBits() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].blockBits
}

// ParseAlgorithm parses a cipher name, case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch n {
	case "3DES", "DES3", "TRIPLE-DES":
		return TripleDES, nil
	}
	for i, info := range algorithms {
		if strings.ToUpper(info.name) == n {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCipher, name)
}

// BlockMode is the chaining mode applied to both stages of a message.
type BlockMode uint8

const (
	CBC BlockMode = iota
	CFB
	OFB
)

// NumBlockModes is the number of chaining modes.
const NumBlockModes = 3

// Valid reports whether m names a defined mode.
func (m BlockMode) Valid() bool { return m < NumBlockModes }

// String returns the mode name.
func (m BlockMode) String() string {
	switch m {
	case CBC:
		return "CBC"
	case CFB:
		return "CFB"
	case OFB:
		return "OFB"
	default:
		return fmt.Sprintf("BlockMode(%d)", uint8(m))
	}
}

// ParseBlockMode parses a mode name, case-insensitively.
func ParseBlockMode(name string) (BlockMode, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CBC":
		return CBC, nil
	case "CFB":
		return CFB, nil
	case "OFB":
		return OFB, nil
	}
	return 0, fmt.Errorf("%w: mode %q", ErrUnsupportedCipher, name)
}

// Suite is a cipher suite index in 0..24 selecting a primary and a
// secondary cipher.
type Suite uint8

// NumSuites is the number of cipher suite indices.
const NumSuites = NumAlgorithms * NumAlgorithms

// NewSuite returns the index that selects primary then secondary.
func NewSuite(primary, secondary Algorithm) (Suite, error) {
	if !primary.Valid() || !secondary.Valid() {
		return 0, fmt.Errorf("%w: %s/%s", ErrUnsupportedCipher, primary, secondary)
	}
	return Suite(uint8(secondary)*NumAlgorithms + uint8(primary)), nil
}

// Valid reports whether s is in range.
func (s Suite) Valid() bool { return s < NumSuites }

// Primary returns the cipher applied first on encryption.
func (s Suite) Primary() Algorithm { return Algorithm(s % NumAlgorithms) }

// Secondary returns the cipher applied second on encryption.
func (s Suite) Secondary() Algorithm { return Algorithm(s / NumAlgorithms) }

// String returns "primary+secondary".
func (s Suite) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suite(%d)", uint8(s))
	}
	return s.Primary().String() + "+" + s.Secondary().String()
}

// ValidateSuite checks a raw index before it is used.
func ValidateSuite(index int) (Suite, error) {
	if index < 0 || index >= NumSuites {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSuite, index)
	}
	return Suite(index), nil
}
