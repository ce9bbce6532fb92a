package exchange

import (
	"fmt"
	"strings"
)

// Family is the key agreement family.
type Family uint8

const (
	DH Family = iota
	ECDH
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case DH:
		return "DH"
	case ECDH:
		return "ECDH"
	default:
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
}

// ParseFamily parses "dh" or "ecdh", case-insensitively.
func ParseFamily(name string) (Family, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DH":
		return DH, nil
	case "ECDH", "ECC":
		return ECDH, nil
	}
	return 0, fmt.Errorf("%w: family %q", ErrUnsupportedAlgorithm, name)
}

// Algorithm is the wire index of a group or curve.
type Algorithm uint8

// NumAlgorithms is the number of wire indices.
const NumAlgorithms = Algorithm(len(dhSizes) + len(ecdhSizes))

var (
	dhSizes   = [...]int{768, 1024, 1536, 2048, 3072, 4096, 6144, 8192}
	ecdhSizes = [...]int{224, 256, 384, 409, 521, 571}
)

// AlgorithmFor returns the index for a family and bit length.
func AlgorithmFor(f Family, bits int) (Algorithm, error) {
	var sizes []int
	var base Algorithm
	switch f {
	case DH:
		sizes = dhSizes[:]
	case ECDH:
		sizes, base = ecdhSizes[:], Algorithm(len(dhSizes))
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, f)
	}

	for i, b := range sizes {
		if b == bits {
			return base + Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s-%d", ErrUnsupportedAlgorithm, f, bits)
}

// Valid reports whether a is a defined wire index.
func (a Algorithm) Valid() bool { return a < NumAlgorithms }

// Family returns DH or ECDH.
func (a Algorithm) Family() Family {
	if int(a) < len(dhSizes) {
		return DH
	}
	return ECDH
}

// Bits returns the group or curve size.
func (a Algorithm) Bits() int {
	switch {
	case !a.Valid():
		return 0
	case a.Family() == DH:
		return dhSizes[a]
	default:
		return ecdhSizes[int(a)-len(dhSizes)]
	}
}

// Supported reports whether keys can be generated for a.
func (a Algorithm) Supported() bool {
	if !a.Valid() {
		return false
	}
	if a.Family() == DH {
		return true
	}
	_, ok := curves[a.Bits()]
	return ok
}

// String returns e.g. "DH-2048" or "ECDH-384".
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return fmt.Sprintf("%s-%d", a.Family(), a.Bits())
}
