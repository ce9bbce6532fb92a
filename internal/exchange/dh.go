package exchange

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

var two = big.NewInt(2)

type dhPrivate struct {
	g *group
	x *big.Int
}

// generateDH picks x uniformly in [2, p-2] and returns 2^x mod p.
func generateDH(bits int, r io.Reader) (privateKey, []byte, error) {
	g := modpGroup(bits)
	if g == nil {
		return nil, nil, fmt.Errorf("%w: DH-%d", ErrUnsupportedAlgorithm, bits)
	}

	limit := new(big.Int).Sub(g.p, big.NewInt(3))
	x, err := rand.Int(r, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate DH private value: %w", err)
	}
	x.Add(x, two)

	y := new(big.Int).Exp(two, x, g.p)
	return &dhPrivate{g: g, x: x}, y.FillBytes(make([]byte, g.size)), nil
}

func (k *dhPrivate) shared(peer []byte) ([]byte, error) {
	if err := checkDHPublic(k.g, peer); err != nil {
		return nil, err
	}
	y := new(big.Int).SetBytes(peer)
	s := new(big.Int).Exp(y, k.x, k.g.p)
	return s.FillBytes(make([]byte, k.g.size)), nil
}

func (k *dhPrivate) wipe() {
	words := k.x.Bits()
	clear(words)
	k.x.SetInt64(0)
}

// checkDHPublic rejects values outside (1, p-1).
func checkDHPublic(g *group, peer []byte) error {
	if len(peer) != g.size {
		return fmt.Errorf("%w: DH public value is %d bytes, want %d", ErrInvalidPublicKey, len(peer), g.size)
	}
	y := new(big.Int).SetBytes(peer)
	pMinus1 := new(big.Int).Sub(g.p, big.NewInt(1))
	if y.Cmp(big.NewInt(1)) <= 0 || y.Cmp(pMinus1) >= 0 {
		return fmt.Errorf("%w: DH public value out of range", ErrInvalidPublicKey)
	}
	return nil
}
