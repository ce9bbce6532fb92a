package exchange

import (
	"math/big"
	"sync"
)

// MODP primes have the form
//
//	p = 2^n - 2^(n-64) - 1 + 2^64 * (floor(2^(n-130) * pi) + k)
//
// with the per-size offsets k below.
var modpOffsets = map[int]int64{
	768:  149686,
	1024: 129093,
	1536: 741804,
	2048: 124476,
	3072: 1690314,
	4096: 240904,
	6144: 929484,
	8192: 4743158,
}

// piGuardBits absorbs the truncation error of the arctangent series.
const piGuardBits = 64

// piFixed returns pi scaled by 2^(8062+piGuardBits), enough for every group.
var piFixed = sync.OnceValue(func() *big.Int {
	prec := uint(8192 - 130 + piGuardBits)
	pi := new(big.Int).Mul(big.NewInt(16), arctanInv(5, prec))
	return pi.Sub(pi, new(big.Int).Mul(big.NewInt(4), arctanInv(239, prec)))
})

// arctanInv returns arctan(1/x) * 2^prec using the alternating series.
func arctanInv(x int64, prec uint) *big.Int {
	one := new(big.Int).Lsh(big.NewInt(1), prec)
	bx := big.NewInt(x)
	x2 := big.NewInt(x * x)

	term := new(big.Int).Quo(one, bx)
	sum := new(big.Int).Set(term)
	part := new(big.Int)
	for k := int64(1); term.Sign() != 0; k++ {
		term.Quo(term, x2)
		part.Quo(term, big.NewInt(2*k+1))
		if k%2 == 1 {
			sum.Sub(sum, part)
		} else {
			sum.Add(sum, part)
		}
	}
	return sum
}

type group struct {
	p    *big.Int
	size int // byte length of p
}

var (
	groupsMu sync.Mutex
	groups   = make(map[int]*group)
)

// modpGroup returns the MODP group of the given bit length.
func modpGroup(bits int) *group {
	groupsMu.Lock()
	defer groupsMu.Unlock()

	if g, ok := groups[bits]; ok {
		return g
	}
	k, ok := modpOffsets[bits]
	if !ok {
		return nil
	}

	pi := piFixed()
	top := uint(8192 - 130 + piGuardBits)
	floorPi := new(big.Int).Rsh(pi, top-uint(bits-130))

	n := uint(bits)
	p := new(big.Int).Lsh(big.NewInt(1), n)
	p.Sub(p, new(big.Int).Lsh(big.NewInt(1), n-64))
	p.Sub(p, big.NewInt(1))
	floorPi.Add(floorPi, big.NewInt(k))
	p.Add(p, floorPi.Lsh(floorPi, 64))

	g := &group{p: p, size: (bits + 7) / 8}
	groups[bits] = g
	return g
}
