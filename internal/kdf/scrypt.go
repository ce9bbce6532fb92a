package kdf

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/salsa20/salsa"
)

// salsaCallsPerTick is the approximate number of Salsa20/8 invocations
// between two progress ticks.
const salsaCallsPerTick = 1000

// ProgressFunc receives the completed fraction of a derivation in [0, 1].
// Returning true aborts the derivation.
type ProgressFunc func(progress float64) (stop bool)

// ScryptParams are the scrypt cost parameters.
type ScryptParams struct {
	// N is the CPU/memory cost. It must be a power of two greater than one.
	N int
	// R is the block size factor.
	R int
	// P is the parallelization factor.
	P int
	// KeyLen is the number of output bytes.
	KeyLen int
}

// Validate checks the parameters against the scrypt limits.
func (p ScryptParams) Validate() error {
	if p.N <= 1 || p.N&(p.N-1) != 0 {
		return fmt.Errorf("%w: N=%d must be a power of two greater than 1", ErrInvalidParameters, p.N)
	}
	if p.R < 1 || p.P < 1 {
		return fmt.Errorf("%w: r=%d p=%d must be positive", ErrInvalidParameters, p.R, p.P)
	}
	if uint64(p.R)*uint64(p.P) >= 1<<30 || p.R > math.MaxInt/128/p.P || p.R > math.MaxInt/256 || p.N > math.MaxInt/128/p.R {
		return fmt.Errorf("%w: r=%d p=%d N=%d too large", ErrInvalidParameters, p.R, p.P, p.N)
	}
	if p.KeyLen < 1 {
		return fmt.Errorf("%w: key length %d", ErrInvalidParameters, p.KeyLen)
	}
	return nil
}

// Scrypt derives params.KeyLen bytes from password and salt.
//
// progress may be nil. When set, it is called from the calling goroutine
// after about every thousand Salsa20/8 invocations and once more with 1.0
// when the key is complete; the return value of that final call is
// ignored. The lookup table is released before Scrypt returns, including
// on cancellation.
func Scrypt(ctx context.Context, password, salt []byte, params ScryptParams, progress ProgressFunc) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	r, n, p := params.R, params.N, params.P
	blockLen := 128 * r

	b := pbkdf2.Key(password, salt, 1, p*blockLen, sha256.New)
	m := &mixer{
		r: r,
		n: n,
		x: make([]byte, blockLen),
		y: make([]byte, blockLen),
		v: make([]byte, n*blockLen),
	}
	defer m.release()

	stepsPerTick := salsaCallsPerTick / (2 * r)
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	total := float64(2 * n * p)
	done := 0

	tick := func() error {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		if progress != nil && progress(float64(done)/total) {
			return ErrCancelled
		}
		runtime.Gosched()
		return nil
	}

	for i := 0; i < p; i++ {
		chunk := b[i*blockLen : (i+1)*blockLen]
		copy(m.x, chunk)

		for j := 0; j < n; j++ {
			copy(m.v[j*blockLen:], m.x)
			m.blockMix()
			done++
			if done%stepsPerTick == 0 {
				if err := tick(); err != nil {
					return nil, err
				}
			}
		}

		for j := 0; j < n; j++ {
			k := m.integerify()
			xorBytes(m.x, m.v[k*blockLen:(k+1)*blockLen])
			m.blockMix()
			done++
			if done%stepsPerTick == 0 {
				if err := tick(); err != nil {
					return nil, err
				}
			}
		}

		copy(chunk, m.x)
	}

	key := pbkdf2.Key(password, b, 1, params.KeyLen, sha256.New)
	if progress != nil {
		progress(1)
	}
	return key, nil
}

// ScryptAsync runs Scrypt on a separate goroutine. progress is invoked
// from that goroutine. The returned channel receives exactly one Result
// and is then closed.
func ScryptAsync(ctx context.Context, password, salt []byte, params ScryptParams, progress ProgressFunc) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		key, err := Scrypt(ctx, password, salt, params, progress)
		out <- Result{Key: key, Err: err}
	}()
	return out
}

// mixer holds the working buffers of one scrypt computation.
type mixer struct {
	r, n int
	x    []byte // current 128*r byte block
	y    []byte // scratch for blockMix
	v    []byte // N-entry lookup table
}

// blockMix applies BlockMix-Salsa20/8 to m.x in place.
func (m *mixer) blockMix() {
	var t [64]byte
	copy(t[:], m.x[(2*m.r-1)*64:])

	for i := 0; i < 2*m.r; i++ {
		xorBytes(t[:], m.x[i*64:(i+1)*64])
		salsa.Core208(&t, &t)
		// Even outputs go to the first half, odd outputs to the second.
		dst := (i/2 + (i&1)*m.r) * 64
		copy(m.y[dst:dst+64], t[:])
	}
	copy(m.x, m.y)
}

// integerify returns the table index selected by the last 64-byte
// sub-block of m.x.
func (m *mixer) integerify() int {
	off := (2*m.r - 1) * 64
	return int(binary.LittleEndian.Uint64(m.x[off:]) & uint64(m.n-1))
}

// release zeroes the block buffers and drops the lookup table.
func (m *mixer) release() {
	clear(m.x)
	clear(m.y)
	m.v = nil
}

func xorBytes(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
