package exchange

import (
	"bytes"
	"context"
	"encoding/hex"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/chatseal/chatseal/internal/kdf"
)

// Scrypt costs for the two final passwords. N is 4096 rather than 3072
// because scrypt requires a power of two.
var (
	PrimaryScrypt   = kdf.ScryptParams{N: 4096, R: 16, P: 2, KeyLen: 256}
	SecondaryScrypt = kdf.ScryptParams{N: 4096, R: 8, P: 1, KeyLen: 256}
)

// PasswordPair holds the two channel passwords, hex encoded.
type PasswordPair struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// OrderSalts returns the salt that ranks higher as primary. A longer
// salt ranks higher; equal lengths compare as big-endian integers.
func OrderSalts(a, b []byte) (primary, secondary []byte, err error) {
	switch {
	case len(a) > len(b):
		return a, b, nil
	case len(b) > len(a):
		return b, a, nil
	}

	// Equal lengths: byte order matches comparing 4-byte big-endian words.
	switch bytes.Compare(a, b) {
	case 1:
		return a, b, nil
	case -1:
		return b, a, nil
	}
	return nil, nil, ErrSaltCollision
}

// DeriveFinalPasswords stretches a shared secret and both salts into the
// password pair. The two scrypt runs proceed concurrently; progress, if
// non-nil, receives their average and may return true to cancel both.
func DeriveFinalPasswords(ctx context.Context, secretHex string, localSalt, peerSalt []byte, progress kdf.ProgressFunc) (PasswordPair, error) {
	secret, err := hex.DecodeString(secretHex)
	if err != nil || len(secret) == 0 {
		return PasswordPair{}, ErrInvalidSecret
	}

	primarySalt, secondarySalt, err := OrderSalts(localSalt, peerSalt)
	if err != nil {
		return PasswordPair{}, err
	}

	primaryHash := kdf.SHA512(primarySalt)
	secondaryHash := kdf.Whirlpool(secondarySalt)

	primaryInput := concat(secret, secondaryHash)
	secondaryInput := concat(primarySalt, secret, secondarySalt)

	var (
		mu      sync.Mutex
		parts   [2]float64
		stopped bool
	)
	track := func(i int) kdf.ProgressFunc {
		return func(p float64) bool {
			mu.Lock()
			defer mu.Unlock()
			if stopped {
				return true
			}
			parts[i] = p
			if progress != nil && progress((parts[0]+parts[1])/2) {
				stopped = true
			}
			return stopped
		}
	}

	var primaryKey, secondaryKey []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		primaryKey, err = kdf.Scrypt(gctx, primaryInput, primaryHash, PrimaryScrypt, track(0))
		return err
	})
	g.Go(func() error {
		var err error
		secondaryKey, err = kdf.Scrypt(gctx, secondaryInput, secondaryHash, SecondaryScrypt, track(1))
		return err
	})
	if err := g.Wait(); err != nil {
		return PasswordPair{}, err
	}

	return PasswordPair{
		Primary:   hex.EncodeToString(primaryKey),
		Secondary: hex.EncodeToString(secondaryKey),
	}, nil
}

func concat(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
