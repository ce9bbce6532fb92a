package kdf

import (
	"context"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Result carries the outcome of an asynchronous derivation.
type Result struct {
	Key []byte
	Err error
}

// PBKDF2 derives keyLen bytes from password and salt.
func PBKDF2(password, salt []byte, alg HashAlgorithm, keyLen, iterations int) ([]byte, error) {
	newHash := alg.New()
	if newHash == nil {
		return nil, fmt.Errorf("%w: unknown hash %d", ErrInvalidParameters, uint8(alg))
	}
	if keyLen < 1 {
		return nil, fmt.Errorf("%w: key length %d", ErrInvalidParameters, keyLen)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iteration count %d", ErrInvalidParameters, iterations)
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, newHash), nil
}

// PBKDF2Async runs PBKDF2 on a separate goroutine. The returned channel
// receives exactly one Result and is then closed. If ctx is done first the
// Result carries ErrCancelled. The PBKDF2 computation itself is not
// interrupted: the worker runs to completion and its key is discarded.
func PBKDF2Async(ctx context.Context, password, salt []byte, alg HashAlgorithm, keyLen, iterations int) <-chan Result {
	out := make(chan Result, 1)
	done := make(chan Result, 1)

	go func() {
		key, err := PBKDF2(password, salt, alg, keyLen, iterations)
		done <- Result{Key: key, Err: err}
	}()

	go func() {
		defer close(out)
		select {
		case r := <-done:
			out <- r
		case <-ctx.Done():
			out <- Result{Err: fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())}
		}
	}()

	return out
}
