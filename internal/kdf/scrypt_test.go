package kdf

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"golang.org/x/crypto/scrypt"
)

func TestScrypt_RFC7914(t *testing.T) {
	key, err := Scrypt(context.Background(), nil, nil, ScryptParams{N: 16, R: 1, P: 1, KeyLen: 64}, nil)
	if err != nil {
		t.Fatalf("Scrypt() error = %v", err)
	}

	want := "77d6576238657b203b19ca42c18a0497f16b4844e3074ae8dfdffa3fede21442" +
		"fcd0069ded0948f8326a753a0fc81f17e8d3e0fb2e0d3628cf35e20c38d18906"
	if hex.EncodeToString(key) != want {
		t.Errorf("Scrypt() = %x, want %s", key, want)
	}
}

func TestScrypt_MatchesReference(t *testing.T) {
	tests := []ScryptParams{
		{N: 1024, R: 8, P: 1, KeyLen: 32},
		{N: 256, R: 16, P: 2, KeyLen: 256},
		{N: 64, R: 1, P: 3, KeyLen: 7},
	}

	password := []byte("correct horse")
	salt := []byte("battery staple")

	for _, p := range tests {
		got, err := Scrypt(context.Background(), password, salt, p, nil)
		if err != nil {
			t.Fatalf("Scrypt(%+v) error = %v", p, err)
		}
		want, err := scrypt.Key(password, salt, p.N, p.R, p.P, p.KeyLen)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Scrypt(%+v) differs from reference", p)
		}
	}
}

func TestScrypt_Progress(t *testing.T) {
	var calls []float64
	_, err := Scrypt(context.Background(), []byte("p"), []byte("s"), ScryptParams{N: 4096, R: 8, P: 1, KeyLen: 32},
		func(progress float64) bool {
			calls = append(calls, progress)
			return false
		})
	if err != nil {
		t.Fatalf("Scrypt() error = %v", err)
	}

	if len(calls) < 2 {
		t.Fatalf("progress called %d times, want several", len(calls))
	}
	for i := 1; i < len(calls); i++ {
		if calls[i] < calls[i-1] {
			t.Errorf("progress went backwards: %v then %v", calls[i-1], calls[i])
		}
	}
	if last := calls[len(calls)-1]; last != 1 {
		t.Errorf("final progress = %v, want 1", last)
	}
}

func TestScrypt_StopOnFirstTick(t *testing.T) {
	calls := 0
	key, err := Scrypt(context.Background(), []byte("p"), []byte("s"), ScryptParams{N: 4096, R: 8, P: 1, KeyLen: 32},
		func(float64) bool {
			calls++
			return true
		})

	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", err)
	}
	if key != nil {
		t.Error("cancelled derivation returned a key")
	}
	if calls != 1 {
		t.Errorf("progress called %d times after stop, want exactly 1", calls)
	}
}

func TestScrypt_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scrypt(ctx, []byte("p"), []byte("s"), ScryptParams{N: 4096, R: 8, P: 1, KeyLen: 32}, nil)
	if !errors.Is(err, ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want ErrCancelled wrapping context.Canceled", err)
	}
}

func TestScryptParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  ScryptParams
		wantErr bool
	}{
		{"valid", ScryptParams{N: 4096, R: 16, P: 2, KeyLen: 256}, false},
		{"N not power of two", ScryptParams{N: 3072, R: 8, P: 1, KeyLen: 32}, true},
		{"N one", ScryptParams{N: 1, R: 8, P: 1, KeyLen: 32}, true},
		{"zero r", ScryptParams{N: 16, R: 0, P: 1, KeyLen: 32}, true},
		{"zero p", ScryptParams{N: 16, R: 1, P: 0, KeyLen: 32}, true},
		{"rp too large", ScryptParams{N: 16, R: 1 << 15, P: 1 << 15, KeyLen: 32}, true},
		{"zero key length", ScryptParams{N: 16, R: 1, P: 1, KeyLen: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidParameters) {
				t.Errorf("error = %v, want ErrInvalidParameters", err)
			}
		})
	}
}

func TestScryptAsync(t *testing.T) {
	params := ScryptParams{N: 16, R: 1, P: 1, KeyLen: 64}
	res := <-ScryptAsync(context.Background(), nil, nil, params, nil)
	if res.Err != nil {
		t.Fatalf("ScryptAsync() error = %v", res.Err)
	}
	want, _ := Scrypt(context.Background(), nil, nil, params, nil)
	if !bytes.Equal(res.Key, want) {
		t.Error("async result differs from synchronous result")
	}
}

func BenchmarkScrypt(b *testing.B) {
	params := ScryptParams{N: 4096, R: 8, P: 1, KeyLen: 32}
	for i := 0; i < b.N; i++ {
		_, _ = Scrypt(context.Background(), []byte("password"), []byte("salt"), params, nil)
	}
}
