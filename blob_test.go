package chatseal

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestBlob_RoundTrip(t *testing.T) {
	key := []byte("master key")
	data := []byte(`{"channels":{}}`)

	blob, err := EncryptBlob(data, key)
	if err != nil {
		t.Fatalf("EncryptBlob() error = %v", err)
	}
	got, err := DecryptBlob(blob, key)
	if err != nil {
		t.Fatalf("DecryptBlob() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("DecryptBlob() = %q, want %q", got, data)
	}
}

func TestDecryptBlob_Failures(t *testing.T) {
	key := []byte("master key")
	blob, err := EncryptBlob([]byte("secret"), key)
	if err != nil {
		t.Fatalf("EncryptBlob() error = %v", err)
	}

	flipped := []byte(blob)
	if flipped[5] == 'A' {
		flipped[5] = 'B'
	} else {
		flipped[5] = 'A'
	}

	tests := []struct {
		name string
		blob string
		key  []byte
		kind ErrorKind
	}{
		{"wrong key", blob, []byte("other key"), KindAuthFailed},
		{"modified", string(flipped), key, KindAuthFailed},
		{"not base64", "!!!", key, KindMalformed},
		{"too short", "AAAA", key, KindMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecryptBlob(tt.blob, tt.key)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("DecryptBlob() error = %v, want *DecodeError", err)
			}
			if de.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", de.Kind, tt.kind, err)
			}
		})
	}

	if _, err := DecryptBlob(blob, nil); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("DecryptBlob(nil key) error = %v", err)
	}
	if _, err := EncryptBlob([]byte("x"), nil); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("EncryptBlob(nil key) error = %v", err)
	}
}

func TestEngine_DeriveMasterKey(t *testing.T) {
	e := newTestEngine(t, WithMasterKeyParams(ScryptParams{N: 64, R: 2, P: 1, KeyLen: 32}))

	k1, err := e.DeriveMasterKey(context.Background(), []byte("hunter2"), nil)
	if err != nil {
		t.Fatalf("DeriveMasterKey() error = %v", err)
	}
	if len(k1) != 32 {
		t.Errorf("len(key) = %d, want 32", len(k1))
	}
	k2, err := e.DeriveMasterKey(context.Background(), []byte("hunter2"), nil)
	if err != nil {
		t.Fatalf("DeriveMasterKey() error = %v", err)
	}
	if !bytes.Equal(k1, k2) {
		t.Error("DeriveMasterKey() is not deterministic")
	}
	k3, err := e.DeriveMasterKey(context.Background(), []byte("hunter3"), nil)
	if err != nil {
		t.Fatalf("DeriveMasterKey() error = %v", err)
	}
	if bytes.Equal(k1, k3) {
		t.Error("different passwords gave the same key")
	}

	if _, err := e.DeriveMasterKey(context.Background(), nil, nil); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("DeriveMasterKey(empty) error = %v", err)
	}
}

func TestDeriveMasterKey_Cancel(t *testing.T) {
	stop := func(float64) bool { return true }
	_, err := DeriveMasterKey(context.Background(), []byte("hunter2"), stop)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("DeriveMasterKey() error = %v, want ErrCancelled", err)
	}
	var ce *CancelledError
	if !errors.As(err, &ce) {
		t.Errorf("DeriveMasterKey() error = %T, want *CancelledError", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = DeriveMasterKey(ctx, []byte("hunter2"), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("DeriveMasterKey(cancelled ctx) error = %v, want context.Canceled", err)
	}
}
