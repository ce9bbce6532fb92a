package chatseal

import (
	"bytes"
	"errors"
	"testing"
)

func TestUpload_RoundTrip(t *testing.T) {
	file := bytes.Repeat([]byte{0xAB}, 1000)
	meta := UploadMetadata{MIME: "image/png", Name: "cat.png"}

	sealed, err := SealUpload(file, meta)
	if err != nil {
		t.Fatalf("SealUpload() error = %v", err)
	}
	if len(sealed.Seed) != 16 || len(sealed.Identity) != 16 {
		t.Errorf("seed %d bytes, identity %d bytes", len(sealed.Seed), len(sealed.Identity))
	}

	gotMeta, gotFile, err := OpenUpload(sealed.Seed, sealed.Ciphertext)
	if err != nil {
		t.Fatalf("OpenUpload() error = %v", err)
	}
	if gotMeta != meta {
		t.Errorf("metadata = %+v, want %+v", gotMeta, meta)
	}
	if !bytes.Equal(gotFile, file) {
		t.Error("file contents differ")
	}
}

func TestOpenUpload_Errors(t *testing.T) {
	sealed, err := SealUpload([]byte("data"), UploadMetadata{MIME: "text/plain", Name: "a.txt"})
	if err != nil {
		t.Fatalf("SealUpload() error = %v", err)
	}

	wrongSeed := bytes.Clone(sealed.Seed)
	wrongSeed[0] ^= 1
	if _, _, err := OpenUpload(wrongSeed, sealed.Ciphertext); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("OpenUpload(wrong seed) error = %v, want ErrAuthenticationFailed", err)
	}

	ct := bytes.Clone(sealed.Ciphertext)
	ct[len(ct)-1] ^= 1
	if _, _, err := OpenUpload(sealed.Seed, ct); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("OpenUpload(modified) error = %v, want ErrAuthenticationFailed", err)
	}

	if _, _, err := OpenUpload([]byte("short"), sealed.Ciphertext); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("OpenUpload(short seed) error = %v, want ErrInvalidConfiguration", err)
	}
}
