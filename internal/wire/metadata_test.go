package wire

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/chatseal/chatseal/internal/crypto"
	"github.com/chatseal/chatseal/internal/padding"
)

func TestMetadata_RoundTripAll(t *testing.T) {
	for c := 0; c < crypto.NumSuites; c++ {
		for m := 0; m < crypto.NumBlockModes; m++ {
			for p := 0; p < padding.NumSchemes; p++ {
				for r := 0; r < 256; r++ {
					want := Metadata{
						Suite:   crypto.Suite(c),
						Mode:    crypto.BlockMode(m),
						Padding: padding.Scheme(p),
						Random:  byte(r),
					}

					s, err := EncodeMetadata(want)
					if err != nil {
						t.Fatalf("EncodeMetadata(%+v) error = %v", want, err)
					}
					if n := utf8.RuneCountInString(s); n != MetadataLen {
						t.Fatalf("encoded metadata has %d characters, want %d", n, MetadataLen)
					}

					got, err := DecodeMetadata(s)
					if err != nil {
						t.Fatalf("DecodeMetadata() error = %v", err)
					}
					if got != want {
						t.Fatalf("DecodeMetadata() = %+v, want %+v", got, want)
					}
				}
			}
		}
	}
}

func TestEncodeMetadata_OutOfRange(t *testing.T) {
	tests := []Metadata{
		{Suite: 25},
		{Mode: 3},
		{Padding: 4},
	}
	for _, m := range tests {
		if _, err := EncodeMetadata(m); !errors.Is(err, ErrMalformed) {
			t.Errorf("EncodeMetadata(%+v) error = %v, want ErrMalformed", m, err)
		}
	}
}

func TestDecodeMetadata_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		word []byte
	}{
		{"suite", []byte{25, 0, 0, 0}},
		{"mode", []byte{0, 3, 0, 0}},
		{"padding", []byte{0, 0, 4, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMetadata(Encode(tt.word))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestDecodeMetadata_Malformed(t *testing.T) {
	inputs := []string{
		"",
		Encode([]byte{1, 2, 3}),       // 4 characters
		Encode([]byte{1, 2, 3, 4, 5}), // 8 characters, wrong word size
		"ABCDEFGH",
	}
	for _, in := range inputs {
		if _, err := DecodeMetadata(in); !errors.Is(err, ErrMalformed) {
			t.Errorf("DecodeMetadata(%q) error = %v, want ErrMalformed", in, err)
		}
	}
}
