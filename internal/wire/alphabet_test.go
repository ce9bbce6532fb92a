package wire

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAlphabet_Shape(t *testing.T) {
	private := []rune(privateAlphabet)
	if len(private) != 65 {
		t.Fatalf("private alphabet has %d characters, want 65", len(private))
	}

	seen := make(map[rune]bool)
	for _, r := range private {
		if r < 0x2800 || r > 0x287f {
			t.Errorf("%U outside the Braille range", r)
		}
		if seen[r] {
			t.Errorf("%U appears twice", r)
		}
		seen[r] = true
	}

	for _, r := range MessageMagic + KeyMagic {
		if seen[r] {
			t.Errorf("magic character %U is part of the substitution set", r)
		}
	}
}

func TestSubstitute_Bijective(t *testing.T) {
	inputs := []string{"", base64Alphabet, "SGVsbG8sIFdvcmxkIQ=="}
	for i := 0; i < 50; i++ {
		buf := make([]byte, i*7)
		_, _ = rand.Read(buf)
		inputs = append(inputs, base64.StdEncoding.EncodeToString(buf))
	}

	for _, in := range inputs {
		private, err := Substitute(in, true)
		if err != nil {
			t.Fatalf("Substitute(%q, true) error = %v", in, err)
		}
		if utf8.RuneCountInString(private) != len(in) {
			t.Errorf("substitution changed the character count")
		}
		back, err := Substitute(private, false)
		if err != nil {
			t.Fatalf("Substitute(private, false) error = %v", err)
		}
		if back != in {
			t.Errorf("round trip = %q, want %q", back, in)
		}
	}
}

func TestSubstitute_RejectsForeignCharacters(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		toPrivate bool
	}{
		{"space to private", "QUJD RA==", true},
		{"url alphabet to private", "ab-_", true},
		{"braille to private", "⠋", true},
		{"ascii to public", "A", false},
		{"magic to public", MessageMagic, false},
		{"mixed to public", "⠋⠰x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Substitute(tt.in, tt.toPrivate)
			if !errors.Is(err, ErrInvalidCharacter) {
				t.Errorf("error = %v, want ErrInvalidCharacter", err)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	data := []byte{0x00, 0xff, 0x10, 0x80, 0x7f}
	s := Encode(data)
	if strings.ContainsAny(s, base64Alphabet) {
		t.Errorf("Encode() leaked base64 characters: %q", s)
	}

	got, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Decode() = %x, want %x", got, data)
	}
}

func TestDecode_BadBase64(t *testing.T) {
	// "A" alone is a valid symbol but not valid base64.
	s, _ := Substitute("A", true)
	if _, err := Decode(s); !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}

func TestDecode_RejectsNonCanonical(t *testing.T) {
	// "QR==" carries non-zero trailing bits; "QQ==" is the canonical form.
	s, _ := Substitute("QR==", true)
	if _, err := Decode(s); !errors.Is(err, ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}
