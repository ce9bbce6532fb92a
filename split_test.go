package chatseal

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"empty", "", 10, []string{""}},
		{"fits", "hello", 5, []string{"hello"}},
		{"ascii", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"exact multiple", "abcdefgh", 4, []string{"abcd", "efgh"}},
		{"multibyte", "ääää", 5, []string{"ää", "ää"}},
		{"four byte runes", "😀😀😀", 7, []string{"😀", "😀", "😀"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitMessage(tt.text, tt.max)
			if err != nil {
				t.Fatalf("SplitMessage() error = %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("SplitMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitMessage_Invariants(t *testing.T) {
	text := strings.Repeat("mixed ☃ 日本 text 😀 ", 50)
	for max := 4; max < 40; max++ {
		chunks, err := SplitMessage(text, max)
		if err != nil {
			t.Fatalf("SplitMessage(%d) error = %v", max, err)
		}
		if strings.Join(chunks, "") != text {
			t.Fatalf("SplitMessage(%d) lost data", max)
		}
		for _, c := range chunks {
			if len(c) > max || len(c) == 0 || !utf8.ValidString(c) {
				t.Fatalf("SplitMessage(%d) chunk %q invalid", max, c)
			}
		}
	}
}

func TestSplitMessage_TooSmall(t *testing.T) {
	if _, err := SplitMessage("abc", 3); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("SplitMessage(max 3) error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestSplitMessage_InvalidUTF8(t *testing.T) {
	tests := []string{
		"a" + strings.Repeat("\x80", 10),
		strings.Repeat("\xbf", 3),
		"valid start \xff",
	}
	for _, text := range tests {
		done := make(chan error, 1)
		go func() {
			_, err := SplitMessage(text, 4)
			done <- err
		}()
		select {
		case err := <-done:
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("SplitMessage(%q) error = %v, want *ConfigError", text, err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("SplitMessage(%q) did not return", text)
		}
	}
}

func TestEngine_EncodeChunkedInvalidUTF8(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.EncodeChunked("ok\x80\x80\x80\x80\x80", pw1, pw2, 4); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("EncodeChunked() error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestEngine_EncodeChunked(t *testing.T) {
	e := newTestEngine(t)
	text := strings.Repeat("chunk ", 30)

	parts, err := e.EncodeChunked(text, pw1, pw2, 64)
	if err != nil {
		t.Fatalf("EncodeChunked() error = %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}

	var b strings.Builder
	for _, p := range parts {
		plain, err := e.DecodeMessage(p, pw1, pw2)
		if err != nil {
			t.Fatalf("DecodeMessage() error = %v", err)
		}
		b.WriteString(plain)
	}
	if b.String() != text {
		t.Errorf("reassembled text = %q, want %q", b.String(), text)
	}
}
