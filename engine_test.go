package chatseal

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/chatseal/chatseal/internal/wire"
)

var (
	pw1 = []byte("pw1")
	pw2 = []byte("pw2")
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(append([]Option{WithKDFIterations(10)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestNew_Defaults(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got := e.SuiteConfig()
	want := SuiteConfig{CipherIndex: 7, Mode: CBC, Padding: PKCS7, Authenticate: true}
	if got != want {
		t.Errorf("SuiteConfig() = %+v, want %+v", got, want)
	}
}

func TestEngine_HelloWorld(t *testing.T) {
	e, err := New(WithCipherIndex(7), WithAuthentication(true))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sealed, err := e.EncodeMessage("Hello World", pw1, pw2)
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}
	if !strings.HasPrefix(sealed, "⢷⢸⢹⢺") {
		t.Errorf("message %q does not start with the magic", sealed)
	}
	for _, r := range sealed {
		if r < 0x2800 || r > 0x28FF {
			t.Fatalf("message contains %U outside the Braille block", r)
		}
	}

	plain, err := e.DecodeMessage(sealed, pw1, pw2)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if plain != "Hello World" {
		t.Errorf("DecodeMessage() = %q, want %q", plain, "Hello World")
	}

	again, err := e.EncodeMessage("Hello World", pw1, pw2)
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}
	if again == sealed {
		t.Error("two encodings of the same message are identical")
	}
}

func TestEngine_RoundTripSettings(t *testing.T) {
	messages := []string{"", "a", "Hello, World!", "größer als ☃ and 日本語", strings.Repeat("long message ", 40)}

	for _, idx := range []int{0, 6, 7, 12, 18, 24} {
		for _, mode := range []BlockMode{CBC, CFB, OFB} {
			for _, pad := range []PaddingScheme{PKCS7, ANSIX923, ISO10126, ISO97971} {
				t.Run(fmt.Sprintf("%d/%s/%s", idx, mode, pad), func(t *testing.T) {
					e := newTestEngine(t, WithCipherIndex(idx), WithBlockMode(mode), WithPadding(pad))
					for _, msg := range messages {
						sealed, err := e.EncodeMessage(msg, pw1, pw2)
						if err != nil {
							t.Fatalf("EncodeMessage() error = %v", err)
						}
						got, err := e.DecodeMessage(sealed, pw1, pw2)
						if err != nil {
							t.Fatalf("DecodeMessage() error = %v", err)
						}
						if got != msg {
							t.Errorf("DecodeMessage() = %q, want %q", got, msg)
						}
					}
				})
			}
		}
	}
}

func TestEngine_DecodeUsesHeader(t *testing.T) {
	sender := newTestEngine(t, WithCipherIndex(24), WithBlockMode(OFB), WithPadding(ISO97971))
	receiver := newTestEngine(t)

	sealed, err := sender.EncodeMessage("header driven", pw1, pw2)
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}
	got, err := receiver.DecodeMessage(sealed, pw1, pw2)
	if err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if got != "header driven" {
		t.Errorf("DecodeMessage() = %q", got)
	}
}

func TestEngine_EncodeMessageWith(t *testing.T) {
	e := newTestEngine(t)
	s := SuiteConfig{CipherIndex: 3, Mode: CFB, Padding: ANSIX923, Authenticate: true}

	sealed, err := e.EncodeMessageWith("explicit", pw1, pw2, s)
	if err != nil {
		t.Fatalf("EncodeMessageWith() error = %v", err)
	}
	meta, _, err := wire.ParseMessage(sealed)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if int(meta.Suite) != 3 || meta.Mode != CFB || meta.Padding != ANSIX923 {
		t.Errorf("metadata = %+v", meta)
	}

	_, err = e.EncodeMessageWith("x", pw1, pw2, SuiteConfig{CipherIndex: 25})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("EncodeMessageWith(index 25) error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestEngine_RandomMetadataByte(t *testing.T) {
	e := newTestEngine(t, WithRandReader(bytes.NewReader([]byte{0x42})))

	sealed, err := e.EncodeMessage("random", pw1, pw2)
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}
	meta, _, err := wire.ParseMessage(sealed)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	if meta.Random != 0x42 {
		t.Errorf("Random = %#x, want 0x42", meta.Random)
	}

	// The reader is exhausted now.
	if _, err := e.EncodeMessage("again", pw1, pw2); err == nil {
		t.Error("EncodeMessage() with failing reader succeeded")
	}
}

func TestEngine_EmptyKeys(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.EncodeMessage("x", nil, pw2); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("EncodeMessage(nil key) error = %v", err)
	}
	if _, err := e.DecodeMessage("x", pw1, []byte{}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("DecodeMessage(empty key) error = %v", err)
	}
}

func TestEngine_EncodeInvalidUTF8(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.EncodeMessage("bad \xc3\x28 bytes", pw1, pw2)
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "plaintext" {
		t.Fatalf("EncodeMessage(invalid UTF-8) error = %v, want plaintext *ConfigError", err)
	}

	sealed, err := e.EncodeMessage("grüße 😀", pw1, pw2)
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}
	if got, err := e.DecodeMessage(sealed, pw1, pw2); err != nil || got != "grüße 😀" {
		t.Errorf("DecodeMessage() = %q, %v", got, err)
	}
}

// tamper replaces the rune at position i of the body with another
// character of the substitution alphabet.
func tamper(t *testing.T, sealed string, i int) string {
	t.Helper()
	a, _ := wire.Substitute("A", true)
	b, _ := wire.Substitute("B", true)

	runes := []rune(sealed)
	pos := 4 + wire.MetadataLen + i
	if pos >= len(runes) {
		t.Fatalf("message too short to tamper at %d", i)
	}
	if string(runes[pos]) == a {
		runes[pos] = []rune(b)[0]
	} else {
		runes[pos] = []rune(a)[0]
	}
	return string(runes)
}

func TestEngine_DecodeFailures(t *testing.T) {
	e := newTestEngine(t)
	sealed, err := e.EncodeMessage("attack at dawn", pw1, pw2)
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}

	tests := []struct {
		name    string
		message string
		primary []byte
		kind    ErrorKind
	}{
		{"no magic", strings.TrimPrefix(sealed, "⢷⢸⢹⢺"), pw1, KindMalformed},
		{"plain text", "hello", pw1, KindMalformed},
		{"header only", sealed[:len("⢷⢸⢹⢺")+3*wire.MetadataLen], pw1, KindMalformed},
		{"foreign character", sealed + "x", pw1, KindMalformed},
		{"tampered body", tamper(t, sealed, 10), pw1, KindAuthFailed},
		{"wrong primary key", sealed, []byte("wrong"), KindAuthFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.DecodeMessage(tt.message, tt.primary, pw2)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("DecodeMessage() error = %v, want *DecodeError", err)
			}
			if de.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", de.Kind, tt.kind, err)
			}
		})
	}
}

func TestEngine_WrongKeyWithoutAuthentication(t *testing.T) {
	e := newTestEngine(t, WithAuthentication(false))
	sealed, err := e.EncodeMessage("attack at dawn", pw1, pw2)
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}

	_, err = e.DecodeMessage(sealed, pw1, []byte("wrong"))
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("DecodeMessage(wrong key) error = %v, want ErrDecryptionFailed", err)
	}
}

func TestEngine_LogsWithoutKeys(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	e := newTestEngine(t, WithLogger(logger))

	primary := []byte("primary-secret")
	secondary := []byte("secondary-secret")
	sealed, err := e.EncodeMessage("logged", primary, secondary)
	if err != nil {
		t.Fatalf("EncodeMessage() error = %v", err)
	}
	if _, err := e.DecodeMessage(sealed, primary, secondary); err != nil {
		t.Fatalf("DecodeMessage() error = %v", err)
	}
	if _, err := e.DecodeMessage("garbage", primary, secondary); err == nil {
		t.Fatal("DecodeMessage(garbage) succeeded")
	}

	entries := hook.AllEntries()
	if len(entries) != 3 {
		t.Fatalf("got %d log entries, want 3", len(entries))
	}
	for _, entry := range entries {
		line, err := entry.String()
		if err != nil {
			t.Fatalf("entry.String() error = %v", err)
		}
		if strings.Contains(line, "secret") || strings.Contains(line, "logged") {
			t.Errorf("log entry leaks input: %s", line)
		}
	}
}

func TestIsMessage(t *testing.T) {
	if !IsMessage("⢷⢸⢹⢺⠋") {
		t.Error("IsMessage(framed) = false")
	}
	if IsMessage("⢻⢼⢽⢾⠋") {
		t.Error("IsMessage(key) = true")
	}
	if !IsPublicKey("⢻⢼⢽⢾⠋") {
		t.Error("IsPublicKey(key) = false")
	}
}

func BenchmarkEngine_EncodeMessage(b *testing.B) {
	e, err := New()
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		if _, err := e.EncodeMessage("Hello World", pw1, pw2); err != nil {
			b.Fatal(err)
		}
	}
}
