package chatseal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/chatseal/chatseal/internal/crypto"
	"github.com/chatseal/chatseal/internal/dual"
	"github.com/chatseal/chatseal/internal/wire"
)

var errInvalidUTF8 = errors.New("text is not valid UTF-8")

// SuiteConfig selects how a single message is encrypted.
type SuiteConfig struct {
	CipherIndex  int
	Mode         BlockMode
	Padding      PaddingScheme
	Authenticate bool
}

// Engine encodes and decodes messages. It holds no key material and is
// safe for concurrent use.
type Engine struct {
	cfg engineConfig
	log logrus.FieldLogger
}

// New creates an engine. Invalid options return a *ConfigError.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := validateSuite(cfg.suiteConfig()); err != nil {
		return nil, err
	}
	if cfg.iterations < 1 {
		return nil, &ConfigError{Field: "kdf iterations", Err: fmt.Errorf("%d is not positive", cfg.iterations)}
	}
	if err := cfg.masterKeyParams.Validate(); err != nil {
		return nil, &ConfigError{Field: "master key parameters", Err: err}
	}

	log := cfg.logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if cfg.randReader == nil {
		cfg.randReader = rand.Reader
	}

	return &Engine{cfg: *cfg, log: log}, nil
}

func (c *engineConfig) suiteConfig() SuiteConfig {
	return SuiteConfig{
		CipherIndex:  c.cipherIndex,
		Mode:         c.mode,
		Padding:      c.padding,
		Authenticate: c.authenticate,
	}
}

func validateSuite(s SuiteConfig) error {
	if _, err := crypto.ValidateSuite(s.CipherIndex); err != nil {
		return &ConfigError{Field: "cipher index", Err: err}
	}
	if !s.Mode.Valid() {
		return &ConfigError{Field: "block mode", Err: fmt.Errorf("%w: %s", crypto.ErrUnsupportedCipher, s.Mode)}
	}
	if !s.Padding.Valid() {
		return &ConfigError{Field: "padding scheme", Err: fmt.Errorf("%s is not defined", s.Padding)}
	}
	return nil
}

func checkKeys(primaryKey, secondaryKey []byte) error {
	if len(primaryKey) == 0 || len(secondaryKey) == 0 {
		return &ConfigError{Field: "keys", Err: crypto.ErrEmptyKey}
	}
	return nil
}

func (e *Engine) params(s SuiteConfig) dual.Params {
	return dual.Params{
		Suite:        Suite(s.CipherIndex),
		Mode:         s.Mode,
		Padding:      s.Padding,
		Authenticate: s.Authenticate,
		Iterations:   e.cfg.iterations,
		PreferSHA512: e.cfg.preferSHA512,
	}
}

// SuiteConfig returns the engine's default encoding settings.
func (e *Engine) SuiteConfig() SuiteConfig {
	return e.cfg.suiteConfig()
}

// EncodeMessage encrypts plaintext with the engine's default settings and
// returns the framed wire string.
func (e *Engine) EncodeMessage(plaintext string, primaryKey, secondaryKey []byte) (string, error) {
	return e.EncodeMessageWith(plaintext, primaryKey, secondaryKey, e.cfg.suiteConfig())
}

// EncodeMessageWith encrypts plaintext with explicit settings.
func (e *Engine) EncodeMessageWith(plaintext string, primaryKey, secondaryKey []byte, s SuiteConfig) (string, error) {
	if err := validateSuite(s); err != nil {
		return "", err
	}
	if err := checkKeys(primaryKey, secondaryKey); err != nil {
		return "", err
	}
	if !utf8.ValidString(plaintext) {
		return "", &ConfigError{Field: "plaintext", Err: errInvalidUTF8}
	}

	var random [1]byte
	if _, err := io.ReadFull(e.cfg.randReader, random[:]); err != nil {
		return "", fmt.Errorf("failed to read random byte: %w", err)
	}

	p := e.params(s)
	body, err := dual.Encrypt(plaintext, primaryKey, secondaryKey, p)
	if err != nil {
		return "", wrapError("encode", err)
	}

	framed, err := wire.FrameMessage(wire.Metadata{
		Suite:   p.Suite,
		Mode:    p.Mode,
		Padding: p.Padding,
		Random:  random[0],
	}, body)
	if err != nil {
		return "", wrapError("encode", err)
	}

	e.log.WithFields(logrus.Fields{
		"suite":   p.Suite.String(),
		"mode":    p.Mode.String(),
		"padding": p.Padding.String(),
		"auth":    p.Authenticate,
		"length":  len(framed),
	}).Debug("message encoded")

	return framed, nil
}

// DecodeMessage parses and decrypts a framed message. The suite, mode and
// padding come from the message header; authentication follows the
// engine setting. Failures return a *DecodeError whose Kind tells
// malformed input, authentication failure and decryption failure apart.
func (e *Engine) DecodeMessage(message string, primaryKey, secondaryKey []byte) (string, error) {
	if err := checkKeys(primaryKey, secondaryKey); err != nil {
		return "", err
	}

	meta, body, err := wire.ParseMessage(message)
	if err != nil {
		e.log.WithField("kind", KindMalformed.String()).Debug("message rejected")
		return "", wrapDecodeError(err)
	}

	p := dual.Params{
		Suite:        meta.Suite,
		Mode:         meta.Mode,
		Padding:      meta.Padding,
		Authenticate: e.cfg.authenticate,
		Iterations:   e.cfg.iterations,
		PreferSHA512: e.cfg.preferSHA512,
	}

	plain, err := dual.Decrypt(body, primaryKey, secondaryKey, p)
	if err != nil {
		derr := wrapDecodeError(err)
		e.log.WithFields(logrus.Fields{
			"suite": meta.Suite.String(),
			"kind":  derr.(*DecodeError).Kind.String(),
		}).Debug("message rejected")
		return "", derr
	}

	e.log.WithField("suite", meta.Suite.String()).Debug("message decoded")
	return plain, nil
}

// IsMessage reports whether s starts with the message magic.
func IsMessage(s string) bool { return wire.IsMessage(s) }

// IsPublicKey reports whether s starts with the public key magic.
func IsPublicKey(s string) bool { return wire.IsKey(s) }
