package chatseal

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/chatseal/chatseal/internal/crypto"
)

const (
	defaultCipherIndex = 7 // Camellia, then AES
	defaultBlockMode   = CBC
	defaultPadding     = PKCS7
)

// defaultMasterKeyParams are the scrypt costs for the master key.
var defaultMasterKeyParams = ScryptParams{N: 16384, R: 8, P: 1, KeyLen: 32}

// engineConfig holds configuration for the engine.
type engineConfig struct {
	cipherIndex  int
	mode         BlockMode
	padding      PaddingScheme
	authenticate bool
	iterations   int
	preferSHA512 bool

	masterKeyParams ScryptParams

	logger     logrus.FieldLogger
	randReader io.Reader
}

func defaultConfig() *engineConfig {
	return &engineConfig{
		cipherIndex:     defaultCipherIndex,
		mode:            defaultBlockMode,
		padding:         defaultPadding,
		authenticate:    true,
		iterations:      crypto.DefaultKDFIterations,
		masterKeyParams: defaultMasterKeyParams,
	}
}

// Option configures the engine.
type Option func(*engineConfig)

// WithCipherIndex sets the cipher suite index (0-24) used for encoding.
// Index i encrypts with cipher i%5 first and cipher i/5 second, in the
// order Blowfish, AES, Camellia, IDEA, TripleDES.
// Default: 7
func WithCipherIndex(index int) Option {
	return func(c *engineConfig) {
		c.cipherIndex = index
	}
}

// WithBlockMode sets the chaining mode used for encoding.
// Default: CBC
func WithBlockMode(mode BlockMode) Option {
	return func(c *engineConfig) {
		c.mode = mode
	}
}

// WithPadding sets the padding scheme used for encoding.
// Default: PKCS7
func WithPadding(scheme PaddingScheme) Option {
	return func(c *engineConfig) {
		c.padding = scheme
	}
}

// WithAuthentication enables or disables the HMAC-SHA256 tag. Both sides
// of a conversation must use the same setting.
// Default: true
func WithAuthentication(enabled bool) Option {
	return func(c *engineConfig) {
		c.authenticate = enabled
	}
}

// WithKDFIterations sets the PBKDF2 iteration count of each cipher stage.
// Both sides must use the same value.
// Default: 1000
func WithKDFIterations(n int) Option {
	return func(c *engineConfig) {
		c.iterations = n
	}
}

// WithPreferSHA512 normalizes 512-bit keys (Blowfish) with SHA-512
// instead of Whirlpool.
func WithPreferSHA512(enabled bool) Option {
	return func(c *engineConfig) {
		c.preferSHA512 = enabled
	}
}

// WithMasterKeyParams sets the scrypt costs used by DeriveMasterKey.
// Default: N=16384, r=8, p=1, 32-byte key
func WithMasterKeyParams(p ScryptParams) Option {
	return func(c *engineConfig) {
		c.masterKeyParams = p
	}
}

// WithLogger sets the logger. Key material is never logged.
// Default: output discarded
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithRandReader sets the source of the random metadata byte.
// Default: crypto/rand
func WithRandReader(r io.Reader) Option {
	return func(c *engineConfig) {
		c.randReader = r
	}
}
