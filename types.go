package chatseal

import (
	"github.com/chatseal/chatseal/internal/crypto"
	"github.com/chatseal/chatseal/internal/exchange"
	"github.com/chatseal/chatseal/internal/kdf"
	"github.com/chatseal/chatseal/internal/padding"
)

// Algorithm is a block cipher.
type Algorithm = crypto.Algorithm

// Block ciphers, in cipher suite order.
const (
	Blowfish  = crypto.Blowfish
	AES       = crypto.AES
	Camellia  = crypto.Camellia
	IDEA      = crypto.IDEA
	TripleDES = crypto.TripleDES
)

// Suite is a cipher suite index.
type Suite = crypto.Suite

// NumSuites is the number of cipher suite indices.
const NumSuites = crypto.NumSuites

// BlockMode is a chaining mode.
type BlockMode = crypto.BlockMode

// Block modes.
const (
	CBC = crypto.CBC
	CFB = crypto.CFB
	OFB = crypto.OFB
)

// PaddingScheme is a padding scheme.
type PaddingScheme = padding.Scheme

// Padding schemes.
const (
	PKCS7    = padding.PKCS7
	ANSIX923 = padding.ANSIX923
	ISO10126 = padding.ISO10126
	ISO97971 = padding.ISO97971
)

// ExchangeFamily is a key agreement family.
type ExchangeFamily = exchange.Family

// Key agreement families.
const (
	DH   = exchange.DH
	ECDH = exchange.ECDH
)

// ExchangeAlgorithm is the wire index of a group or curve.
type ExchangeAlgorithm = exchange.Algorithm

// PasswordPair holds the two passwords of a channel.
type PasswordPair = exchange.PasswordPair

// SharedSecret is the result of a completed key exchange.
type SharedSecret = exchange.SharedSecret

// ProgressFunc receives progress in [0, 1] and returns true to cancel.
type ProgressFunc = kdf.ProgressFunc

// ScryptParams are scrypt cost parameters.
type ScryptParams = kdf.ScryptParams

// ParseAlgorithm parses a block cipher name.
func ParseAlgorithm(name string) (Algorithm, error) { return crypto.ParseAlgorithm(name) }

// ParseBlockMode parses "CBC", "CFB" or "OFB".
func ParseBlockMode(name string) (BlockMode, error) { return crypto.ParseBlockMode(name) }

// ParsePaddingScheme parses a padding scheme name.
func ParsePaddingScheme(name string) (PaddingScheme, error) { return padding.ParseScheme(name) }

// ParseExchangeFamily parses "DH" or "ECDH".
func ParseExchangeFamily(name string) (ExchangeFamily, error) { return exchange.ParseFamily(name) }

// NewSuite returns the suite index that encrypts with primary first and
// secondary second.
func NewSuite(primary, secondary Algorithm) (Suite, error) {
	return crypto.NewSuite(primary, secondary)
}
