package kdf

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/jzelinskie/whirlpool"
)

// HashAlgorithm selects the digest used by PBKDF2 and the HMAC helpers.
type HashAlgorithm uint8

const (
	HashSHA1 HashAlgorithm = iota
	HashSHA256
	HashSHA512
	HashWhirlpool
)

// String returns the algorithm name.
func (h HashAlgorithm) String() string {
	switch h {
	case HashSHA1:
		return "SHA-1"
	case HashSHA256:
		return "SHA-256"
	case HashSHA512:
		return "SHA-512"
	case HashWhirlpool:
		return "Whirlpool"
	default:
		return fmt.Sprintf("HashAlgorithm(%d)", uint8(h))
	}
}

// New returns the hash constructor for h, or nil if h is unknown.
func (h HashAlgorithm) New() func() hash.Hash {
	switch h {
	case HashSHA1:
		return sha1.New
	case HashSHA256:
		return sha256.New
	case HashSHA512:
		return sha512.New
	case HashWhirlpool:
		return whirlpool.New
	default:
		return nil
	}
}

func sum(newHash func() hash.Hash, data []byte) []byte {
	h := newHash()
	h.Write(data)
	return h.Sum(nil)
}

func mac(newHash func() hash.Hash, secret, data []byte) []byte {
	m := hmac.New(newHash, secret)
	m.Write(data)
	return m.Sum(nil)
}

// SHA1 returns the 20-byte SHA-1 digest of data.
func SHA1(data []byte) []byte { return sum(sha1.New, data) }

// SHA256 returns the 32-byte SHA-256 digest of data.
func SHA256(data []byte) []byte { return sum(sha256.New, data) }

// SHA512 returns the 64-byte SHA-512 digest of data.
func SHA512(data []byte) []byte { return sum(sha512.New, data) }

// Whirlpool returns the 64-byte Whirlpool digest of data.
func Whirlpool(data []byte) []byte { return sum(whirlpool.New, data) }

// HMACSHA1 returns HMAC-SHA-1(secret, data).
func HMACSHA1(secret, data []byte) []byte { return mac(sha1.New, secret, data) }

// HMACSHA256 returns HMAC-SHA-256(secret, data).
func HMACSHA256(secret, data []byte) []byte { return mac(sha256.New, secret, data) }

// HMACSHA512 returns HMAC-SHA-512(secret, data).
func HMACSHA512(secret, data []byte) []byte { return mac(sha512.New, secret, data) }

// HMACWhirlpool returns HMAC-Whirlpool(secret, data).
func HMACWhirlpool(secret, data []byte) []byte { return mac(whirlpool.New, secret, data) }

// Whirlpool64 returns the first 8 bytes of the Whirlpool digest.
func Whirlpool64(data []byte) []byte { return Whirlpool(data)[:8] }

// SHA512Trunc128 returns the first 16 bytes of the SHA-512 digest.
func SHA512Trunc128(data []byte) []byte { return SHA512(data)[:16] }

// SHA512Trunc192 returns the first 24 bytes of the SHA-512 digest.
func SHA512Trunc192(data []byte) []byte { return SHA512(data)[:24] }
