package crypto

import (
	"crypto/cipher"
	"fmt"

	"github.com/chatseal/chatseal/internal/padding"
)

// CipherParams selects how one cipher stage runs.
type CipherParams struct {
	Algorithm Algorithm
	Mode      BlockMode
	Padding   padding.Scheme

	// Key is the raw key material. It is normalized to the algorithm's
	// key size before use, so passwords of any length are accepted.
	Key []byte

	// Salt is optional on encryption. Nil means a fresh random salt.
	Salt []byte

	// Iterations is the PBKDF2 count. Zero means DefaultKDFIterations.
	Iterations int

	// PreferSHA512 normalizes 512-bit keys with SHA-512 instead of
	// Whirlpool.
	PreferSHA512 bool
}

func (p CipherParams) validate() error {
	if !p.Algorithm.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedCipher, p.Algorithm)
	}
	if !p.Mode.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedCipher, p.Mode)
	}
	if !p.Padding.Valid() {
		return fmt.Errorf("%w: %s", padding.ErrInvalidScheme, p.Padding)
	}
	return nil
}

// newBlock normalizes the key, derives IV and cipher key from it and the
// salt, and instantiates the primitive.
func (p CipherParams) newBlock(salt []byte) (cipher.Block, []byte, error) {
	info := algorithms[p.Algorithm]

	key, err := NormalizeKey(p.Key, info.keyBits, p.PreferSHA512)
	if err != nil {
		return nil, nil, err
	}

	iv, cipherKey, err := deriveIVAndKey(key, salt, info.blockBits/8, info.keyBits/8, p.Iterations)
	if err != nil {
		return nil, nil, err
	}

	block, err := info.newCipher(cipherKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s cipher: %w", info.name, err)
	}
	return block, iv, nil
}

// Encrypt pads plaintext, encrypts it and returns salt || ciphertext.
func Encrypt(plaintext []byte, p CipherParams) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	padded, err := padding.Pad(plaintext, p.Padding, p.Algorithm.BlockBits())
	if err != nil {
		return nil, err
	}

	salt, err := NormalizeSalt(p.Salt)
	if err != nil {
		return nil, err
	}

	block, iv, err := p.newBlock(salt)
	if err != nil {
		return nil, err
	}

	out := make([]byte, SaltSize+len(padded))
	copy(out, salt)
	ct := out[SaltSize:]

	switch p.Mode {
	case CBC:
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)
	case CFB:
		cipher.NewCFBEncrypter(block, iv).XORKeyStream(ct, padded)
	case OFB:
		cipher.NewOFB(block, iv).XORKeyStream(ct, padded)
	}
	return out, nil
}

// Decrypt reverses Encrypt. p.Salt is ignored; the salt is read from the
// envelope.
func Decrypt(envelope []byte, p CipherParams) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	blockSize := p.Algorithm.BlockBits() / 8
	if len(envelope) < SaltSize+blockSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidCiphertext, len(envelope))
	}
	salt, ct := envelope[:SaltSize], envelope[SaltSize:]
	if p.Mode == CBC && len(ct)%blockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of the %d-byte block", ErrInvalidCiphertext, len(ct), blockSize)
	}

	block, iv, err := p.newBlock(salt)
	if err != nil {
		return nil, err
	}

	plain := make([]byte, len(ct))
	switch p.Mode {
	case CBC:
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)
	case CFB:
		cipher.NewCFBDecrypter(block, iv).XORKeyStream(plain, ct)
	case OFB:
		cipher.NewOFB(block, iv).XORKeyStream(plain, ct)
	}

	return padding.Unpad(plain, p.Padding, p.Algorithm.BlockBits())
}
