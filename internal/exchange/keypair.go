package exchange

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// MinSaltLen and MaxSaltLen bound the salt carried in a blob.
	MinSaltLen = 16
	MaxSaltLen = 32
)

// randReader is the random source used for key generation and salts.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func random() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

type privateKey interface {
	shared(peer []byte) ([]byte, error)
	wipe()
}

// KeyPair is a freshly generated key with its exchange salt.
type KeyPair struct {
	Algorithm Algorithm
	Salt      []byte
	PublicKey []byte

	priv privateKey
}

// GenerateKeyPair creates a key pair for the given family and size.
func GenerateKeyPair(f Family, bits int) (*KeyPair, error) {
	alg, err := AlgorithmFor(f, bits)
	if err != nil {
		return nil, err
	}
	return generate(alg)
}

func generate(alg Algorithm) (*KeyPair, error) {
	if !alg.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	}

	r := random()

	var (
		priv privateKey
		pub  []byte
		err  error
	)
	if alg.Family() == DH {
		priv, pub, err = generateDH(alg.Bits(), r)
	} else {
		priv, pub, err = curves[alg.Bits()].generate(r)
	}
	if err != nil {
		return nil, err
	}

	salt, err := randomSalt(r)
	if err != nil {
		priv.wipe()
		return nil, err
	}

	return &KeyPair{Algorithm: alg, Salt: salt, PublicKey: pub, priv: priv}, nil
}

// randomSalt returns between MinSaltLen and MaxSaltLen random bytes.
func randomSalt(r io.Reader) ([]byte, error) {
	var n [1]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := make([]byte, MinSaltLen+int(n[0])%(MaxSaltLen-MinSaltLen+1))
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// PublicKeyBlob serializes the public half of kp.
func (kp *KeyPair) PublicKeyBlob() []byte {
	blob := make([]byte, 0, 2+len(kp.Salt)+len(kp.PublicKey))
	blob = append(blob, byte(kp.Algorithm), byte(len(kp.Salt)))
	blob = append(blob, kp.Salt...)
	return append(blob, kp.PublicKey...)
}

// PeerKey is a parsed public key blob.
type PeerKey struct {
	Algorithm Algorithm
	Salt      []byte
	PublicKey []byte
}

// ParsePublicKeyBlob parses and validates a blob produced by
// KeyPair.PublicKeyBlob. The public key is checked to be a valid element
// of its group.
func ParsePublicKeyBlob(blob []byte) (*PeerKey, error) {
	if len(blob) < 2 {
		return nil, fmt.Errorf("%w: blob of %d bytes", ErrInvalidPublicKey, len(blob))
	}

	alg := Algorithm(blob[0])
	if !alg.Valid() {
		return nil, fmt.Errorf("%w: algorithm index %d", ErrInvalidPublicKey, blob[0])
	}
	if !alg.Supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	}

	saltLen := int(blob[1])
	if saltLen < MinSaltLen || saltLen > MaxSaltLen {
		return nil, fmt.Errorf("%w: salt length %d", ErrInvalidPublicKey, saltLen)
	}
	if len(blob) <= 2+saltLen {
		return nil, fmt.Errorf("%w: blob too short for its salt", ErrInvalidPublicKey)
	}

	peer := &PeerKey{
		Algorithm: alg,
		Salt:      append([]byte(nil), blob[2:2+saltLen]...),
		PublicKey: append([]byte(nil), blob[2+saltLen:]...),
	}

	var err error
	if alg.Family() == DH {
		err = checkDHPublic(modpGroup(alg.Bits()), peer.PublicKey)
	} else {
		err = curves[alg.Bits()].check(peer.PublicKey)
	}
	if err != nil {
		return nil, err
	}
	return peer, nil
}
