package exchange

import (
	"crypto/ecdh"
	"crypto/elliptic"
	"fmt"
	"io"
	"math/big"

	"github.com/cloudflare/circl/dh/x448"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// curve generates key pairs for one ECDH menu entry.
type curve struct {
	name     string
	generate func(r io.Reader) (privateKey, []byte, error)
	// check validates an encoded peer key without a private key.
	check func(pub []byte) error
}

// curves is keyed by menu size. 571 has no entry.
var curves = map[int]curve{
	224: nistCurve("P-224", elliptic.P224()),
	256: {name: "secp256k1", generate: generateSecp256k1, check: checkSecp256k1},
	384: stdlibCurve("P-384", ecdh.P384(), elliptic.P384()),
	409: {name: "X448", generate: generateX448, check: checkX448},
	521: stdlibCurve("P-521", ecdh.P521(), elliptic.P521()),
}

func compressedSize(c elliptic.Curve) int {
	return 1 + (c.Params().BitSize+7)/8
}

func decompress(c elliptic.Curve, pub []byte) (x, y *big.Int, err error) {
	if len(pub) != compressedSize(c) {
		return nil, nil, fmt.Errorf("%w: %s key is %d bytes, want %d", ErrInvalidPublicKey, c.Params().Name, len(pub), compressedSize(c))
	}
	x, y = elliptic.UnmarshalCompressed(c, pub)
	if x == nil {
		return nil, nil, fmt.Errorf("%w: not a %s point", ErrInvalidPublicKey, c.Params().Name)
	}
	return x, y, nil
}

// nistCurve covers P-224, which crypto/ecdh does not offer.
func nistCurve(name string, c elliptic.Curve) curve {
	return curve{
		name: name,
		generate: func(r io.Reader) (privateKey, []byte, error) {
			d, x, y, err := elliptic.GenerateKey(c, r)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate %s key: %w", name, err)
			}
			return &nistPrivate{c: c, d: d}, elliptic.MarshalCompressed(c, x, y), nil
		},
		check: func(pub []byte) error {
			_, _, err := decompress(c, pub)
			return err
		},
	}
}

type nistPrivate struct {
	c elliptic.Curve
	d []byte
}

func (k *nistPrivate) shared(peer []byte) ([]byte, error) {
	x, y, err := decompress(k.c, peer)
	if err != nil {
		return nil, err
	}
	sx, _ := k.c.ScalarMult(x, y, k.d)
	if sx.Sign() == 0 {
		return nil, fmt.Errorf("%w: shared point at infinity", ErrInvalidPublicKey)
	}
	return sx.FillBytes(make([]byte, (k.c.Params().BitSize+7)/8)), nil
}

func (k *nistPrivate) wipe() { clear(k.d) }

// stdlibCurve covers the curves crypto/ecdh implements. Keys travel
// compressed, so elliptic is used to convert at the boundary.
func stdlibCurve(name string, ec ecdh.Curve, c elliptic.Curve) curve {
	toECDH := func(pub []byte) (*ecdh.PublicKey, error) {
		x, y, err := decompress(c, pub)
		if err != nil {
			return nil, err
		}
		key, err := ec.NewPublicKey(elliptic.Marshal(c, x, y))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
		}
		return key, nil
	}

	return curve{
		name: name,
		generate: func(r io.Reader) (privateKey, []byte, error) {
			priv, err := ec.GenerateKey(r)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate %s key: %w", name, err)
			}
			raw := priv.PublicKey().Bytes()
			size := (len(raw) - 1) / 2
			x := new(big.Int).SetBytes(raw[1 : 1+size])
			y := new(big.Int).SetBytes(raw[1+size:])
			return &stdlibPrivate{key: priv, toECDH: toECDH}, elliptic.MarshalCompressed(c, x, y), nil
		},
		check: func(pub []byte) error {
			_, err := toECDH(pub)
			return err
		},
	}
}

type stdlibPrivate struct {
	key    *ecdh.PrivateKey
	toECDH func([]byte) (*ecdh.PublicKey, error)
}

func (k *stdlibPrivate) shared(peer []byte) ([]byte, error) {
	pub, err := k.toECDH(peer)
	if err != nil {
		return nil, err
	}
	secret, err := k.key.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return secret, nil
}

// wipe drops the key; crypto/ecdh keeps its scalar unexported.
func (k *stdlibPrivate) wipe() { k.key = nil }

func generateSecp256k1(r io.Reader) (privateKey, []byte, error) {
	priv, err := secp256k1.GeneratePrivateKeyFromRand(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}
	return &secp256k1Private{key: priv}, priv.PubKey().SerializeCompressed(), nil
}

func checkSecp256k1(pub []byte) error {
	if len(pub) != secp256k1.PubKeyBytesLenCompressed {
		return fmt.Errorf("%w: secp256k1 key is %d bytes, want %d", ErrInvalidPublicKey, len(pub), secp256k1.PubKeyBytesLenCompressed)
	}
	if _, err := secp256k1.ParsePubKey(pub); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return nil
}

type secp256k1Private struct {
	key *secp256k1.PrivateKey
}

func (k *secp256k1Private) shared(peer []byte) ([]byte, error) {
	if err := checkSecp256k1(peer); err != nil {
		return nil, err
	}
	pub, _ := secp256k1.ParsePubKey(peer)
	return secp256k1.GenerateSharedSecret(k.key, pub), nil
}

func (k *secp256k1Private) wipe() { k.key.Zero() }

func generateX448(r io.Reader) (privateKey, []byte, error) {
	var secret, public x448.Key
	if _, err := io.ReadFull(r, secret[:]); err != nil {
		return nil, nil, fmt.Errorf("failed to generate X448 key: %w", err)
	}
	x448.KeyGen(&public, &secret)
	return &x448Private{secret: secret}, public[:], nil
}

func checkX448(pub []byte) error {
	if len(pub) != x448.Size {
		return fmt.Errorf("%w: X448 key is %d bytes, want %d", ErrInvalidPublicKey, len(pub), x448.Size)
	}
	return nil
}

type x448Private struct {
	secret x448.Key
}

func (k *x448Private) shared(peer []byte) ([]byte, error) {
	if err := checkX448(peer); err != nil {
		return nil, err
	}
	var public, shared x448.Key
	copy(public[:], peer)
	if !x448.Shared(&shared, &k.secret, &public) {
		return nil, fmt.Errorf("%w: low-order X448 point", ErrInvalidPublicKey)
	}
	return shared[:], nil
}

func (k *x448Private) wipe() { clear(k.secret[:]) }
