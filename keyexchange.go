package chatseal

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/chatseal/chatseal/internal/exchange"
	"github.com/chatseal/chatseal/internal/wire"
)

// KeyExchange is one side of a DH or ECDH agreement. The private key is
// wiped once the shared secret has been computed.
type KeyExchange struct {
	session *exchange.Session
	log     logrus.FieldLogger
}

// NewKeyExchange generates a key pair. For DH, bits is the MODP group
// size (768 to 8192); for ECDH it is the curve size (224, 256, 384, 409,
// 521).
func (e *Engine) NewKeyExchange(family ExchangeFamily, bits int) (*KeyExchange, error) {
	s, err := exchange.NewSession(family, bits)
	if err != nil {
		return nil, &KeyExchangeError{Op: "generate", Err: err}
	}
	e.log.WithField("algorithm", s.Algorithm().String()).Debug("key pair generated")
	return &KeyExchange{session: s, log: e.log}, nil
}

// Algorithm returns the negotiated group or curve.
func (kx *KeyExchange) Algorithm() ExchangeAlgorithm {
	return kx.session.Algorithm()
}

// PublicKey returns the framed public key to send to the peer.
func (kx *KeyExchange) PublicKey() string {
	return wire.FrameKey(kx.session.PublicKeyBlob())
}

// PublicKeyBlob returns the unframed public key blob.
func (kx *KeyExchange) PublicKeyBlob() []byte {
	return kx.session.PublicKeyBlob()
}

// ComputeSharedSecret parses the peer's framed public key and computes
// the shared secret.
func (kx *KeyExchange) ComputeSharedSecret(peerPublicKey string) (*SharedSecret, error) {
	blob, err := wire.ParseKey(peerPublicKey)
	if err != nil {
		return nil, &KeyExchangeError{Op: "parse", Err: err}
	}
	return kx.ComputeSharedSecretBlob(blob)
}

// ComputeSharedSecretBlob is like ComputeSharedSecret for an unframed blob.
func (kx *KeyExchange) ComputeSharedSecretBlob(peerBlob []byte) (*SharedSecret, error) {
	secret, err := kx.session.ComputeSharedSecret(peerBlob)
	if err != nil {
		return nil, &KeyExchangeError{Op: "compute", Err: err}
	}
	kx.log.WithField("algorithm", secret.Algorithm.String()).Debug("shared secret computed")
	return secret, nil
}

// Close wipes the private key. It is safe to call more than once.
func (kx *KeyExchange) Close() {
	kx.session.Close()
}

// DeriveFinalPasswords turns a shared secret into the channel's password
// pair. Both sides obtain the same pair. The two scrypt runs happen
// concurrently; progress receives their average.
func (e *Engine) DeriveFinalPasswords(ctx context.Context, secret *SharedSecret, progress ProgressFunc) (PasswordPair, error) {
	if secret == nil {
		return PasswordPair{}, &KeyExchangeError{Op: "derive", Err: exchange.ErrInvalidSecret}
	}
	pair, err := exchange.DeriveFinalPasswords(ctx, secret.Hex(), secret.LocalSalt, secret.PeerSalt, progress)
	if err != nil {
		e.log.WithError(err).Debug("password derivation failed")
		return PasswordPair{}, &KeyExchangeError{Op: "derive", Err: err}
	}
	return pair, nil
}
