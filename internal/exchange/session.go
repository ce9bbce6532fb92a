package exchange

import (
	"encoding/hex"
	"fmt"
	"sync"
)

// SharedSecret is the outcome of a completed exchange.
type SharedSecret struct {
	Algorithm Algorithm
	Secret    []byte
	LocalSalt []byte
	PeerSalt  []byte
}

// Hex returns the secret as lowercase hex.
func (s *SharedSecret) Hex() string { return hex.EncodeToString(s.Secret) }

// Session owns a private key from generation until the shared secret is
// computed. It is safe for concurrent use.
type Session struct {
	mu   sync.Mutex
	pair *KeyPair
}

// NewSession generates a key pair for the given family and size.
func NewSession(f Family, bits int) (*Session, error) {
	kp, err := GenerateKeyPair(f, bits)
	if err != nil {
		return nil, err
	}
	return &Session{pair: kp}, nil
}

// Algorithm returns the session's algorithm.
func (s *Session) Algorithm() Algorithm { return s.pair.Algorithm }

// Salt returns the local exchange salt.
func (s *Session) Salt() []byte { return s.pair.Salt }

// PublicKeyBlob returns the blob to publish to the peer.
func (s *Session) PublicKeyBlob() []byte { return s.pair.PublicKeyBlob() }

// ComputeSharedSecret combines the local private key with the peer's
// blob. On success the private key is wiped and the session is closed.
// A blob for a different algorithm returns ErrAlgorithmMismatch and
// leaves the session usable.
func (s *Session) ComputeSharedSecret(peerBlob []byte) (*SharedSecret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pair.priv == nil {
		return nil, ErrSessionClosed
	}

	if len(peerBlob) > 0 && Algorithm(peerBlob[0]) != s.pair.Algorithm {
		return nil, fmt.Errorf("%w: local %s, peer %s", ErrAlgorithmMismatch, s.pair.Algorithm, Algorithm(peerBlob[0]))
	}

	peer, err := ParsePublicKeyBlob(peerBlob)
	if err != nil {
		return nil, err
	}

	secret, err := s.pair.priv.shared(peer.PublicKey)
	if err != nil {
		return nil, err
	}

	s.pair.priv.wipe()
	s.pair.priv = nil

	return &SharedSecret{
		Algorithm: s.pair.Algorithm,
		Secret:    secret,
		LocalSalt: s.pair.Salt,
		PeerSalt:  peer.Salt,
	}, nil
}

// Close wipes the private key without computing a secret.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pair.priv != nil {
		s.pair.priv.wipe()
		s.pair.priv = nil
	}
}
