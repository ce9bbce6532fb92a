// Package exchange implements the Diffie-Hellman and elliptic-curve
// Diffie-Hellman key agreement that bootstraps a channel's password pair.
//
// A party creates a [Session], publishes its public key blob, and later
// feeds the peer's blob to [Session.ComputeSharedSecret]. The private key
// lives only inside the session and is wiped once the secret has been
// computed. [DeriveFinalPasswords] then stretches the secret and both
// salts into the primary and secondary passwords.
//
// # Algorithms
//
// Index 0 to 7 select a MODP group (RFC 2409 and RFC 3526) of 768, 1024,
// 1536, 2048, 3072, 4096, 6144 or 8192 bits with generator 2. Index 8
// to 13 select a curve by size:
//
//	224  NIST P-224
//	256  secp256k1
//	384  NIST P-384
//	409  Curve448 (X448)
//	521  NIST P-521
//	571  reserved, not supported
//
// # Public key blob
//
//	algorithm (1) || salt length (1) || salt (16..32) || public key
//
// EC public keys are sent in compressed form, except X448 which has a
// single 56-byte encoding. DH public values are left-padded to the
// length of the prime.
package exchange
