// Package wire converts ciphertext to and from the text that travels in
// chat messages.
//
// Binary data is first encoded as standard padded base64, then each of
// the 65 base64 symbols is replaced by a character from a private set of
// Braille patterns (U+2800 to U+287F). The mapping is a bijection, and
// any character outside the expected source alphabet is an error in
// both directions.
//
// Two frames exist:
//
//	message:    MessageMagic (4) || metadata (8) || body
//	public key: KeyMagic (4) || body
//
// The magics are drawn from U+28B7 to U+28BE, outside the substitution
// set, so they can never appear inside a body. Each is exactly four
// UTF-16 code units.
package wire
