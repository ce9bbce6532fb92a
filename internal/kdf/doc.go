// Package kdf provides the hash primitives and key-derivation functions
// used to stretch short passwords into cipher key material.
//
// # Hashes
//
// SHA-1, SHA-256, SHA-512 and Whirlpool are exposed both plain and keyed
// (HMAC). Three truncated forms feed key normalization:
//
//   - [Whirlpool64]: first 8 bytes of Whirlpool.
//   - [SHA512Trunc128]: first 16 bytes of SHA-512.
//   - [SHA512Trunc192]: first 24 bytes of SHA-512. The 192-bit slot has
//     historically been labelled "Whirlpool192"; it has always been
//     computed with SHA-512 and is kept that way so existing ciphertext
//     still decrypts.
//
// # PBKDF2
//
// [PBKDF2] runs synchronously. [PBKDF2Async] runs on its own goroutine and
// delivers the key on a channel.
//
// # Scrypt
//
// [Scrypt] is an incremental implementation built from PBKDF2-HMAC-SHA256,
// Salsa20/8 block mixing and an N-entry lookup table. It reports progress
// roughly every thousand Salsa20/8 invocations through a [ProgressFunc];
// returning true from the callback aborts the derivation with
// [ErrCancelled]. Context cancellation is honoured at the same points.
package kdf
