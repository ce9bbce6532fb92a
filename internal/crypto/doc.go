// Package crypto implements the single-stage block cipher wrapper and the
// authenticated variant used for data at rest.
//
// # Ciphers
//
// Five block ciphers are available, in this fixed order:
//
//   - Blowfish (512-bit derived key, 64-bit block)
//   - AES-256 (128-bit block)
//   - Camellia-256 (128-bit block)
//   - IDEA (128-bit key, 64-bit block)
//   - TripleDES (192-bit key, 64-bit block)
//
// Each runs in CBC, CFB or OFB mode. The order matters: a [Suite] index
// i selects primary cipher i%5 and secondary cipher i/5.
//
// The Blowfish primitive accepts at most 448 key bits, so the last 64
// bits of the derived 512-bit key are not used.
//
// # Envelope
//
// [Encrypt] performs, in order:
//
//  1. padding to the cipher block size with the chosen scheme
//  2. key normalization to the cipher key size ([NormalizeKey])
//  3. salt selection ([NormalizeSalt]): 8 random bytes, or the caller's salt
//  4. PBKDF2-HMAC-SHA256 over (normalized key, salt) producing IV || key
//  5. encryption with primitive-level padding disabled
//
// and returns salt (8 bytes) || ciphertext. [Decrypt] reverses the steps.
//
// # Authenticated variant
//
// [EncryptGCM] uses AES-256-GCM with a 16-byte IV derived the same way
// and returns tag (16 bytes) || salt (8 bytes) || ciphertext, with
// optional additional authenticated data. [DecryptGCM] never returns
// plaintext when the tag does not verify. [EncryptBlob] and [DecryptBlob]
// wrap the variant in base64 for configuration storage.
package crypto
