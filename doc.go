// Package chatseal encrypts short text messages with two block ciphers in
// sequence and encodes the result as Braille-range text that can be
// pasted into any chat client.
//
// Basic usage:
//
//	engine, err := chatseal.New(
//	    chatseal.WithCipherIndex(7),
//	    chatseal.WithAuthentication(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sealed, err := engine.EncodeMessage("Hello, World!", []byte("pw1"), []byte("pw2"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plain, err := engine.DecodeMessage(sealed, []byte("pw1"), []byte("pw2"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The cipher suite, block mode and padding scheme travel in the message
// header, so the decoding side only needs the two passwords and the same
// authentication setting.
//
// Two parties that have no shared passwords yet can agree on a pair with
// [Engine.NewKeyExchange] and [Engine.DeriveFinalPasswords].
package chatseal
