package chatseal

import (
	"fmt"
	"unicode/utf8"
)

// SplitMessage splits text into chunks of at most maxBytes UTF-8 bytes,
// never cutting a rune. Each chunk can be encoded as its own message.
// Empty text yields a single empty chunk. Text that is not valid UTF-8 is
// rejected.
func SplitMessage(text string, maxBytes int) ([]string, error) {
	if maxBytes < utf8.UTFMax {
		return nil, &ConfigError{Field: "chunk size", Err: fmt.Errorf("%d is below %d bytes", maxBytes, utf8.UTFMax)}
	}
	if !utf8.ValidString(text) {
		return nil, &ConfigError{Field: "text", Err: errInvalidUTF8}
	}
	if len(text) <= maxBytes {
		return []string{text}, nil
	}

	chunks := make([]string, 0, len(text)/maxBytes+1)
	for len(text) > maxBytes {
		cut := maxBytes
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks, nil
}

// EncodeChunked splits plaintext with SplitMessage and encodes each
// chunk with the engine's default settings.
func (e *Engine) EncodeChunked(plaintext string, primaryKey, secondaryKey []byte, maxBytes int) ([]string, error) {
	chunks, err := SplitMessage(plaintext, maxBytes)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(chunks))
	for i, chunk := range chunks {
		if out[i], err = e.EncodeMessage(chunk, primaryKey, secondaryKey); err != nil {
			return nil, err
		}
	}
	return out, nil
}
