package wire

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// base64Alphabet is the standard base64 alphabet plus the pad symbol.
	base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="

	// privateAlphabet holds U+2800 + (i*37+11) mod 128 for i in 0..64.
	privateAlphabet = "⠋⠰⡕⡺⠟⡄⡩⠎⠳⡘⡽⠢⡇⡬⠑⠶⡛⠀⠥⡊⡯⠔⠹⡞⠃⠨⡍⡲⠗⠼⡡⠆⠫⡐⡵⠚⠿⡤⠉⠮⡓⡸⠝⡂⡧⠌⠱⡖⡻⠠⡅⡪⠏⠴⡙⡾⠣⡈⡭⠒⠷⡜⠁⠦⡋"
)

// strictEncoding rejects non-zero trailing bits so every body has
// exactly one encoding.
var strictEncoding = base64.StdEncoding.Strict()

var (
	toPrivateTable = make(map[rune]rune, len(base64Alphabet))
	toPublicTable  = make(map[rune]rune, len(base64Alphabet))
)

func init() {
	private := []rune(privateAlphabet)
	if len(private) != len(base64Alphabet) {
		panic("wire: alphabet size mismatch")
	}
	for i, r := range base64Alphabet {
		toPrivateTable[r] = private[i]
		toPublicTable[private[i]] = r
	}
	if len(toPublicTable) != len(base64Alphabet) {
		panic("wire: private alphabet has duplicates")
	}
}

// Substitute maps a base64 string to the private alphabet when toPrivate
// is true, and back otherwise. A character outside the source alphabet
// returns ErrInvalidCharacter.
func Substitute(s string, toPrivate bool) (string, error) {
	table := toPublicTable
	if toPrivate {
		table = toPrivateTable
	}

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i, r := range s {
		mapped, ok := table[r]
		if !ok {
			return "", fmt.Errorf("%w: %q at byte %d", ErrInvalidCharacter, r, i)
		}
		b.WriteRune(mapped)
	}
	return b.String(), nil
}

// Encode returns data as base64 in the private alphabet.
func Encode(data []byte) string {
	// Every standard base64 symbol is in the table.
	s, _ := Substitute(base64.StdEncoding.EncodeToString(data), true)
	return s
}

// Decode reverses Encode.
func Decode(s string) ([]byte, error) {
	b64, err := Substitute(s, false)
	if err != nil {
		return nil, err
	}
	data, err := strictEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return data, nil
}
