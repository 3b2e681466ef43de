package output

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lookupEncoding maps a configured encoding name to its codec. Names are
// validated by config.Validate, but unknown names still error here so the
// writer never guesses.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS, nil
	case "euc-jp", "eucjp":
		return japanese.EUCJP, nil
	}
	return nil, fmt.Errorf("unknown encoding %q", name)
}

// encodeText converts UTF-8 text to the target encoding. Every rune the
// target cannot represent is replaced with the already-encoded
// placeholder and counted; the conversion itself never fails on
// repertoire gaps. One placeholder byte sequence is written per
// substituted character.
func encodeText(enc encoding.Encoding, text string, placeholder []byte) ([]byte, int) {
	e := enc.NewEncoder()
	var out bytes.Buffer
	substituted := 0

	for len(text) > 0 {
		converted, n, err := transform.String(e, text)
		out.WriteString(converted)
		if err == nil {
			break
		}
		// the encoder stopped at an unsupported rune: splice in the
		// placeholder and continue after it
		_, size := utf8.DecodeRuneInString(text[n:])
		if size == 0 {
			break
		}
		out.Write(placeholder)
		substituted++
		text = text[n+size:]
		e.Reset()
	}
	return out.Bytes(), substituted
}

// encodePlaceholder renders the substitution string in the target
// encoding. The placeholder itself must be representable.
func encodePlaceholder(enc encoding.Encoding, placeholder string) ([]byte, error) {
	b, err := enc.NewEncoder().Bytes([]byte(placeholder))
	if err != nil {
		return nil, fmt.Errorf("placeholder %q is not representable in the target encoding: %w", placeholder, err)
	}
	return b, nil
}
