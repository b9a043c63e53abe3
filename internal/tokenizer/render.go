package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// renderToken turns token bytes into a printable string for the .vocab
// file. Invalid UTF-8 becomes U+FFFD and control or unassigned runes are
// written as \uXXXX escapes.
func renderToken(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if isOther(r) {
			fmt.Fprintf(&sb, "\\u%04x", r)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// isOther reports whether r is in Unicode category C (control, format,
// surrogate, private use or unassigned).
func isOther(r rune) bool {
	if unicode.Is(unicode.C, r) {
		return true
	}
	return !unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z)
}
