// Package corpus reads training text for the tokenizer.
package corpus

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Form is a Unicode normalization applied to training text.
type Form string

// Supported normalization forms.
const (
	FormNone Form = ""
	FormNFC  Form = "nfc"
	FormNFKC Form = "nfkc"
)

// ParseForm parses "", "none", "nfc" or "nfkc".
func ParseForm(s string) (Form, error) {
	switch f := Form(strings.ToLower(s)); f {
	case FormNone, "none":
		return FormNone, nil
	case FormNFC, FormNFKC:
		return f, nil
	default:
		return FormNone, fmt.Errorf("unknown normalization form: %s", s)
	}
}

// Normalize applies the form to text.
//
// Only training text is normalized. Normalizing text before encoding would
// break the decode(encode(t)) == t round trip.
func Normalize(text string, form Form) string {
	switch form {
	case FormNFC:
		return norm.NFC.String(text)
	case FormNFKC:
		return norm.NFKC.String(text)
	default:
		return text
	}
}

// Read concatenates the files at paths, inserting a newline between files
// that do not end with one, and normalizes the result.
func Read(paths []string, form Form) (string, error) {
	var sb strings.Builder
	for _, path := range paths {
		//nolint:gosec // G304: Corpus paths come from the user.
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read corpus file: %w", err)
		}
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}
		sb.Write(data)
	}
	return Normalize(sb.String(), form), nil
}
