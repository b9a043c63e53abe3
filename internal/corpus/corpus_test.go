package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForm(t *testing.T) {
	tests := []struct {
		in      string
		want    Form
		wantErr bool
	}{
		{in: "", want: FormNone},
		{in: "none", want: FormNone},
		{in: "NFC", want: FormNFC},
		{in: "nfkc", want: FormNFKC},
		{in: "nfd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseForm(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	decomposed := "e\u0301" // e + combining acute accent

	assert.Equal(t, decomposed, Normalize(decomposed, FormNone))
	assert.Equal(t, "\u00e9", Normalize(decomposed, FormNFC))
	assert.Equal(t, "fi", Normalize("\ufb01", FormNFKC))
	assert.Equal(t, "\ufb01", Normalize("\ufb01", FormNFC))
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("first"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("cafe\u0301\n"), 0o600))

	text, err := Read([]string{a, b}, FormNFC)
	require.NoError(t, err)
	assert.Equal(t, "first\ncaf\u00e9\n", text)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read([]string{filepath.Join(t.TempDir(), "missing.txt")}, FormNone)
	assert.Error(t, err)
}
