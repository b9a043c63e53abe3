package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderToken(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"ascii", []byte("hello"), "hello"},
		{"space", []byte(" a b"), " a b"},
		{"newline", []byte("a\nb"), `a\u000ab`},
		{"tab", []byte("\t"), `\u0009`},
		{"nul", []byte{0}, `\u0000`},
		{"delete", []byte{0x7f}, `\u007f`},
		{"zero width space", []byte("a\u200bb"), `a\u200bb`},
		{"multi-byte", []byte("héllo 👋"), "héllo 👋"},
		{"invalid byte", []byte{0xff}, "\uFFFD"},
		{"partial rune", []byte{0xe2, 0x82}, "\uFFFD\uFFFD"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderToken(tt.in))
		})
	}
}
