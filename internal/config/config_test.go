package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 512, cfg.VocabSize)
	assert.Equal(t, "gpt4", cfg.Pattern)
	assert.False(t, cfg.Basic)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
corpus:
  - data/a.txt
  - data/b.txt
vocab_size: 1024
pattern: gpt2
special_tokens:
  "<|endoftext|>": 1024
normalize: nfc
output: out/tok
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"data/a.txt", "data/b.txt"}, cfg.Corpus)
	assert.Equal(t, 1024, cfg.VocabSize)
	assert.Equal(t, "gpt2", cfg.Pattern)
	assert.Equal(t, map[string]int32{"<|endoftext|>": 1024}, cfg.SpecialTokens)
	assert.Equal(t, "nfc", cfg.Normalize)
	assert.Equal(t, "out/tok", cfg.Output)
}

func TestLoad_KeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "corpus: [a.txt]\n"))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.VocabSize)
	assert.Equal(t, "tokenizer", cfg.Output)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{name: "small vocab", content: "vocab_size: 100\n", errText: "vocab_size"},
		{name: "bad normalize", content: "normalize: nfd\n", errText: "normalization"},
		{name: "basic with specials", content: "basic: true\nspecial_tokens: {\"<s>\": 600}\n", errText: "special_tokens"},
		{name: "bad yaml", content: "vocab_size: [\n", errText: "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
