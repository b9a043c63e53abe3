package tokenizer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bpe/internal/parallel"
)

func TestEncodeBatch(t *testing.T) {
	tok := trainedRegex(t)

	texts := make([]string, 50)
	for i := range texts {
		texts[i] = fmt.Sprintf("document %d: the llama number %d", i, i*i)
	}

	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
	got, err := EncodeBatch(tok, texts, cfg)
	require.NoError(t, err)
	require.Len(t, got, len(texts))

	for i, text := range texts {
		want, err := tok.Encode(text)
		require.NoError(t, err)
		assert.Equal(t, want, got[i], "text %d", i)
	}
}

func TestEncodeBatch_Empty(t *testing.T) {
	got, err := EncodeBatch(NewBasicTokenizer(), nil, parallel.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeBatch_Error(t *testing.T) {
	tok := trainedRegex(t)
	texts := []string{"fine", "also fine", "bad <|endoftext|>", "fine", "worse <|fim_prefix|>"}

	cfg := parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1}
	_, err := EncodeBatch(tok, texts, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSpecialTokenPresent))
	assert.Contains(t, err.Error(), "text 2")
}
