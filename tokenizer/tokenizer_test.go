package tokenizer_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bpe/tokenizer"
)

func TestRegex_TrainSaveLoad(t *testing.T) {
	tok, err := tokenizer.NewRegex("gpt2")
	require.NoError(t, err)
	assert.Equal(t, tokenizer.GPT2SplitPattern, tok.Pattern())

	corpus := "the cat sat on the mat; the cat ate the rat"
	require.NoError(t, tok.Train(corpus, 280))
	require.NoError(t, tok.RegisterSpecialTokens(map[string]int32{"<|eot|>": 1000}))

	prefix := filepath.Join(t.TempDir(), "cats")
	require.NoError(t, tok.SaveModel(prefix))

	loaded, err := tokenizer.NewRegex("")
	require.NoError(t, err)
	require.NoError(t, loaded.LoadModel(prefix+".model"))

	text := "the cat<|eot|>the rat"
	want, err := tok.EncodeWithMode(text, tokenizer.AllowAll)
	require.NoError(t, err)
	got, err := loaded.EncodeWithMode(text, tokenizer.AllowAll)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = loaded.Encode(text)
	assert.True(t, errors.Is(err, tokenizer.ErrSpecialTokenPresent))
}

func TestBasic_EncodeBatch(t *testing.T) {
	tok := tokenizer.NewBasic()
	require.NoError(t, tok.Train("aaabdaaabac", 259))

	got, err := tokenizer.EncodeBatch(tok, []string{"aaab", "ac", ""})
	require.NoError(t, err)
	assert.Equal(t, [][]int32{{258}, {97, 99}, {}}, got)
}

func TestEncodeChat(t *testing.T) {
	tok, err := tokenizer.NewRegex("gpt4", tokenizer.WithCacheSize(0))
	require.NoError(t, err)

	tmpl, err := tokenizer.GetChatTemplate("chatml")
	require.NoError(t, err)
	require.NoError(t, tokenizer.ReserveChatTokens(tok, tmpl))

	ids, err := tokenizer.EncodeChat(tok, tmpl, []tokenizer.ChatMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)

	text, err := tok.Decode(ids)
	require.NoError(t, err)
	assert.Equal(t, "<|im_start|>user\nhi<|im_end|>\n<|im_start|>assistant\n", text)
}
