package reference

import (
	"fmt"

	"github.com/born-ml/bpe/internal/tokenizer"
)

// Comparison holds the token counts of one text under two tokenizers.
type Comparison struct {
	Bytes           int    `json:"bytes"`
	Tokens          int    `json:"tokens"`
	ReferenceTokens int    `json:"reference_tokens"`
	Reference       string `json:"reference"`
}

// Compare encodes text with enc and with ref.
func Compare(enc tokenizer.Encoder, ref *Encoding, text string) (Comparison, error) {
	ids, err := enc.Encode(text)
	if err != nil {
		return Comparison{}, fmt.Errorf("failed to encode text: %w", err)
	}
	return Comparison{
		Bytes:           len(text),
		Tokens:          len(ids),
		ReferenceTokens: ref.Count(text),
		Reference:       ref.Name(),
	}, nil
}

// BytesPerToken is the compression ratio of the compared tokenizer.
func (c Comparison) BytesPerToken() float64 {
	return ratio(c.Bytes, c.Tokens)
}

// ReferenceBytesPerToken is the compression ratio of the reference.
func (c Comparison) ReferenceBytesPerToken() float64 {
	return ratio(c.Bytes, c.ReferenceTokens)
}

// Relative returns tokens / reference tokens (below 1 means fewer tokens
// than the reference).
func (c Comparison) Relative() float64 {
	return ratio(c.Tokens, c.ReferenceTokens)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
