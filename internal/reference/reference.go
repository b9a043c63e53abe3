// Package reference wraps OpenAI's published BPE encodings so a trained
// model can be compared against them.
//
// Rank files are read from the embedded offline loader, so no network
// access is needed.
package reference

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const (
	// EncodingCL100kBase is the encoding name for GPT-4 and GPT-3.5-turbo.
	EncodingCL100kBase = tiktoken.MODEL_CL100K_BASE
	// EncodingP50kBase is the encoding name for GPT-3 and Codex.
	EncodingP50kBase = tiktoken.MODEL_P50K_BASE
	// EncodingR50kBase is the encoding name for older GPT-3 models.
	EncodingR50kBase = tiktoken.MODEL_R50K_BASE
)

var setLoader sync.Once

// Encoding is a reference tokenizer backed by tiktoken.
type Encoding struct {
	enc  *tiktoken.Tiktoken
	name string
}

// New loads a reference encoding by name ("cl100k_base", "p50k_base",
// "r50k_base").
func New(name string) (*Encoding, error) {
	setLoader.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", name, err)
	}
	return &Encoding{enc: enc, name: name}, nil
}

// Name returns the encoding name.
func (e *Encoding) Name() string {
	return e.name
}

// Encode converts text to token IDs. Special tokens are encoded as text.
func (e *Encoding) Encode(text string) ([]int32, error) {
	tokens := e.enc.Encode(text, nil, nil)

	result := make([]int32, len(tokens))
	for i, tok := range tokens {
		result[i] = int32(tok) //nolint:gosec // G115: Token ID fits in int32 - vocab size < 2^31.
	}
	return result, nil
}

// Decode converts token IDs back to text.
func (e *Encoding) Decode(tokens []int32) (string, error) {
	ints := make([]int, len(tokens))
	for i, tok := range tokens {
		ints[i] = int(tok)
	}
	return e.enc.Decode(ints), nil
}

// Count returns the number of tokens text encodes to.
func (e *Encoding) Count(text string) int {
	return len(e.enc.Encode(text, nil, nil))
}
