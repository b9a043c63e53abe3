package tokenizer

import (
	"fmt"
)

// BasicTokenizer is a byte-level BPE tokenizer that works on the raw
// bytes of the whole text. It does not pre-split text and does not encode
// special tokens, although it decodes the ones stored in a loaded model.
type BasicTokenizer struct {
	st *state
}

// NewBasicTokenizer creates an untrained tokenizer with the 256 byte tokens.
func NewBasicTokenizer() *BasicTokenizer {
	st, _ := emptyState(nil, 0) // Cannot fail without a cache.
	return &BasicTokenizer{st: st}
}

// Train learns vocabSize-256 merges from text.
func (b *BasicTokenizer) Train(text string, vocabSize int) error {
	numMerges, err := checkVocabSize(vocabSize)
	if err != nil {
		return err
	}

	merges, vocab := learnMerges([][]int32{bytesToIDs([]byte(text))}, numMerges)
	st, err := newState(nil, merges, vocab, b.st.specials, 0)
	if err != nil {
		return err
	}
	b.st = st
	return nil
}

// Encode converts text to token IDs.
func (b *BasicTokenizer) Encode(text string) ([]int32, error) {
	return b.st.encodeChunk(bytesToIDs([]byte(text))), nil
}

// Decode converts token IDs back to text.
func (b *BasicTokenizer) Decode(tokens []int32) (string, error) {
	return b.st.decode(tokens)
}

// DecodeBytes converts token IDs back to raw bytes.
func (b *BasicTokenizer) DecodeBytes(tokens []int32) ([]byte, error) {
	return b.st.decodeBytes(tokens)
}

// VocabSize returns the number of known token IDs.
func (b *BasicTokenizer) VocabSize() int {
	return len(b.st.vocab)
}

// Merges returns the learned merges in priority order.
func (b *BasicTokenizer) Merges() []Pair {
	return b.st.merges.Pairs()
}

// SaveModel writes prefix.model and prefix.vocab.
func (b *BasicTokenizer) SaveModel(prefix string) error {
	return saveModel(prefix, b.st)
}

// LoadModel replaces the current model with the one stored at path.
// The stored split pattern is kept uncompiled so that saving the model
// again is lossless; it is never used for encoding.
func (b *BasicTokenizer) LoadModel(path string) error {
	mf, err := loadModelFile(path)
	if err != nil {
		return err
	}
	st, err := mf.buildState(storedPattern(mf.pattern), 0)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	b.st = st
	return nil
}
