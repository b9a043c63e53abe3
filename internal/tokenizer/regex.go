package tokenizer

import (
	"fmt"
)

// RegexTokenizer is a byte-level BPE tokenizer that first splits text with
// a pattern, so merges never cross chunk boundaries, and that supports
// special tokens.
//
// Train, LoadModel and RegisterSpecialTokens must not run concurrently with
// any other method. Encode and Decode only read the current model and may
// be called from several goroutines.
type RegexTokenizer struct {
	st        *state
	cacheSize int
}

// Option configures a RegexTokenizer.
type Option func(*RegexTokenizer)

// WithCacheSize sets how many encoded chunks are memoized (0 disables).
func WithCacheSize(n int) Option {
	return func(t *RegexTokenizer) {
		t.cacheSize = n
	}
}

// NewRegexTokenizer creates an untrained tokenizer using the given split
// pattern. An empty pattern selects GPT4SplitPattern.
func NewRegexTokenizer(pattern string, opts ...Option) (*RegexTokenizer, error) {
	t := &RegexTokenizer{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(t)
	}

	if pattern == "" {
		pattern = GPT4SplitPattern
	}
	split, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}

	st, err := emptyState(split, t.cacheSize)
	if err != nil {
		return nil, err
	}
	t.st = st
	return t, nil
}

// Pattern returns the split expression in use.
func (t *RegexTokenizer) Pattern() string {
	return t.st.split.String()
}

// Train learns vocabSize-256 merges from text. Pairs are counted inside
// each chunk of the split pattern only. Registered special tokens are kept.
func (t *RegexTokenizer) Train(text string, vocabSize int) error {
	numMerges, err := checkVocabSize(vocabSize)
	if err != nil {
		return err
	}

	chunks, err := t.st.split.Split(text)
	if err != nil {
		return err
	}
	seqs := make([][]int32, len(chunks))
	for i, chunk := range chunks {
		seqs[i] = bytesToIDs([]byte(chunk))
	}

	merges, vocab := learnMerges(seqs, numMerges)
	st, err := newState(t.st.split, merges, vocab, t.st.specials, t.cacheSize)
	if err != nil {
		return err
	}
	t.st = st
	return nil
}

// RegisterSpecialTokens replaces the special token registry.
func (t *RegexTokenizer) RegisterSpecialTokens(tokens map[string]int32) error {
	specials, err := NewSpecialTokens(tokens)
	if err != nil {
		return err
	}
	t.st = t.st.withSpecials(specials)
	return nil
}

// SpecialTokens returns a copy of the registered special tokens.
func (t *RegexTokenizer) SpecialTokens() map[string]int32 {
	return t.st.specials.Map()
}

// Encode converts text to token IDs, failing if the text contains a
// registered special token.
func (t *RegexTokenizer) Encode(text string) ([]int32, error) {
	return t.EncodeWithMode(text, DisallowAndFailIfPresent)
}

// EncodeWithMode converts text to token IDs, treating special tokens as
// mode specifies.
func (t *RegexTokenizer) EncodeWithMode(text string, mode SpecialTokenMode) ([]int32, error) {
	st := t.st

	switch mode {
	case AllowAll:
		spans, err := st.specials.split(text)
		if err != nil {
			return nil, err
		}
		ids := []int32{}
		for _, sp := range spans {
			if sp.special {
				ids = append(ids, sp.id)
				continue
			}
			if ids, err = st.appendOrdinary(ids, sp.text); err != nil {
				return nil, err
			}
		}
		return ids, nil

	case DisallowAndFailIfPresent:
		if tok, found := st.specials.FindIn(text); found {
			return nil, fmt.Errorf("%w: %q", ErrSpecialTokenPresent, tok)
		}
		return st.appendOrdinary([]int32{}, text)

	case Disallow:
		return st.appendOrdinary([]int32{}, text)

	default:
		return nil, fmt.Errorf("unknown special token mode: %v", mode)
	}
}

// EncodeOrdinary encodes text ignoring special tokens.
func (t *RegexTokenizer) EncodeOrdinary(text string) ([]int32, error) {
	return t.EncodeWithMode(text, Disallow)
}

// Decode converts token IDs back to text.
func (t *RegexTokenizer) Decode(tokens []int32) (string, error) {
	return t.st.decode(tokens)
}

// DecodeBytes converts token IDs back to raw bytes.
func (t *RegexTokenizer) DecodeBytes(tokens []int32) ([]byte, error) {
	return t.st.decodeBytes(tokens)
}

// VocabSize returns the number of known token IDs, special tokens included.
func (t *RegexTokenizer) VocabSize() int {
	return len(t.st.vocab)
}

// Merges returns the learned merges in priority order.
func (t *RegexTokenizer) Merges() []Pair {
	return t.st.merges.Pairs()
}

// SaveModel writes prefix.model and prefix.vocab.
func (t *RegexTokenizer) SaveModel(prefix string) error {
	return saveModel(prefix, t.st)
}

// LoadModel replaces the current model, split pattern and special tokens
// with the ones stored at path. On error the current model is kept.
func (t *RegexTokenizer) LoadModel(path string) error {
	mf, err := loadModelFile(path)
	if err != nil {
		return err
	}
	st, err := mf.buildState(nil, t.cacheSize)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	t.st = st
	return nil
}
