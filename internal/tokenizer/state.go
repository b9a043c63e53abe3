package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of encoded chunks a RegexTokenizer keeps.
const DefaultCacheSize = 4096

// state is everything a tokenizer knows after training or loading.
//
// A state is never modified once built. Train, LoadModel and
// RegisterSpecialTokens build a new one and swap the pointer.
type state struct {
	split    *SplitPattern
	merges   *MergeTable
	vocab    Vocabulary
	specials *SpecialTokens

	// cache memoizes chunk encodings for this merge table. Nil disables it.
	cache *lru.Cache
}

// newState creates a state from its parts; vocab must already hold the
// leaf and merge entries. Special tokens are layered on top.
func newState(split *SplitPattern, merges *MergeTable, vocab Vocabulary, specials *SpecialTokens, cacheSize int) (*state, error) {
	s := &state{
		split:    split,
		merges:   merges,
		vocab:    vocab.withSpecials(specials),
		specials: specials,
	}
	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create chunk cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// emptyState is the state of an untrained tokenizer: leaves only.
func emptyState(split *SplitPattern, cacheSize int) (*state, error) {
	return newState(split, NewMergeTable(), leafVocabulary(), nil, cacheSize)
}

// withSpecials returns a copy of s using a different special token set.
// The chunk cache stays valid because merges are unchanged.
func (s *state) withSpecials(specials *SpecialTokens) *state {
	return &state{
		split:    s.split,
		merges:   s.merges,
		vocab:    BuildVocabulary(s.merges, specials),
		specials: specials,
		cache:    s.cache,
	}
}

// encodeChunk greedily applies the earliest-learned merge present in ids
// until none applies.
func (s *state) encodeChunk(ids []int32) []int32 {
	for len(ids) >= 2 {
		p, id, ok := s.merges.Lowest(CountPairs(ids, nil))
		if !ok {
			break
		}
		ids = Merge(ids, p, id)
	}
	return ids
}

// encodeCached encodes one chunk of text, consulting the cache first.
// The returned slice may be shared with the cache and must not be modified.
func (s *state) encodeCached(chunk string) []int32 {
	if s.cache != nil {
		if v, ok := s.cache.Get(chunk); ok {
			return v.([]int32) //nolint:forcetypeassert // Cache only holds []int32.
		}
	}
	ids := s.encodeChunk(bytesToIDs([]byte(chunk)))
	if s.cache != nil {
		s.cache.Add(chunk, ids)
	}
	return ids
}

// appendOrdinary splits text into chunks, encodes each chunk on its own
// and appends the results to ids.
func (s *state) appendOrdinary(ids []int32, text string) ([]int32, error) {
	chunks, err := s.split.Split(text)
	if err != nil {
		return nil, err
	}
	for _, chunk := range chunks {
		ids = append(ids, s.encodeCached(chunk)...)
	}
	return ids, nil
}

// decodeBytes concatenates the bytes behind every ID.
func (s *state) decodeBytes(ids []int32) ([]byte, error) {
	var out []byte
	for _, id := range ids {
		if b, ok := s.vocab[id]; ok {
			out = append(out, b...)
			continue
		}
		if tok, ok := s.specials.Token(id); ok {
			out = append(out, tok...)
			continue
		}
		return nil, fmt.Errorf("%w: %d", ErrInvalidToken, id)
	}
	return out, nil
}

// decode converts IDs to text. Every byte that does not start a valid
// UTF-8 sequence (e.g., a multi-byte rune cut in half) becomes one U+FFFD.
func (s *state) decode(ids []int32) (string, error) {
	b, err := s.decodeBytes(ids)
	if err != nil {
		return "", err
	}
	if utf8.Valid(b) {
		return string(b), nil
	}

	var sb strings.Builder
	sb.Grow(len(b) + 2)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String(), nil
}
