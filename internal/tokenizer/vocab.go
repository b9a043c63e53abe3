package tokenizer

import "sort"

// leafCount is the number of fixed byte-level token IDs (0..255).
const leafCount = 256

// MergeTable is the ordered list of learned merges.
//
// The merge at position i produces token ID 256+i. Lower IDs were learned
// earlier and take priority during encoding.
type MergeTable struct {
	pairs []Pair
	ids   map[Pair]int32
}

// NewMergeTable creates an empty merge table.
func NewMergeTable() *MergeTable {
	return &MergeTable{
		ids: make(map[Pair]int32),
	}
}

// Add appends a merge and returns the ID assigned to it.
func (m *MergeTable) Add(p Pair) int32 {
	id := int32(leafCount + len(m.pairs)) //nolint:gosec // G115: merge count is bounded by vocab size.
	m.pairs = append(m.pairs, p)
	m.ids[p] = id
	return id
}

// Lookup returns the ID produced by merging p.
func (m *MergeTable) Lookup(p Pair) (int32, bool) {
	id, ok := m.ids[p]
	return id, ok
}

// Pair returns the pair that produced id, if id is a merge token.
func (m *MergeTable) Pair(id int32) (Pair, bool) {
	i := int(id) - leafCount
	if i < 0 || i >= len(m.pairs) {
		return Pair{}, false
	}
	return m.pairs[i], true
}

// Len returns the number of merges.
func (m *MergeTable) Len() int {
	return len(m.pairs)
}

// NextID returns the ID the next merge would receive.
func (m *MergeTable) NextID() int32 {
	return int32(leafCount + len(m.pairs)) //nolint:gosec // G115: merge count is bounded by vocab size.
}

// Pairs returns the merges in learned order.
func (m *MergeTable) Pairs() []Pair {
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Lowest returns the candidate pair with the smallest merge ID.
// Candidates missing from the table are ignored.
func (m *MergeTable) Lowest(candidates map[Pair]int) (Pair, int32, bool) {
	var (
		best   Pair
		bestID int32
		found  bool
	)
	for p := range candidates {
		id, ok := m.ids[p]
		if !ok {
			continue
		}
		if !found || id < bestID {
			best, bestID, found = p, id, true
		}
	}
	return best, bestID, found
}

// Vocabulary maps token IDs to the bytes they stand for.
type Vocabulary map[int32][]byte

// leafVocabulary returns the 256 single-byte entries.
func leafVocabulary() Vocabulary {
	vocab := make(Vocabulary, leafCount)
	for i := 0; i < leafCount; i++ {
		vocab[int32(i)] = []byte{byte(i)}
	}
	return vocab
}

// BuildVocabulary derives the vocabulary from merges and special tokens.
//
// Leaves come first, then merges in learned order, then special tokens,
// which win over any ID they collide with.
func BuildVocabulary(merges *MergeTable, specials *SpecialTokens) Vocabulary {
	vocab := leafVocabulary()
	for i, p := range merges.pairs {
		vocab[int32(leafCount+i)] = concat(vocab[p.First], vocab[p.Second]) //nolint:gosec // G115: bounded by vocab size.
	}
	return vocab.withSpecials(specials)
}

// withSpecials returns a copy of v extended with the special tokens.
func (v Vocabulary) withSpecials(specials *SpecialTokens) Vocabulary {
	out := make(Vocabulary, len(v)+specials.Len())
	for id, b := range v {
		out[id] = b
	}
	for _, st := range specials.Sorted() {
		out[st.ID] = []byte(st.Token)
	}
	return out
}

// IDs returns every ID in the vocabulary in ascending order.
func (v Vocabulary) IDs() []int32 {
	ids := make([]int32, 0, len(v))
	for id := range v {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
