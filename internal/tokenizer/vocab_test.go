package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTable_Add(t *testing.T) {
	m := NewMergeTable()
	assert.Equal(t, int32(256), m.NextID())

	assert.Equal(t, int32(256), m.Add(Pair{97, 97}))
	assert.Equal(t, int32(257), m.Add(Pair{97, 98}))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, int32(258), m.NextID())

	id, ok := m.Lookup(Pair{97, 98})
	assert.True(t, ok)
	assert.Equal(t, int32(257), id)

	_, ok = m.Lookup(Pair{1, 2})
	assert.False(t, ok)

	p, ok := m.Pair(256)
	assert.True(t, ok)
	assert.Equal(t, Pair{97, 97}, p)

	_, ok = m.Pair(255)
	assert.False(t, ok)
	_, ok = m.Pair(258)
	assert.False(t, ok)

	assert.Equal(t, []Pair{{97, 97}, {97, 98}}, m.Pairs())
}

func TestMergeTable_Lowest(t *testing.T) {
	m := NewMergeTable()
	m.Add(Pair{1, 2}) // 256
	m.Add(Pair{3, 4}) // 257

	t.Run("picks earliest merge", func(t *testing.T) {
		p, id, ok := m.Lowest(map[Pair]int{{3, 4}: 5, {1, 2}: 1, {9, 9}: 7})
		require.True(t, ok)
		assert.Equal(t, Pair{1, 2}, p)
		assert.Equal(t, int32(256), id)
	})

	t.Run("ignores unknown pairs", func(t *testing.T) {
		_, _, ok := m.Lowest(map[Pair]int{{9, 9}: 7})
		assert.False(t, ok)
	})
}

func TestBuildVocabulary(t *testing.T) {
	m := NewMergeTable()
	m.Add(Pair{104, 105}) // 256 "hi"
	m.Add(Pair{256, 33})  // 257 "hi!"
	m.Add(Pair{257, 257}) // 258 "hi!hi!"
	specials, err := NewSpecialTokens(map[string]int32{"<|eot|>": 1000})
	require.NoError(t, err)

	vocab := BuildVocabulary(m, specials)

	for i := 0; i < 256; i++ {
		assert.Equal(t, []byte{byte(i)}, vocab[int32(i)])
	}
	assert.Equal(t, []byte("hi"), vocab[256])
	assert.Equal(t, []byte("hi!"), vocab[257])
	assert.Equal(t, []byte("hi!hi!"), vocab[258])
	assert.Equal(t, []byte("<|eot|>"), vocab[1000])
	assert.Len(t, vocab, 260)

	ids := vocab.IDs()
	assert.Equal(t, int32(0), ids[0])
	assert.Equal(t, int32(1000), ids[len(ids)-1])
}

func TestBuildVocabulary_NilSpecials(t *testing.T) {
	vocab := BuildVocabulary(NewMergeTable(), nil)
	assert.Len(t, vocab, 256)
}
