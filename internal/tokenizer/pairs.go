package tokenizer

// Pair is an ordered pair of adjacent token IDs.
type Pair struct {
	First  int32
	Second int32
}

// Less orders pairs lexicographically (First, then Second).
func (p Pair) Less(o Pair) bool {
	if p.First != o.First {
		return p.First < o.First
	}
	return p.Second < o.Second
}

// CountPairs counts every adjacent pair in ids and adds the counts to counts.
//
// A nil counts map is allocated. Calling it once per chunk keeps pairs that
// would straddle two chunks out of the result.
//
// Example: [1, 2, 3, 1, 2] -> {(1,2): 2, (2,3): 1, (3,1): 1}.
func CountPairs(ids []int32, counts map[Pair]int) map[Pair]int {
	if counts == nil {
		counts = make(map[Pair]int)
	}
	for i := 0; i+1 < len(ids); i++ {
		counts[Pair{ids[i], ids[i+1]}]++
	}
	return counts
}

// Merge returns a copy of ids where every occurrence of p is replaced by id.
//
// The scan is left to right and non-overlapping: after a replacement the
// scan resumes after the consumed pair, so [1, 1, 1] with (1,1) becomes
// [id, 1].
func Merge(ids []int32, p Pair, id int32) []int32 {
	out := make([]int32, 0, len(ids))
	for i := 0; i < len(ids); {
		if i+1 < len(ids) && ids[i] == p.First && ids[i+1] == p.Second {
			out = append(out, id)
			i += 2
			continue
		}
		out = append(out, ids[i])
		i++
	}
	return out
}

// bytesToIDs converts raw bytes to leaf token IDs (0..255).
func bytesToIDs(b []byte) []int32 {
	ids := make([]int32, len(b))
	for i, c := range b {
		ids[i] = int32(c)
	}
	return ids
}
