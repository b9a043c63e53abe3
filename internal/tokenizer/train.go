package tokenizer

import "fmt"

// learnMerges runs the BPE training loop over independent sequences.
//
// Each round counts adjacent pairs within every sequence, mints a new token
// for the most frequent pair and rewrites all sequences with it. Training
// stops early, without error, once no sequence has a pair left.
func learnMerges(seqs [][]int32, numMerges int) (*MergeTable, Vocabulary) {
	merges := NewMergeTable()
	vocab := leafVocabulary()

	for i := 0; i < numMerges; i++ {
		counts := make(map[Pair]int)
		for _, seq := range seqs {
			CountPairs(seq, counts)
		}

		p, ok := mostFrequent(counts)
		if !ok {
			break
		}

		id := merges.Add(p)
		vocab[id] = concat(vocab[p.First], vocab[p.Second])
		for j, seq := range seqs {
			seqs[j] = Merge(seq, p, id)
		}
	}

	return merges, vocab
}

// mostFrequent returns the pair with the highest count. Ties go to the
// lexicographically smallest pair so results never depend on map order.
func mostFrequent(counts map[Pair]int) (Pair, bool) {
	var (
		best      Pair
		bestCount int
	)
	for p, c := range counts {
		if c > bestCount || (c == bestCount && p.Less(best)) {
			best, bestCount = p, c
		}
	}
	return best, bestCount > 0
}

// checkVocabSize validates a requested vocabulary size and returns the
// number of merges to learn.
func checkVocabSize(vocabSize int) (int, error) {
	if vocabSize < leafCount {
		return 0, fmt.Errorf("%w: got %d", ErrVocabSizeTooSmall, vocabSize)
	}
	return vocabSize - leafCount, nil
}
