package tokenizer

import (
	"fmt"

	"github.com/born-ml/bpe/internal/parallel"
)

// EncodeBatch encodes every text with enc, spreading the work over
// goroutines as cfg allows. Results keep the input order.
//
// enc must not be retrained or reloaded while the batch runs.
func EncodeBatch(enc Encoder, texts []string, cfg parallel.Config) ([][]int32, error) {
	type item struct {
		idx  int
		text string
	}
	items := make([]item, len(texts))
	for i, text := range texts {
		items[i] = item{idx: i, text: text}
	}

	return parallel.Map(items, func(it item) ([]int32, error) {
		ids, err := enc.Encode(it.text)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", it.idx, err)
		}
		return ids, nil
	}, cfg)
}
