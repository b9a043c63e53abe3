// Package tokenizer implements byte-level Byte-Pair Encoding.
//
// A tokenizer starts with the 256 byte tokens and learns merges from a
// training corpus: every round, the most frequent adjacent pair of tokens
// becomes a new token. Encoding replays the merges greedily, earliest
// learned first, and decoding concatenates the bytes behind each token.
//
// Two variants are provided:
//   - BasicTokenizer: works on the raw bytes of the whole text.
//   - RegexTokenizer: splits text with a pattern (GPT-2 or GPT-4 style, or
//     custom) before merging, so tokens never cross chunk boundaries, and
//     supports special tokens such as <|endoftext|>.
//
// Models are stored as a line-oriented .model file and a human-readable
// .vocab file:
//
//	minbpe v1
//	<split pattern>
//	<number of special tokens>
//	<token> <id>
//	<first> <second>
//
// Example usage:
//
//	tok, err := tokenizer.NewRegexTokenizer(tokenizer.GPT4SplitPattern)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Learn 256 merges
//	if err := tok.Train(corpus, 512); err != nil {
//	    log.Fatal(err)
//	}
//	if err := tok.RegisterSpecialTokens(map[string]int32{"<|endoftext|>": 512}); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode and decode
//	ids, err := tok.EncodeWithMode("hello world<|endoftext|>", tokenizer.AllowAll)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := tok.Decode(ids)
//
//	// Persist
//	if err := tok.SaveModel("out/tok"); err != nil {
//	    log.Fatal(err)
//	}
package tokenizer
