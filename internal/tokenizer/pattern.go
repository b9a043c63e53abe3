package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Split patterns used to pre-tokenize text into chunks.
//
// Both need lookahead, which Go's RE2-based regexp does not support, so
// they are compiled with regexp2. The GPT-4 rule uses possessive runs in
// its original form; here they are written as atomic groups.
const (
	// GPT2SplitPattern is the pre-tokenization rule of GPT-2.
	GPT2SplitPattern = `'(?:[sdmt]|ll|ve|re)| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`

	// GPT4SplitPattern is the pre-tokenization rule of GPT-4 (cl100k_base).
	GPT4SplitPattern = `'(?i:[sdmt]|ll|ve|re)|(?>[^\r\n\p{L}\p{N}]?)\p{L}+|\p{N}{1,3}| ?(?>[^\s\p{L}\p{N}]+)[\r\n]*|\s*[\r\n]|\s+(?!\S)|\s+`
)

// ResolvePattern maps a preset name ("gpt2", "gpt4") to its expression.
// Any other value is returned unchanged.
func ResolvePattern(nameOrExpr string) string {
	switch strings.ToLower(nameOrExpr) {
	case "gpt2":
		return GPT2SplitPattern
	case "gpt4":
		return GPT4SplitPattern
	default:
		return nameOrExpr
	}
}

// SplitPattern partitions text into chunks that are encoded independently.
//
// A pattern without a compiled expression keeps the whole text as a single
// chunk.
type SplitPattern struct {
	expr string
	re   *regexp2.Regexp
}

// CompilePattern compiles a split expression.
//
// The expression is stored on a single line of the model file, so it must
// not contain line breaks.
func CompilePattern(expr string) (*SplitPattern, error) {
	if expr == "" {
		return &SplitPattern{}, nil
	}
	if strings.ContainsAny(expr, "\r\n") {
		return nil, fmt.Errorf("%w: expression must be single-line", ErrInvalidPattern)
	}
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return &SplitPattern{expr: expr, re: re}, nil
}

// storedPattern keeps expr for saving without compiling it. Splitting with
// it returns the whole text.
func storedPattern(expr string) *SplitPattern {
	return &SplitPattern{expr: expr}
}

// String returns the source expression.
func (p *SplitPattern) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Split returns the successive matches of the pattern in text.
//
// Text between matches is dropped, as with any find-all; the presets match
// every character so nothing is lost with them.
func (p *SplitPattern) Split(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	if p == nil || p.re == nil {
		return []string{text}, nil
	}

	offsets := runeOffsets(text)
	var chunks []string

	m, err := p.re.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = p.re.FindNextMatch(m) {
		if m.Length == 0 {
			continue
		}
		chunks = append(chunks, text[offsets[m.Index]:offsets[m.Index+m.Length]])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}
	return chunks, nil
}

// runeOffsets maps rune indexes (as reported by regexp2) to byte offsets.
// The extra final entry is len(s). Invalid bytes count as one rune each,
// matching the []rune conversion regexp2 performs.
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return append(offsets, len(s))
}
