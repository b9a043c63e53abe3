// Package tokenizer provides trainable byte-level BPE tokenization.
//
// This package wraps the internal tokenizer implementations and provides
// a clean public API for training, encoding and persisting tokenizers.
//
// Supported tokenizers:
//   - Basic: BPE over the raw bytes of the whole text
//   - Regex: BPE inside the chunks of a split pattern (GPT-2, GPT-4), with special tokens
//   - Chat Templates: Format conversational messages
//
// Example usage:
//
//	import "github.com/born-ml/bpe/tokenizer"
//
//	// Train on a corpus
//	tok, err := tokenizer.NewRegex(tokenizer.GPT4SplitPattern)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tok.Train(corpus, 1024); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text
//	tokens, err := tok.Encode("Hello, world!")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decode tokens
//	text, err := tok.Decode(tokens)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Persist as tok.model and tok.vocab
//	if err := tok.SaveModel("tok"); err != nil {
//	    log.Fatal(err)
//	}
package tokenizer

import (
	"github.com/born-ml/bpe/internal/parallel"
	"github.com/born-ml/bpe/internal/tokenizer"
)

// Tokenizer is the core interface for trainable text tokenization.
//
// All tokenizer implementations must implement this interface.
type Tokenizer = tokenizer.Tokenizer

// Encoder converts text to token IDs.
type Encoder = tokenizer.Encoder

// BasicTokenizer runs BPE over the raw bytes of the whole text.
type BasicTokenizer = tokenizer.BasicTokenizer

// RegexTokenizer runs BPE inside the chunks of a split pattern and
// supports special tokens.
type RegexTokenizer = tokenizer.RegexTokenizer

// Pair is two adjacent token IDs that a merge replaces.
type Pair = tokenizer.Pair

// SpecialTokenMode selects how special tokens are treated when encoding.
type SpecialTokenMode = tokenizer.SpecialTokenMode

// Option configures a RegexTokenizer.
type Option = tokenizer.Option

// ChatMessage represents a single message in a conversation.
type ChatMessage = tokenizer.ChatMessage

// ChatTemplate formats messages for conversational models.
type ChatTemplate = tokenizer.ChatTemplate

// FormatError describes a malformed model file field.
type FormatError = tokenizer.FormatError

// Special token modes.
const (
	DisallowAndFailIfPresent = tokenizer.DisallowAndFailIfPresent
	AllowAll                 = tokenizer.AllowAll
	Disallow                 = tokenizer.Disallow
)

// Split patterns.
const (
	GPT2SplitPattern = tokenizer.GPT2SplitPattern
	GPT4SplitPattern = tokenizer.GPT4SplitPattern
)

// Errors returned by tokenizers; test with errors.Is.
var (
	ErrVocabSizeTooSmall   = tokenizer.ErrVocabSizeTooSmall
	ErrInvalidToken        = tokenizer.ErrInvalidToken
	ErrSpecialTokenPresent = tokenizer.ErrSpecialTokenPresent
	ErrUnregisteredSpecial = tokenizer.ErrUnregisteredSpecial
	ErrInvalidPattern      = tokenizer.ErrInvalidPattern
	ErrInvalidModelPath    = tokenizer.ErrInvalidModelPath
	ErrUnsupportedVersion  = tokenizer.ErrUnsupportedVersion
	ErrMalformedModel      = tokenizer.ErrMalformedModel
)

// NewBasic creates an untrained BasicTokenizer.
func NewBasic() *BasicTokenizer {
	return tokenizer.NewBasicTokenizer()
}

// NewRegex creates an untrained RegexTokenizer.
//
// pattern may be a preset name ("gpt2", "gpt4") or an expression; empty
// selects GPT-4.
func NewRegex(pattern string, opts ...Option) (*RegexTokenizer, error) {
	return tokenizer.NewRegexTokenizer(tokenizer.ResolvePattern(pattern), opts...)
}

// WithCacheSize sets how many encoded chunks a RegexTokenizer memoizes.
func WithCacheSize(n int) Option {
	return tokenizer.WithCacheSize(n)
}

// ParseSpecialTokenMode parses "all", "none" or "none_raise".
func ParseSpecialTokenMode(s string) (SpecialTokenMode, error) {
	return tokenizer.ParseSpecialTokenMode(s)
}

// EncodeBatch encodes texts concurrently, keeping their order.
func EncodeBatch(enc Encoder, texts []string) ([][]int32, error) {
	return tokenizer.EncodeBatch(enc, texts, parallel.DefaultConfig())
}

// NewChatMLTemplate creates a ChatML template (OpenAI, DeepSeek format).
//
// Format: <|im_start|>role\ncontent<|im_end|>.
func NewChatMLTemplate() ChatTemplate {
	return tokenizer.NewChatMLTemplate()
}

// NewLLaMATemplate creates a LLaMA chat template.
//
// Format: [INST] user message [/INST] assistant response.
func NewLLaMATemplate() ChatTemplate {
	return tokenizer.NewLLaMATemplate()
}

// NewMistralTemplate creates a Mistral chat template.
func NewMistralTemplate() ChatTemplate {
	return tokenizer.NewMistralTemplate()
}

// GetChatTemplate returns a chat template by name.
//
// Supported names: "chatml", "llama", "mistral".
func GetChatTemplate(name string) (ChatTemplate, error) {
	return tokenizer.GetChatTemplate(name)
}

// ReserveChatTokens registers the markers of tmpl as special tokens.
func ReserveChatTokens(tok *RegexTokenizer, tmpl ChatTemplate) error {
	return tokenizer.ReserveChatTokens(tok, tmpl)
}

// EncodeChat renders messages with tmpl and encodes the prompt.
func EncodeChat(tok *RegexTokenizer, tmpl ChatTemplate, messages []ChatMessage) ([]int32, error) {
	return tokenizer.EncodeChat(tok, tmpl, messages)
}
