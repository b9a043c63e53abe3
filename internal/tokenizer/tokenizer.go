package tokenizer

// Tokenizer is the core interface for trainable text tokenization.
//
// BasicTokenizer and RegexTokenizer implement this interface.
type Tokenizer interface {
	// Train learns merges from text until the vocabulary reaches vocabSize
	// entries or no pair is left to merge.
	Train(text string, vocabSize int) error

	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the total vocabulary size.
	VocabSize() int
}

// Encoder converts text to token IDs.
type Encoder interface {
	Encode(text string) ([]int32, error)
}

// Persister saves and loads models in the two-file text format.
type Persister interface {
	// SaveModel writes prefix.model and prefix.vocab.
	SaveModel(prefix string) error

	// LoadModel replaces the current model with the one in a .model file.
	LoadModel(path string) error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role specifies the message role ("system", "user", "assistant").
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// ChatTemplate formats messages for conversational models.
type ChatTemplate interface {
	// Apply formats a sequence of messages into a prompt string.
	Apply(messages []ChatMessage) string

	// Name returns the template name (e.g., "ChatML", "LLaMA").
	Name() string

	// SpecialTokens returns the marker strings the template emits, which
	// must be registered as special tokens to be encoded as single IDs.
	SpecialTokens() []string
}

var (
	_ Tokenizer = (*BasicTokenizer)(nil)
	_ Tokenizer = (*RegexTokenizer)(nil)
	_ Persister = (*BasicTokenizer)(nil)
	_ Persister = (*RegexTokenizer)(nil)
)
