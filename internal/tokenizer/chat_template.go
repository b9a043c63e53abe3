package tokenizer

import (
	"fmt"
	"sort"
	"strings"
)

// Chat marker strings.
const (
	imStart = "<|im_start|>"
	imEnd   = "<|im_end|>"
	bos     = "<s>"
	eos     = "</s>"
)

// ChatMLTemplate implements the ChatML format used by OpenAI and DeepSeek.
//
// Format: <|im_start|>role\ncontent<|im_end|>.
type ChatMLTemplate struct{}

// NewChatMLTemplate creates a new ChatML template.
func NewChatMLTemplate() *ChatMLTemplate {
	return &ChatMLTemplate{}
}

// Apply formats messages in ChatML format and opens an assistant turn.
func (t *ChatMLTemplate) Apply(messages []ChatMessage) string {
	var sb strings.Builder
	for _, msg := range messages {
		sb.WriteString(imStart + msg.Role + "\n" + msg.Content + imEnd + "\n")
	}
	sb.WriteString(imStart + "assistant\n")
	return sb.String()
}

// Name returns the template name.
func (t *ChatMLTemplate) Name() string {
	return "ChatML"
}

// SpecialTokens returns the ChatML turn markers.
func (t *ChatMLTemplate) SpecialTokens() []string {
	return []string{imStart, imEnd}
}

// LLaMATemplate implements the LLaMA-2 chat format.
//
// Format: <s>[INST] user message [/INST] assistant response</s>.
type LLaMATemplate struct{}

// NewLLaMATemplate creates a new LLaMA chat template.
func NewLLaMATemplate() *LLaMATemplate {
	return &LLaMATemplate{}
}

// Apply formats messages in LLaMA format. A system message is folded
// into the first user turn.
func (t *LLaMATemplate) Apply(messages []ChatMessage) string {
	var (
		sb     strings.Builder
		system string
		turns  []ChatMessage
	)
	for _, msg := range messages {
		if msg.Role == "system" {
			system = msg.Content
			continue
		}
		turns = append(turns, msg)
	}

	sb.WriteString(bos)
	for i, msg := range turns {
		switch msg.Role {
		case "user":
			sb.WriteString("[INST] ")
			if i == 0 && system != "" {
				sb.WriteString("<<SYS>>\n" + system + "\n<</SYS>>\n\n")
			}
			sb.WriteString(msg.Content + " [/INST]")
		case "assistant":
			sb.WriteString(" " + msg.Content + eos + bos)
		}
	}
	return sb.String()
}

// Name returns the template name.
func (t *LLaMATemplate) Name() string {
	return "LLaMA"
}

// SpecialTokens returns the sequence markers.
func (t *LLaMATemplate) SpecialTokens() []string {
	return []string{bos, eos}
}

// MistralTemplate implements the Mistral instruct format.
//
// Like LLaMA, without a system block; a leading system message becomes
// its own instruction.
type MistralTemplate struct{}

// NewMistralTemplate creates a new Mistral chat template.
func NewMistralTemplate() *MistralTemplate {
	return &MistralTemplate{}
}

// Apply formats messages in Mistral format.
func (t *MistralTemplate) Apply(messages []ChatMessage) string {
	var sb strings.Builder
	sb.WriteString(bos)
	for i, msg := range messages {
		switch msg.Role {
		case "user":
			sb.WriteString("[INST] " + msg.Content + " [/INST]")
		case "assistant":
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(msg.Content + eos)
			if i < len(messages)-1 {
				sb.WriteString(bos)
			}
		case "system":
			if i == 0 {
				sb.WriteString("[INST] " + msg.Content + " [/INST]")
			}
		}
	}
	return sb.String()
}

// Name returns the template name.
func (t *MistralTemplate) Name() string {
	return "Mistral"
}

// SpecialTokens returns the sequence markers.
func (t *MistralTemplate) SpecialTokens() []string {
	return []string{bos, eos}
}

// GetChatTemplate returns a chat template by name.
func GetChatTemplate(name string) (ChatTemplate, error) {
	switch strings.ToLower(name) {
	case "chatml":
		return NewChatMLTemplate(), nil
	case "llama":
		return NewLLaMATemplate(), nil
	case "mistral":
		return NewMistralTemplate(), nil
	default:
		return nil, fmt.Errorf("unknown chat template: %s", name)
	}
}

// ReserveChatTokens registers the template markers that are not yet
// special tokens, giving them the IDs right after the current highest ID.
func ReserveChatTokens(tok *RegexTokenizer, tmpl ChatTemplate) error {
	specials := tok.SpecialTokens()
	next := int32(0)
	for id := range tok.st.vocab {
		if id >= next {
			next = id + 1
		}
	}

	markers := tmpl.SpecialTokens()
	sort.Strings(markers)
	for _, m := range markers {
		if _, ok := specials[m]; ok {
			continue
		}
		specials[m] = next
		next++
	}
	return tok.RegisterSpecialTokens(specials)
}

// EncodeChat renders messages with tmpl and encodes the prompt with every
// special token allowed. All template markers must be registered.
func EncodeChat(tok *RegexTokenizer, tmpl ChatTemplate, messages []ChatMessage) ([]int32, error) {
	for _, m := range tmpl.SpecialTokens() {
		if _, ok := tok.st.specials.ID(m); !ok {
			return nil, fmt.Errorf("%w: %s marker %q", ErrUnregisteredSpecial, tmpl.Name(), m)
		}
	}
	return tok.EncodeWithMode(tmpl.Apply(messages), AllowAll)
}
