package tokenizer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// SpecialTokenMode selects how registered special tokens are treated by
// RegexTokenizer.EncodeWithMode.
type SpecialTokenMode int

const (
	// DisallowAndFailIfPresent rejects text that contains a special token
	// and otherwise encodes it as ordinary text.
	DisallowAndFailIfPresent SpecialTokenMode = iota

	// AllowAll encodes every registered special token as its reserved ID.
	AllowAll

	// Disallow ignores special tokens and encodes everything as ordinary text.
	Disallow
)

// String returns the mode name accepted by ParseSpecialTokenMode.
func (m SpecialTokenMode) String() string {
	switch m {
	case AllowAll:
		return "all"
	case Disallow:
		return "none"
	case DisallowAndFailIfPresent:
		return "none_raise"
	default:
		return fmt.Sprintf("SpecialTokenMode(%d)", int(m))
	}
}

// ParseSpecialTokenMode parses "all", "none" or "none_raise".
func ParseSpecialTokenMode(s string) (SpecialTokenMode, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "all":
		return AllowAll, nil
	case "none":
		return Disallow, nil
	case "none_raise", "":
		return DisallowAndFailIfPresent, nil
	default:
		return 0, fmt.Errorf("unknown special token mode: %s", s)
	}
}

// SpecialToken is a registered special string and its reserved ID.
type SpecialToken struct {
	Token string
	ID    int32
}

// SpecialTokens is a bidirectional registry of special tokens.
//
// A nil *SpecialTokens is a valid empty registry.
type SpecialTokens struct {
	byToken  map[string]int32
	byID     map[int32]string
	sorted   []SpecialToken
	splitter *regexp2.Regexp
}

// NewSpecialTokens builds a registry from a token -> ID mapping.
//
// Tokens must be non-empty and must not contain line breaks, since the
// model file stores one token per line.
func NewSpecialTokens(tokens map[string]int32) (*SpecialTokens, error) {
	s := &SpecialTokens{
		byToken: make(map[string]int32, len(tokens)),
		byID:    make(map[int32]string, len(tokens)),
		sorted:  make([]SpecialToken, 0, len(tokens)),
	}
	for tok, id := range tokens {
		if tok == "" || strings.ContainsAny(tok, "\r\n") {
			return nil, fmt.Errorf("special token %q: must be non-empty and single-line", tok)
		}
		s.byToken[tok] = id
		s.sorted = append(s.sorted, SpecialToken{Token: tok, ID: id})
	}
	sort.Slice(s.sorted, func(i, j int) bool {
		if s.sorted[i].ID != s.sorted[j].ID {
			return s.sorted[i].ID < s.sorted[j].ID
		}
		return s.sorted[i].Token < s.sorted[j].Token
	})
	for i := len(s.sorted) - 1; i >= 0; i-- {
		s.byID[s.sorted[i].ID] = s.sorted[i].Token
	}

	if len(s.sorted) > 0 {
		// Longest first, so a token that prefixes another never shadows it.
		alts := make([]string, len(s.sorted))
		for i, st := range s.sorted {
			alts[i] = st.Token
		}
		sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })
		for i, a := range alts {
			alts[i] = regexp2.Escape(a)
		}
		re, err := regexp2.Compile(strings.Join(alts, "|"), regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("failed to compile special token matcher: %w", err)
		}
		s.splitter = re
	}

	return s, nil
}

// Len returns the number of registered tokens.
func (s *SpecialTokens) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sorted)
}

// ID returns the reserved ID of tok.
func (s *SpecialTokens) ID(tok string) (int32, bool) {
	if s == nil {
		return 0, false
	}
	id, ok := s.byToken[tok]
	return id, ok
}

// Token returns the special string reserved for id.
func (s *SpecialTokens) Token(id int32) (string, bool) {
	if s == nil {
		return "", false
	}
	tok, ok := s.byID[id]
	return tok, ok
}

// Sorted returns the registered tokens ordered by ID.
func (s *SpecialTokens) Sorted() []SpecialToken {
	if s == nil {
		return nil
	}
	out := make([]SpecialToken, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// Map returns a copy of the token -> ID mapping.
func (s *SpecialTokens) Map() map[string]int32 {
	out := make(map[string]int32, s.Len())
	for _, st := range s.Sorted() {
		out[st.Token] = st.ID
	}
	return out
}

// FindIn returns the first registered token (by ID) that occurs in text.
func (s *SpecialTokens) FindIn(text string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, st := range s.sorted {
		if strings.Contains(text, st.Token) {
			return st.Token, true
		}
	}
	return "", false
}

// span is a piece of text that is either ordinary or one special token.
type span struct {
	text    string
	special bool
	id      int32
}

// split partitions text into ordinary and special spans, in order.
func (s *SpecialTokens) split(text string) ([]span, error) {
	if s.Len() == 0 || text == "" {
		if text == "" {
			return nil, nil
		}
		return []span{{text: text}}, nil
	}

	offsets := runeOffsets(text)
	var spans []span
	prev := 0

	m, err := s.splitter.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = s.splitter.FindNextMatch(m) {
		start, end := offsets[m.Index], offsets[m.Index+m.Length]
		if start > prev {
			spans = append(spans, span{text: text[prev:start]})
		}
		tok := text[start:end]
		spans = append(spans, span{text: tok, special: true, id: s.byToken[tok]})
		prev = end
	}
	if err != nil {
		return nil, fmt.Errorf("failed to match special tokens: %w", err)
	}
	if prev < len(text) {
		spans = append(spans, span{text: text[prev:]})
	}
	return spans, nil
}
