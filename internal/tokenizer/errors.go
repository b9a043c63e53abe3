package tokenizer

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrVocabSizeTooSmall   = errors.New("vocabulary size must be at least 256")
	ErrInvalidToken        = errors.New("invalid token id")
	ErrSpecialTokenPresent = errors.New("special token present in text")
	ErrUnregisteredSpecial = errors.New("special token not registered")
	ErrInvalidPattern      = errors.New("invalid split pattern")
	ErrInvalidModelPath    = errors.New("model file must end with " + modelExt)
	ErrUnsupportedVersion  = errors.New("unsupported model format version")
	ErrMalformedModel      = errors.New("malformed model file")
)

// FormatError describes a model file field that failed to parse.
type FormatError struct {
	Line    int    // 1-based line number in the model file
	Field   string // Field being parsed (e.g., "pattern", "special", "merge")
	Details string // Additional details
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: line %d: %s: %s", ErrMalformedModel, e.Line, e.Field, e.Details)
	}
	return fmt.Sprintf("%v: %s: %s", ErrMalformedModel, e.Field, e.Details)
}

// Unwrap allows errors.Is(err, ErrMalformedModel).
func (e *FormatError) Unwrap() error {
	return ErrMalformedModel
}
