// Package config loads tokenizer training configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/bpe/internal/corpus"
)

// Config describes one training run.
type Config struct {
	// Corpus lists the training text files.
	Corpus []string `yaml:"corpus"`

	// VocabSize is the target vocabulary size, at least 256.
	VocabSize int `yaml:"vocab_size"`

	// Pattern is "gpt2", "gpt4", a custom regexp2 expression, or "" for
	// the default. Ignored when Basic is set.
	Pattern string `yaml:"pattern"`

	// Basic trains on raw bytes without pattern splitting.
	Basic bool `yaml:"basic"`

	// SpecialTokens are registered after training.
	SpecialTokens map[string]int32 `yaml:"special_tokens"`

	// Normalize is the Unicode normalization applied to the corpus.
	Normalize string `yaml:"normalize"`

	// Output is the file prefix for the .model and .vocab files.
	Output string `yaml:"output"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		VocabSize:     512,
		Pattern:       "gpt4",
		SpecialTokens: map[string]int32{},
		Output:        "tokenizer",
	}
}

// Load reads a YAML file on top of DefaultConfig and validates it.
func Load(path string) (*Config, error) {
	//nolint:gosec // G304: Config path comes from the user.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that can be checked without training.
func (c *Config) Validate() error {
	var errs []error
	if c.VocabSize < 256 {
		errs = append(errs, fmt.Errorf("vocab_size must be at least 256, got %d", c.VocabSize))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output must not be empty"))
	}
	if _, err := corpus.ParseForm(c.Normalize); err != nil {
		errs = append(errs, err)
	}
	if c.Basic && len(c.SpecialTokens) > 0 {
		errs = append(errs, errors.New("special_tokens require a pattern tokenizer (basic: false)"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
