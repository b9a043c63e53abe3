// Package main provides the bpe command line tool.
//
// Usage:
//
//	bpe train -corpus input.txt -vocab-size 1024 -pattern gpt4 -out tok
//	bpe train -config train.yaml
//	bpe encode -model tok.model "some text"
//	bpe encode -model tok.model -chat chatml < messages.json
//	bpe decode -model tok.model 256 300 12
//	bpe encode -encoding cl100k_base "some text"
//	bpe compare -model tok.model -encoding cl100k_base corpus.txt
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/born-ml/bpe/internal/config"
	"github.com/born-ml/bpe/internal/corpus"
	"github.com/born-ml/bpe/internal/parallel"
	"github.com/born-ml/bpe/internal/reference"
	"github.com/born-ml/bpe/internal/tokenizer"
)

const version = "v0.1.0"

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: bpe <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  train      Train a tokenizer and write .model and .vocab files")
	fmt.Fprintln(os.Stderr, "  encode     Encode text to token IDs (JSON)")
	fmt.Fprintln(os.Stderr, "  decode     Decode token IDs to text")
	fmt.Fprintln(os.Stderr, "  compare    Compare token counts with a reference encoding")
	fmt.Fprintln(os.Stderr, "  version    Show version")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bpe: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "train":
		err = runTrain(args)
	case "encode":
		err = runEncode(args)
	case "decode":
		err = runDecode(args)
	case "compare":
		err = runCompare(args)
	case "version":
		fmt.Printf("bpe %s\n", version)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

// trainFlags holds the train subcommand flags.
type trainFlags struct {
	config    string
	corpus    string
	vocabSize int
	pattern   string
	out       string
	basic     bool
	normalize string
}

func newTrainFlagSet(tf *trainFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.StringVar(&tf.config, "config", "", "YAML training config")
	fs.StringVar(&tf.corpus, "corpus", "", "comma-separated training text files")
	fs.IntVar(&tf.vocabSize, "vocab-size", 0, "target vocabulary size (>= 256)")
	fs.StringVar(&tf.pattern, "pattern", "", `split pattern: "gpt2", "gpt4" or an expression`)
	fs.StringVar(&tf.out, "out", "", "output file prefix")
	fs.BoolVar(&tf.basic, "basic", false, "train on raw bytes without a split pattern")
	fs.StringVar(&tf.normalize, "normalize", "", "corpus normalization: none, nfc or nfkc")
	return fs
}

// trainConfig builds the training config from the optional -config file
// and the flags in args. Flags that were set explicitly win over the file.
func trainConfig(args []string) (*config.Config, error) {
	var tf trainFlags
	fs := newTrainFlagSet(&tf)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if tf.config != "" {
		var err error
		if cfg, err = config.Load(tf.config); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "corpus":
			cfg.Corpus = strings.Split(tf.corpus, ",")
		case "vocab-size":
			cfg.VocabSize = tf.vocabSize
		case "pattern":
			cfg.Pattern = tf.pattern
		case "out":
			cfg.Output = tf.out
		case "basic":
			cfg.Basic = tf.basic
		case "normalize":
			cfg.Normalize = tf.normalize
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Corpus) == 0 {
		return nil, errors.New("no corpus given (use -corpus or the config file)")
	}
	return cfg, nil
}

func runTrain(args []string) error {
	cfg, err := trainConfig(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	form, err := corpus.ParseForm(cfg.Normalize)
	if err != nil {
		return err
	}
	text, err := corpus.Read(cfg.Corpus, form)
	if err != nil {
		return err
	}

	tok, err := newTokenizer(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := tok.Train(text, cfg.VocabSize); err != nil {
		return err
	}
	log.Printf("trained on %d bytes in %s, vocabulary size %d", len(text), time.Since(start).Round(time.Millisecond), tok.VocabSize())

	if err := tok.SaveModel(cfg.Output); err != nil {
		return err
	}
	log.Printf("wrote %s.model and %s.vocab", cfg.Output, cfg.Output)
	return nil
}

// trainable is what runTrain needs from either tokenizer kind.
type trainable interface {
	tokenizer.Tokenizer
	tokenizer.Persister
}

func newTokenizer(cfg *config.Config) (trainable, error) {
	if cfg.Basic {
		return tokenizer.NewBasicTokenizer(), nil
	}
	tok, err := tokenizer.NewRegexTokenizer(tokenizer.ResolvePattern(cfg.Pattern))
	if err != nil {
		return nil, err
	}
	if len(cfg.SpecialTokens) > 0 {
		if err := tok.RegisterSpecialTokens(cfg.SpecialTokens); err != nil {
			return nil, err
		}
	}
	return tok, nil
}

// loadModel loads any .model file. A model trained without a pattern
// stores an empty one, so the whole text is one chunk and encoding
// matches BasicTokenizer.
func loadModel(path string) (*tokenizer.RegexTokenizer, error) {
	if path == "" {
		return nil, errors.New("-model is required")
	}
	tok, err := tokenizer.NewRegexTokenizer("")
	if err != nil {
		return nil, err
	}
	if err := tok.LoadModel(path); err != nil {
		return nil, err
	}
	return tok, nil
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	modelPath := fs.String("model", "", "path to a .model file")
	encoding := fs.String("encoding", "", "encode with a reference encoding (cl100k_base, p50k_base, r50k_base) instead of a model")
	modeName := fs.String("mode", "none-raise", "special tokens: all, none or none-raise")
	chat := fs.String("chat", "", "read JSON chat messages from stdin and apply this template (chatml, llama, mistral)")
	lines := fs.Bool("lines", false, "encode each input line separately")
	_ = fs.Parse(args)

	if *encoding != "" {
		if *modelPath != "" || *chat != "" {
			return errors.New("-encoding cannot be combined with -model or -chat")
		}
		ref, err := reference.New(*encoding)
		if err != nil {
			return err
		}
		return encodeInput(ref, fs.Args(), *lines)
	}

	tok, err := loadModel(*modelPath)
	if err != nil {
		return err
	}

	if *chat != "" {
		return encodeChat(tok, *chat)
	}

	mode, err := tokenizer.ParseSpecialTokenMode(*modeName)
	if err != nil {
		return err
	}
	return encodeInput(modeEncoder{tok: tok, mode: mode}, fs.Args(), *lines)
}

// encodeInput encodes the positional arguments (or stdin) and writes the
// IDs as JSON, one array per line when lines is set.
func encodeInput(enc tokenizer.Encoder, args []string, lines bool) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	if lines {
		batch, err := tokenizer.EncodeBatch(enc, strings.Split(strings.TrimSuffix(text, "\n"), "\n"), parallel.DefaultConfig())
		if err != nil {
			return err
		}
		return writeJSON(batch)
	}

	ids, err := enc.Encode(text)
	if err != nil {
		return err
	}
	return writeJSON(ids)
}

// modeEncoder adapts EncodeWithMode to the Encoder interface.
type modeEncoder struct {
	tok  *tokenizer.RegexTokenizer
	mode tokenizer.SpecialTokenMode
}

func (e modeEncoder) Encode(text string) ([]int32, error) {
	return e.tok.EncodeWithMode(text, e.mode)
}

func encodeChat(tok *tokenizer.RegexTokenizer, name string) error {
	tmpl, err := tokenizer.GetChatTemplate(name)
	if err != nil {
		return err
	}

	var messages []tokenizer.ChatMessage
	if err := json.NewDecoder(os.Stdin).Decode(&messages); err != nil {
		return fmt.Errorf("failed to read chat messages: %w", err)
	}

	// Models trained without the markers get them appended for this run.
	if err := tokenizer.ReserveChatTokens(tok, tmpl); err != nil {
		return err
	}
	ids, err := tokenizer.EncodeChat(tok, tmpl, messages)
	if err != nil {
		return err
	}
	return writeJSON(ids)
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	modelPath := fs.String("model", "", "path to a .model file")
	encoding := fs.String("encoding", "", "decode with a reference encoding instead of a model")
	_ = fs.Parse(args)

	dec, err := openDecoder(*modelPath, *encoding)
	if err != nil {
		return err
	}

	var ids []int32
	if fs.NArg() > 0 {
		for _, arg := range fs.Args() {
			id, err := strconv.ParseInt(arg, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid token id %q: %w", arg, err)
			}
			ids = append(ids, int32(id))
		}
	} else if err := json.NewDecoder(os.Stdin).Decode(&ids); err != nil {
		return fmt.Errorf("failed to read token ids: %w", err)
	}

	text, err := dec.Decode(ids)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

// decoder is implemented by trained models and reference encodings.
type decoder interface {
	Decode(tokens []int32) (string, error)
}

func openDecoder(modelPath, encoding string) (decoder, error) {
	if encoding == "" {
		return loadModel(modelPath)
	}
	if modelPath != "" {
		return nil, errors.New("-encoding cannot be combined with -model")
	}
	return reference.New(encoding)
}

func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	modelPath := fs.String("model", "", "path to a .model file")
	encoding := fs.String("encoding", reference.EncodingCL100kBase, "reference encoding (cl100k_base, p50k_base, r50k_base)")
	_ = fs.Parse(args)

	tok, err := loadModel(*modelPath)
	if err != nil {
		return err
	}
	ref, err := reference.New(*encoding)
	if err != nil {
		return err
	}

	var text string
	if fs.NArg() > 0 {
		if text, err = corpus.Read(fs.Args(), corpus.FormNone); err != nil {
			return err
		}
	} else if text, err = readInput(nil); err != nil {
		return err
	}

	c, err := reference.Compare(modeEncoder{tok: tok, mode: tokenizer.AllowAll}, ref, text)
	if err != nil {
		return err
	}
	return writeJSON(struct {
		reference.Comparison
		BytesPerToken          float64 `json:"bytes_per_token"`
		ReferenceBytesPerToken float64 `json:"reference_bytes_per_token"`
		Relative               float64 `json:"relative"`
	}{c, c.BytesPerToken(), c.ReferenceBytesPerToken(), c.Relative()})
}

// readInput joins the positional arguments with spaces, or reads stdin
// when there are none.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
