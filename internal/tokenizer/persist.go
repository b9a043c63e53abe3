package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Model file layout:
//
//	minbpe v1
//	<split pattern>
//	<number of special tokens>
//	<token> <id>        (one line per special token)
//	<first> <second>    (one line per merge, in learned order)
//
// Merge destination IDs are not stored; line k of the merge section
// produces ID 256+k.
const (
	modelVersion = "minbpe v1"
	modelExt     = ".model"
	vocabExt     = ".vocab"
)

// modelFile is the parsed content of a .model file.
type modelFile struct {
	pattern  string
	specials map[string]int32
	merges   *MergeTable
}

// saveModel writes prefix.model and the human-readable prefix.vocab.
//
// Writes are not atomic: a failure may leave a partial file behind.
func saveModel(prefix string, s *state) error {
	if err := writeFile(prefix+modelExt, func(w *bufio.Writer) { writeModel(w, s) }); err != nil {
		return err
	}
	return writeFile(prefix+vocabExt, func(w *bufio.Writer) { writeVocab(w, s) })
}

// writeFile creates path and closes it on every exit path.
func writeFile(path string, fill func(w *bufio.Writer)) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(file)
	fill(w)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeModel writes the model file. Errors are sticky in w and surface on Flush.
func writeModel(w *bufio.Writer, s *state) {
	fmt.Fprintln(w, modelVersion)
	fmt.Fprintln(w, s.split.String())

	specials := s.specials.Sorted()
	fmt.Fprintln(w, len(specials))
	for _, st := range specials {
		fmt.Fprintf(w, "%s %d\n", st.Token, st.ID)
	}

	for _, p := range s.merges.pairs {
		fmt.Fprintf(w, "%d %d\n", p.First, p.Second)
	}
}

// writeVocab writes one line per token ID, annotating merge tokens with
// the two tokens they were built from.
func writeVocab(w *bufio.Writer, s *state) {
	for _, id := range s.vocab.IDs() {
		rendered := renderToken(s.vocab[id])
		if _, special := s.specials.Token(id); !special {
			if p, ok := s.merges.Pair(id); ok {
				fmt.Fprintf(w, "[%s][%s] -> [%s] %d\n",
					renderToken(s.vocab[p.First]), renderToken(s.vocab[p.Second]), rendered, id)
				continue
			}
		}
		fmt.Fprintf(w, "[%s] %d\n", rendered, id)
	}
}

// loadModelFile opens and parses a .model file.
func loadModelFile(path string) (*modelFile, error) {
	if !strings.HasSuffix(path, modelExt) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidModelPath, path)
	}

	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	mf, err := readModel(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return mf, nil
}

// readModel parses the model format from r.
//
//nolint:gocognit,gocyclo,cyclop // Line-oriented parser checks every field.
func readModel(r io.Reader) (*modelFile, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	next := func(field string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("failed to read %s: %w", field, err)
			}
			return "", &FormatError{Line: line + 1, Field: field, Details: "unexpected end of file"}
		}
		line++
		return strings.TrimSuffix(sc.Text(), "\r"), nil
	}

	version, err := next("version")
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(version); v != modelVersion {
		return nil, fmt.Errorf("%w: got %q, expected %q", ErrUnsupportedVersion, v, modelVersion)
	}

	pattern, err := next("pattern")
	if err != nil {
		return nil, err
	}

	countLine, err := next("special count")
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil || count < 0 {
		return nil, &FormatError{Line: line, Field: "special count", Details: fmt.Sprintf("not a count: %q", countLine)}
	}

	specials := make(map[string]int32, count)
	for i := 0; i < count; i++ {
		text, err := next("special")
		if err != nil {
			return nil, err
		}
		sep := strings.LastIndexByte(text, ' ')
		if sep <= 0 {
			return nil, &FormatError{Line: line, Field: "special", Details: fmt.Sprintf("expected \"<token> <id>\", got %q", text)}
		}
		id, err := strconv.ParseInt(strings.TrimSpace(text[sep+1:]), 10, 32)
		if err != nil {
			return nil, &FormatError{Line: line, Field: "special", Details: fmt.Sprintf("bad id: %v", err)}
		}
		specials[text[:sep]] = int32(id)
	}

	merges := NewMergeTable()
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			return nil, &FormatError{Line: line, Field: "merge", Details: fmt.Sprintf("expected \"<first> <second>\", got %q", sc.Text())}
		}
		var p Pair
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 32)
			if err != nil {
				return nil, &FormatError{Line: line, Field: "merge", Details: fmt.Sprintf("bad id: %v", err)}
			}
			if v < 0 || v >= int64(merges.NextID()) {
				return nil, &FormatError{Line: line, Field: "merge", Details: fmt.Sprintf("id %d is not defined yet", v)}
			}
			if i == 0 {
				p.First = int32(v)
			} else {
				p.Second = int32(v)
			}
		}
		if _, dup := merges.Lookup(p); dup {
			return nil, &FormatError{Line: line, Field: "merge", Details: fmt.Sprintf("duplicate merge (%d, %d)", p.First, p.Second)}
		}
		merges.Add(p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read merges: %w", err)
	}

	return &modelFile{
		pattern:  pattern,
		specials: specials,
		merges:   merges,
	}, nil
}

// buildState turns a parsed model into a state. split overrides the
// stored pattern when non-nil.
func (mf *modelFile) buildState(split *SplitPattern, cacheSize int) (*state, error) {
	if split == nil {
		var err error
		split, err = CompilePattern(mf.pattern)
		if err != nil {
			return nil, &FormatError{Field: "pattern", Details: err.Error()}
		}
	}
	specials, err := NewSpecialTokens(mf.specials)
	if err != nil {
		return nil, &FormatError{Field: "special", Details: err.Error()}
	}
	vocab := BuildVocabulary(mf.merges, nil)
	return newState(split, mf.merges, vocab, specials, cacheSize)
}
