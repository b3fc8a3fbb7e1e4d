// Package tokenizer turns text into fixed-length integer sequences using a
// word index exported from a Keras Tokenizer (Tokenizer.to_json).
//
// Encode reproduces texts_to_sequences followed by
// pad_sequences(padding="post", truncating="post", value=0), which is what a
// sequence classifier trained in Keras expects as input.
package tokenizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultFilters are the characters Keras strips by default.
const DefaultFilters = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

var (
	ErrEmptyWordIndex = errors.New("tokenizer: word index is empty")
	ErrInvalidMaxLen  = errors.New("tokenizer: max length must be positive")
)

// Tokenizer maps words to indexes. The zero value is not usable; build one
// with New or Load.
type Tokenizer struct {
	wordIndex map[string]int
	numWords  int
	filters   string
	lower     bool
	split     string
	charLevel bool
	oovIndex  int
	maxLen    int
}

// Config mirrors the Keras tokenizer settings that affect encoding.
type Config struct {
	// NumWords keeps only indexes below it when positive.
	NumWords  int
	Filters   string
	Lower     bool
	Split     string
	CharLevel bool
	OOVToken  string
	// MaxLen is the output sequence length.
	MaxLen int
}

// New builds a tokenizer from an in-memory word index.
func New(wordIndex map[string]int, cfg Config) (*Tokenizer, error) {
	if len(wordIndex) == 0 {
		return nil, ErrEmptyWordIndex
	}
	if cfg.MaxLen <= 0 {
		return nil, ErrInvalidMaxLen
	}
	if cfg.Split == "" {
		cfg.Split = " "
	}

	t := &Tokenizer{
		wordIndex: wordIndex,
		numWords:  cfg.NumWords,
		filters:   cfg.Filters,
		lower:     cfg.Lower,
		split:     cfg.Split,
		charLevel: cfg.CharLevel,
		maxLen:    cfg.MaxLen,
	}
	if cfg.OOVToken != "" {
		t.oovIndex = wordIndex[cfg.OOVToken]
	}
	return t, nil
}

type kerasDocument struct {
	ClassName string      `json:"class_name"`
	Config    kerasConfig `json:"config"`
}

type kerasConfig struct {
	NumWords  *int            `json:"num_words"`
	Filters   *string         `json:"filters"`
	Lower     *bool           `json:"lower"`
	Split     *string         `json:"split"`
	CharLevel bool            `json:"char_level"`
	OOVToken  *string         `json:"oov_token"`
	WordIndex json.RawMessage `json:"word_index"`
}

// Load reads a Tokenizer.to_json document. Settings missing from the
// document take the Keras defaults.
func Load(r io.Reader, maxLen int) (*Tokenizer, error) {
	var doc kerasDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("tokenizer: decode document: %w", err)
	}

	wordIndex, err := decodeWordIndex(doc.Config.WordIndex)
	if err != nil {
		return nil, err
	}

	kc := doc.Config
	cfg := Config{
		Filters:   DefaultFilters,
		Lower:     true,
		Split:     " ",
		CharLevel: kc.CharLevel,
		MaxLen:    maxLen,
	}
	if kc.NumWords != nil {
		cfg.NumWords = *kc.NumWords
	}
	if kc.Filters != nil {
		cfg.Filters = *kc.Filters
	}
	if kc.Lower != nil {
		cfg.Lower = *kc.Lower
	}
	if kc.Split != nil {
		cfg.Split = *kc.Split
	}
	if kc.OOVToken != nil {
		cfg.OOVToken = *kc.OOVToken
	}

	return New(wordIndex, cfg)
}

// decodeWordIndex accepts either a JSON object or a string holding one,
// since to_json double-encodes the index.
func decodeWordIndex(raw json.RawMessage) (map[string]int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrEmptyWordIndex
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("tokenizer: decode word index: %w", err)
		}
		raw = json.RawMessage(inner)
	}

	var wordIndex map[string]int
	if err := json.Unmarshal(raw, &wordIndex); err != nil {
		return nil, fmt.Errorf("tokenizer: decode word index: %w", err)
	}
	return wordIndex, nil
}

// MaxLen is the length of every sequence Encode returns.
func (t *Tokenizer) MaxLen() int {
	return t.maxLen
}

// Sequence converts text to word indexes. Unknown words are dropped unless
// an OOV token is configured.
func (t *Tokenizer) Sequence(text string) []int {
	seq := make([]int, 0, t.maxLen)
	for _, w := range t.words(text) {
		i, ok := t.wordIndex[w]
		switch {
		case ok && (t.numWords <= 0 || i < t.numWords):
			seq = append(seq, i)
		case t.oovIndex != 0:
			seq = append(seq, t.oovIndex)
		}
	}
	return seq
}

// Encode returns the sequence for text cut or zero-padded at the end to
// MaxLen.
func (t *Tokenizer) Encode(text string) []int {
	seq := t.Sequence(text)
	if len(seq) >= t.maxLen {
		return seq[:t.maxLen]
	}
	return append(seq, make([]int, t.maxLen-len(seq))...)
}

func (t *Tokenizer) words(text string) []string {
	if t.lower {
		text = strings.ToLower(text)
	}

	if t.charLevel {
		out := make([]string, 0, len(text))
		for _, r := range text {
			out = append(out, string(r))
		}
		return out
	}

	if t.filters != "" {
		var sb strings.Builder
		sb.Grow(len(text))
		for _, r := range text {
			if strings.ContainsRune(t.filters, r) {
				sb.WriteString(t.split)
				continue
			}
			sb.WriteRune(r)
		}
		text = sb.String()
	}

	parts := strings.Split(text, t.split)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
