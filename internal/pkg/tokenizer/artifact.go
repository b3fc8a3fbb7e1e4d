package tokenizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrInvalidArtifact = errors.New("tokenizer: artifact needs a positive max_length and a tokenizer")

// artifact bundles the tokenizer with the sequence length the model was
// trained on.
type artifact struct {
	MaxLength int             `json:"max_length"`
	Tokenizer json.RawMessage `json:"tokenizer"`
}

// LoadArtifact reads {"max_length": N, "tokenizer": <to_json output>}. The
// tokenizer may be embedded as an object or as the JSON string to_json
// returns.
func LoadArtifact(r io.Reader) (*Tokenizer, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("tokenizer: decode artifact: %w", err)
	}
	if a.MaxLength <= 0 || len(a.Tokenizer) == 0 || string(a.Tokenizer) == "null" {
		return nil, ErrInvalidArtifact
	}

	doc := []byte(a.Tokenizer)
	if doc[0] == '"' {
		var inner string
		if err := json.Unmarshal(doc, &inner); err != nil {
			return nil, fmt.Errorf("tokenizer: decode artifact: %w", err)
		}
		doc = []byte(inner)
	}

	return Load(bytes.NewReader(doc), a.MaxLength)
}
