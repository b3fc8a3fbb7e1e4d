package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kerasJSON = `{
  "class_name": "Tokenizer",
  "config": {
    "num_words": null,
    "filters": "!\"#$%&()*+,-./:;<=>?@[\\]^_` + "`" + `{|}~\t\n",
    "lower": true,
    "split": " ",
    "char_level": false,
    "oov_token": null,
    "document_count": 3,
    "word_index": "{\"http\": 1, \"www\": 2, \"com\": 3, \"paypal\": 4, \"login\": 5, \"secure\": 6}"
  }
}`

func TestLoad_DoubleEncodedIndex(t *testing.T) {
	tok, err := Load(strings.NewReader(kerasJSON), 8)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 4, 3, 5}, tok.Sequence("HTTP://www.PayPal.com/login?x=1"))
	assert.Equal(t, []int{1, 2, 4, 3, 5, 0, 0, 0}, tok.Encode("HTTP://www.PayPal.com/login?x=1"))
	assert.Equal(t, 8, tok.MaxLen())
}

func TestLoad_ObjectIndexAndDefaults(t *testing.T) {
	doc := `{"config":{"word_index":{"a":1,"b":2}}}`

	tok, err := Load(strings.NewReader(doc), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, tok.Encode("A-b.c a"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(strings.NewReader(`not json`), 4)
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`{"config":{}}`), 4)
	assert.ErrorIs(t, err, ErrEmptyWordIndex)

	_, err = Load(strings.NewReader(`{"config":{"word_index":{"a":1}}}`), 0)
	assert.ErrorIs(t, err, ErrInvalidMaxLen)
}

func TestTokenizer_NumWordsAndOOV(t *testing.T) {
	index := map[string]int{"<oov>": 1, "paypal": 2, "login": 3, "verify": 4}

	tok, err := New(index, Config{NumWords: 4, OOVToken: "<oov>", Filters: DefaultFilters, Lower: true, MaxLen: 5})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3, 1, 0}, tok.Encode("paypal unknown login verify"))

	tok, err = New(index, Config{NumWords: 4, Filters: DefaultFilters, Lower: true, MaxLen: 5})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 0, 0, 0}, tok.Encode("paypal unknown login verify"))
}

func TestTokenizer_CharLevel(t *testing.T) {
	tok, err := New(map[string]int{"a": 1, "b": 2, ".": 3}, Config{CharLevel: true, Lower: true, MaxLen: 3})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 2}, tok.Encode("A.Bab"))
}

func TestTokenizer_EmptyText(t *testing.T) {
	tok, err := New(map[string]int{"a": 1}, Config{MaxLen: 3})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0}, tok.Encode(""))
}
