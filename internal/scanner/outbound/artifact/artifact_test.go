package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/phishguard/internal/pkg/instrument"
	"github.com/shandysiswandi/phishguard/internal/pkg/storage"
)

func TestLoadTokenizer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "models"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models", "tokenizer.json"), []byte(`{
		"max_length": 3,
		"tokenizer": {"config": {"word_index": {"secure": 1, "bank": 2}}}
	}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models", "broken.json"), []byte(`{"max_length": 3}`), 0o600))

	store, err := storage.NewFile(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	ins := instrument.NewNoop()

	tok, err := LoadTokenizer(ctx, store, "models", "tokenizer.json", ins)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, tok.Encode("bank secure"))

	_, err = LoadTokenizer(ctx, store, "models", "missing.json", ins)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)

	_, err = LoadTokenizer(ctx, store, "models", "broken.json", ins)
	assert.Error(t, err)
}
