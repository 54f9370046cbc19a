package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := NewFileStore(path)

	pair := Pair{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, store.Save(t.Context(), pair))

	loaded, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, pair, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreOverwrite(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))

	require.NoError(t, store.Save(t.Context(), Pair{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, store.Save(t.Context(), Pair{AccessToken: "a2", RefreshToken: "r1"}))

	loaded, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, Pair{AccessToken: "a2", RefreshToken: "r1"}, loaded)
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))

	_, err := store.Load(t.Context())

	assert.ErrorIs(t, err, ErrNoTokens)
}

func TestFileStoreLoadEmptyPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	_, err := NewFileStore(path).Load(t.Context())

	assert.ErrorIs(t, err, ErrNoTokens)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(t.Context(), Pair{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, store.Clear(t.Context()))

	_, err := store.Load(t.Context())
	assert.ErrorIs(t, err, ErrNoTokens)

	// Clearing an already-empty store is not an error.
	require.NoError(t, store.Clear(t.Context()))
}
