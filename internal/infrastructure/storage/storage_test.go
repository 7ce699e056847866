package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
	apperrors "github.com/alexisbeaulieu97/flashgenie/pkg/errors"
)

func exerciseStore(t *testing.T, store ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "flashcardGenieTheme")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "flashcardGenieTheme", "dark"))
	require.NoError(t, store.Set(ctx, "other", "value"))
	require.NoError(t, store.Set(ctx, "flashcardGenieTheme", "light"))

	value, found, err := store.Get(ctx, "flashcardGenieTheme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "light", value)

	value, found, err = store.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", value)
}

func TestBackendsRoundTrip(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{BackendFile, BackendSQLite, BackendMemory} {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			t.Parallel()
			store, closer, err := Open(backend, filepath.Join(t.TempDir(), "prefs", "store"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = closer.Close() })
			exerciseStore(t, store)
		})
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	t.Parallel()

	_, _, err := Open("redis", "")
	assert.ErrorContains(t, err, "redis")
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, NewFileStore(path).Set(context.Background(), "flashcardGenieTheme", "dark"))

	value, found, err := NewFileStore(path).Get(context.Background(), "flashcardGenieTheme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", value)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not be left behind")
}

func TestFileStoreCorruptDocumentIsStorageError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewFileStore(path)

	_, _, err := store.Get(context.Background(), "flashcardGenieTheme")
	var storageErr *apperrors.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "get", storageErr.Op)

	err = store.Set(context.Background(), "flashcardGenieTheme", "dark")
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "set", storageErr.Op)
}

func TestSQLiteStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.db")
	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(context.Background(), "flashcardGenieTheme", "dark"))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	value, found, err := second.Get(context.Background(), "flashcardGenieTheme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", value)
}

func TestMemoryStoreFailureInjection(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(map[string]string{"flashcardGenieTheme": "dark"})
	store.GetErr = errors.New("quota exceeded")
	store.SetErr = errors.New("read only")

	_, found, err := store.Get(context.Background(), "flashcardGenieTheme")
	assert.False(t, found)
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Error(t, store.Set(context.Background(), "flashcardGenieTheme", "light"))
	assert.Equal(t, map[string]string{"flashcardGenieTheme": "dark"}, store.Snapshot())
}
