package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), DefaultHistoryFile), nil)
	require.NoError(t, err)
	return store
}

func TestFileStore_CreatesEmptyFile(t *testing.T) {
	store := newTestFileStore(t)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	history, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestFileStore_SavePrependsAndPersists(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	require.NoError(t, store.Save(ctx, testItem("a", 1000, "ORD-1")))
	require.NoError(t, store.Save(ctx, testItem("b", 2000, "ORD-2")))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"), "file should be indented with two spaces")

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	assert.Equal(t, "b", raw[0]["id"], "new items go first")

	reopened, err := NewFileStore(store.Path(), nil)
	require.NoError(t, err)
	item, err := reopened.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", item.Result.Orders[0].CustomerOrderNo)
}

func TestFileStore_ListSortsByTimestamp(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	// Saved out of order: newest saved first, so it ends up last in the file.
	require.NoError(t, store.Save(ctx, testItem("new", 3000, "ORD-3")))
	require.NoError(t, store.Save(ctx, testItem("old", 1000, "ORD-1")))
	require.NoError(t, store.Save(ctx, testItem("mid", 2000, "ORD-2")))

	history, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "new", history[0].ID)
	assert.Equal(t, "mid", history[1].ID)
	assert.Equal(t, "old", history[2].ID)
}

func TestFileStore_SaveRequiresID(t *testing.T) {
	store := newTestFileStore(t)

	err := store.Save(context.Background(), testItem("", 1, "ORD"))
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestFileStore_Update(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)
	require.NoError(t, store.Save(ctx, testItem("a", 1000, "ORD-1")))

	updated := testItem("a", 1000, "ORD-EDITED").Result
	require.NoError(t, store.Update(ctx, "a", updated))

	item, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "ORD-EDITED", item.Result.Orders[0].CustomerOrderNo)
	assert.Equal(t, int64(1000), item.Timestamp, "timestamp is preserved")
}

func TestFileStore_UpdateMissing(t *testing.T) {
	store := newTestFileStore(t)

	err := store.Update(context.Background(), "missing", testItem("x", 1, "ORD").Result)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_GetMissing(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_EmptyFileIsEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	store, err := NewFileStore(path, nil)
	require.NoError(t, err)

	history, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(path, nil)
	require.NoError(t, err)

	_, err = store.List(context.Background())
	assert.Error(t, err)
}
