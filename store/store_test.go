package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Price int    `json:"price"`
}

func (i item) Key() string { return strconv.Itoa(i.ID) }

func newItems(t *testing.T) (*Collection[item], *FileBackend) {
	t.Helper()
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return NewCollection[item](backend, "items"), backend
}

func TestCollection_AllOnMissingFile(t *testing.T) {
	items, _ := newItems(t)

	all, err := items.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)
}

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	items, backend := newItems(t)

	require.NoError(t, items.Insert(ctx, item{ID: 1, Title: "Tote"}))
	require.NoError(t, items.Insert(ctx, item{ID: 2, Title: "Clutch"}))
	assert.ErrorIs(t, items.Insert(ctx, item{ID: 1, Title: "Again"}), ErrDuplicate)

	got, err := items.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Clutch", got.Title)

	updated, err := items.Update(ctx, "1", func(i *item) error {
		i.Price = 900
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 900, updated.Price)

	require.NoError(t, items.Delete(ctx, "2"))
	_, err = items.Get(ctx, "2")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := items.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 1, Title: "Tote", Price: 900}}, all)

	_, err = os.Stat(filepath.Join(backend.Dir(), "items.json"))
	assert.NoError(t, err)
}

func TestCollection_NotFound(t *testing.T) {
	ctx := context.Background()
	items, _ := newItems(t)

	_, err := items.Update(ctx, "9", func(*item) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, items.Delete(ctx, "9"), ErrNotFound)
}

func TestCollection_UpdateKeepsID(t *testing.T) {
	ctx := context.Background()
	items, _ := newItems(t)
	require.NoError(t, items.Insert(ctx, item{ID: 1}))

	_, err := items.Update(ctx, "1", func(i *item) error {
		i.ID = 7
		return nil
	})
	assert.Error(t, err)

	_, err = items.Get(ctx, "1")
	assert.NoError(t, err)
}

func TestCollection_UpdateCallbackError(t *testing.T) {
	ctx := context.Background()
	items, _ := newItems(t)
	require.NoError(t, items.Insert(ctx, item{ID: 1, Title: "Tote"}))

	boom := errors.New("boom")
	_, err := items.Update(ctx, "1", func(i *item) error {
		i.Title = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := items.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Tote", got.Title)
}

func TestCollection_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	items, _ := newItems(t)

	_, created, err := items.InsertIfAbsent(ctx, item{ID: 1, Title: "first"})
	require.NoError(t, err)
	assert.True(t, created)

	stored, created, err := items.InsertIfAbsent(ctx, item{ID: 1, Title: "second"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "first", stored.Title)
}

func TestCollection_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	items, _ := newItems(t)

	seeded, err := items.SeedIfEmpty(ctx, []item{{ID: 1}, {ID: 2}})
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = items.SeedIfEmpty(ctx, []item{{ID: 3}})
	require.NoError(t, err)
	assert.False(t, seeded)

	all, err := items.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// Two edits that read the same snapshot: the one that writes last wins and
// the other change is gone. This is the documented contract, not a bug.
func TestCollection_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	items, _ := newItems(t)
	require.NoError(t, items.Insert(ctx, item{ID: 1, Title: "Tote", Price: 100}))

	_, err := items.Update(ctx, "1", func(outer *item) error {
		_, err := items.Update(ctx, "1", func(inner *item) error {
			inner.Title = "Renamed"
			return nil
		})
		require.NoError(t, err)
		outer.Price = 200
		return nil
	})
	require.NoError(t, err)

	got, err := items.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 200, got.Price)
	assert.Equal(t, "Tote", got.Title)
}

func TestCollection_CorruptFile(t *testing.T) {
	ctx := context.Background()
	items, backend := newItems(t)
	require.NoError(t, os.WriteFile(filepath.Join(backend.Dir(), "items.json"), []byte("{not json"), 0o644))

	_, err := items.All(ctx)
	assert.Error(t, err)
}
