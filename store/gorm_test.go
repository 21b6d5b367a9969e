package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := OpenGorm("sqlite", filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer backend.Close()

	data, err := backend.Load(ctx, "items")
	require.NoError(t, err)
	assert.Nil(t, data)

	items := NewCollection[item](backend, "items")
	require.NoError(t, items.Insert(ctx, item{ID: 1, Title: "Tote"}))
	require.NoError(t, items.Insert(ctx, item{ID: 2, Title: "Clutch"}))

	all, err := items.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, items.Delete(ctx, "1"))
	all, err = items.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: 2, Title: "Clutch"}}, all)
}

func TestOpenGorm_UnknownDriver(t *testing.T) {
	_, err := OpenGorm("oracle", "")
	assert.Error(t, err)
}
