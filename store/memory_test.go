package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_CopiesData(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	buf := []byte(`[1]`)
	require.NoError(t, backend.Save(ctx, "x", buf))
	buf[1] = '2'

	data, err := backend.Load(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(data))
}
