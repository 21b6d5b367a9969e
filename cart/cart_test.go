package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var tote = ItemInput{ProductID: "p1", Name: "Sienna Tote", UnitPrice: 1250, Size: "M", Color: "black"}

func newCart(t *testing.T) (*Service, *store.MemoryBackend) {
	t.Helper()
	backend := store.NewMemoryBackend()
	return New(context.Background(), backend, zap.NewNop()), backend
}

func TestAddItem_SameIdentityIncrements(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)

	for i := 0; i < 4; i++ {
		c.AddItem(ctx, tote)
	}

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 4, c.ItemCount())
}

func TestAddItem_DifferentColorIsNewLine(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)

	c.AddItem(ctx, tote)
	other := tote
	other.Color = "tan"
	c.AddItem(ctx, other)
	noColor := tote
	noColor.Color = ""
	c.AddItem(ctx, noColor)

	assert.Len(t, c.Items(), 3)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	c.AddItem(ctx, tote)

	c.UpdateQuantity(ctx, "p1", "M", 3, "black")
	assert.Equal(t, 3, c.ItemCount())

	c.UpdateQuantity(ctx, "missing", "M", 3, "")
	assert.Equal(t, 3, c.ItemCount())
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()
	a, _ := newCart(t)
	b, _ := newCart(t)
	clutch := ItemInput{ProductID: "p2", Name: "Clutch", UnitPrice: 400, Size: "S"}
	for _, c := range []*Service{a, b} {
		c.AddItem(ctx, tote)
		c.AddItem(ctx, clutch)
	}

	a.UpdateQuantity(ctx, "p1", "M", 0, "black")
	b.RemoveItem(ctx, "p1", "M", "black")

	assert.Equal(t, b.Items(), a.Items())
	assert.Len(t, a.Items(), 1)
}

func TestRemoveItem_NoMatchIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	c.AddItem(ctx, tote)

	c.RemoveItem(ctx, "p1", "L", "black")
	assert.Len(t, c.Items(), 1)
}

func TestTotal(t *testing.T) {
	ctx := context.Background()
	c, _ := newCart(t)
	c.AddItem(ctx, tote)
	c.AddItem(ctx, tote)
	c.AddItem(ctx, ItemInput{ProductID: "p2", UnitPrice: 19.99, Size: "S"})

	assert.Equal(t, 2519.99, c.Total())
	assert.Equal(t, c.Total(), c.Total())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c, backend := newCart(t)
	c.AddItem(ctx, tote)

	c.Clear(ctx)
	assert.True(t, c.IsEmpty())

	data, err := backend.Load(ctx, SlotKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, backend := newCart(t)
	c.AddItem(ctx, tote)
	c.AddItem(ctx, tote)

	reloaded := New(ctx, backend, zap.NewNop())
	assert.Equal(t, c.Items(), reloaded.Items())

	data, err := backend.Load(ctx, SlotKey)
	require.NoError(t, err)
	var saved []models.CartItem
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, 2, saved[0].Quantity)
}

func TestNew_CorruptSlotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	require.NoError(t, backend.Save(ctx, SlotKey, []byte("not json")))

	c := New(ctx, backend, zap.NewNop())
	assert.True(t, c.IsEmpty())
}

type failingBackend struct{}

func (failingBackend) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk gone")
}

func (failingBackend) Save(context.Context, string, []byte) error {
	return errors.New("disk gone")
}

func TestMutationsSurviveSaveFailure(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, failingBackend{}, zap.NewNop())

	c.AddItem(ctx, tote)
	assert.Equal(t, 1, c.ItemCount())
}
