package orders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPoster struct {
	mu     sync.Mutex
	orders []models.Order
	err    error
	panic  bool
}

func (p *recordingPoster) PostOrder(_ context.Context, o models.Order) error {
	if p.panic {
		panic("server exploded")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, o)
	return p.err
}

var (
	shipping = models.ShippingInfo{Name: "Ada", Email: "ada@example.com", Phone: "0240000000",
		Address: "1 Ring Rd", City: "Accra", State: "Greater Accra", Country: "Ghana", PostalCode: "00233"}
	items = []models.CartItem{{ProductID: "p1", Name: "Tote", UnitPrice: 1000, Size: "M", Quantity: 2}}
	fixed = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newWriter(poster Poster) (*Writer, *Book) {
	book := NewBook(store.NewMemoryBackend(), zap.NewNop())
	return NewWriter(book, poster, zap.NewNop(), WithClock(func() time.Time { return fixed })), book
}

func TestFinalize_BuildsOrder(t *testing.T) {
	ctx := context.Background()
	poster := &recordingPoster{}
	w, book := newWriter(poster)

	order, err := w.Finalize(ctx, "ref_1", shipping, items, 2162)
	require.NoError(t, err)
	w.Wait()

	assert.Equal(t, "ref_1", order.ID)
	assert.Equal(t, "ref_1", order.PaymentReference)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, fixed, order.CreatedAt)
	assert.Equal(t, 2162.0, order.Total)
	assert.Equal(t, items, order.Items)

	saved, err := book.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Order{order}, saved)
	assert.Equal(t, []models.Order{order}, poster.orders)
}

func TestFinalize_NewestFirst(t *testing.T) {
	ctx := context.Background()
	w, book := newWriter(&recordingPoster{})

	_, err := w.Finalize(ctx, "ref_1", shipping, items, 1)
	require.NoError(t, err)
	_, err = w.Finalize(ctx, "ref_2", shipping, items, 2)
	require.NoError(t, err)
	w.Wait()

	saved, err := book.List(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "ref_2", saved[0].ID)
	assert.Equal(t, "ref_1", saved[1].ID)
}

func TestFinalize_DuplicateReferenceWritesOnce(t *testing.T) {
	ctx := context.Background()
	poster := &recordingPoster{}
	w, book := newWriter(poster)

	_, err := w.Finalize(ctx, "ref_1", shipping, items, 1)
	require.NoError(t, err)
	_, err = w.Finalize(ctx, "ref_1", shipping, items, 1)
	require.NoError(t, err)
	w.Wait()

	saved, err := book.List(ctx)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.Len(t, poster.orders, 1)
}

func TestFinalize_ServerFailureKeepsLocalOrder(t *testing.T) {
	ctx := context.Background()
	w, book := newWriter(&recordingPoster{err: errors.New("502")})

	_, err := w.Finalize(ctx, "ref_1", shipping, items, 1)
	require.NoError(t, err)
	w.Wait()

	saved, err := book.List(ctx)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestFinalize_ServerPanicIsContained(t *testing.T) {
	ctx := context.Background()
	w, book := newWriter(&recordingPoster{panic: true})

	_, err := w.Finalize(ctx, "ref_1", shipping, items, 1)
	require.NoError(t, err)
	w.Wait()

	saved, err := book.List(ctx)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestFinalize_ItemsAreSnapshotted(t *testing.T) {
	ctx := context.Background()
	w, _ := newWriter(nil)
	cartItems := append([]models.CartItem(nil), items...)

	order, err := w.Finalize(ctx, "ref_1", shipping, cartItems, 1)
	require.NoError(t, err)
	cartItems[0].Quantity = 99

	assert.Equal(t, 2, order.Items[0].Quantity)
}
