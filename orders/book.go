// Package orders records completed purchases on the shopper's side.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
	"go.uber.org/zap"
)

// SlotKey names the durable slot with the shopper's orders, newest first.
const SlotKey = "orders"

// Book is the shopper's own order history. It is the source of truth for
// "my orders"; the server copy is best-effort.
type Book struct {
	mu      sync.Mutex
	backend store.Backend
	logger  *zap.Logger
}

func NewBook(backend store.Backend, logger *zap.Logger) *Book {
	return &Book{backend: backend, logger: logger}
}

func (b *Book) List(ctx context.Context) ([]models.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx)
}

// Prepend puts order at the front. An order whose id is already present is
// left alone and false is returned.
func (b *Book) Prepend(ctx context.Context, order models.Order) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, err := b.load(ctx)
	if err != nil {
		return false, err
	}
	for _, o := range existing {
		if o.ID == order.ID {
			return false, nil
		}
	}

	data, err := json.Marshal(append([]models.Order{order}, existing...))
	if err != nil {
		return false, fmt.Errorf("encode orders: %w", err)
	}
	if err := b.backend.Save(ctx, SlotKey, data); err != nil {
		return false, fmt.Errorf("save orders: %w", err)
	}
	return true, nil
}

func (b *Book) load(ctx context.Context) ([]models.Order, error) {
	data, err := b.backend.Load(ctx, SlotKey)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	orders := []models.Order{}
	if len(data) == 0 {
		return orders, nil
	}
	if err := json.Unmarshal(data, &orders); err != nil {
		b.logger.Warn("Discarding unreadable order history", zap.Error(err))
		return []models.Order{}, nil
	}
	return orders, nil
}
