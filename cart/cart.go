// Package cart is the shopper's cart: an ordered list of line items held in
// memory and written through to a durable slot on every change.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SlotKey names the durable slot holding the serialized cart.
const SlotKey = "cart"

type ItemInput struct {
	ProductID string
	Name      string
	UnitPrice float64
	Image     string
	Size      string
	Color     string
}

// Service owns one shopper's cart. Build it once per session and pass it
// to whatever needs it.
type Service struct {
	mu      sync.Mutex
	items   []models.CartItem
	backend store.Backend
	logger  *zap.Logger
}

// New reads the saved cart once. A missing or unreadable slot starts an
// empty cart.
func New(ctx context.Context, backend store.Backend, logger *zap.Logger) *Service {
	s := &Service{backend: backend, logger: logger, items: []models.CartItem{}}

	data, err := backend.Load(ctx, SlotKey)
	if err != nil {
		logger.Warn("Failed to read saved cart", zap.Error(err))
		return s
	}
	if len(data) == 0 {
		return s
	}
	var saved []models.CartItem
	if err := json.Unmarshal(data, &saved); err != nil {
		logger.Warn("Discarding unreadable saved cart", zap.Error(err))
		return s
	}
	for _, it := range saved {
		if it.Quantity > 0 {
			s.items = append(s.items, it)
		}
	}
	return s
}

// AddItem bumps the quantity of a matching line or appends a new line with
// quantity 1.
func (s *Service) AddItem(ctx context.Context, in ItemInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.find(in.ProductID, in.Size, in.Color); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, models.CartItem{
			ProductID: in.ProductID,
			Name:      in.Name,
			UnitPrice: in.UnitPrice,
			Image:     in.Image,
			Size:      in.Size,
			Color:     in.Color,
			Quantity:  1,
		})
	}
	s.persist(ctx)
}

// RemoveItem drops every line with the identity. No match is not an error.
func (s *Service) RemoveItem(ctx context.Context, productID, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(productID, size, color)
	s.persist(ctx)
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (s *Service) UpdateQuantity(ctx context.Context, productID, size string, quantity int, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(productID, size, color)
	} else if i := s.find(productID, size, color); i >= 0 {
		s.items[i].Quantity = quantity
	}
	s.persist(ctx)
}

func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []models.CartItem{}
	s.persist(ctx)
}

// Items returns a copy of the current lines.
func (s *Service) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.items...)
}

// Total is the sum of price * quantity, rounded to cents.
func (s *Service) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2).InexactFloat64()
}

func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Service) IsEmpty() bool {
	return s.ItemCount() == 0
}

func (s *Service) find(productID, size, color string) int {
	for i, it := range s.items {
		if it.Matches(productID, size, color) {
			return i
		}
	}
	return -1
}

func (s *Service) remove(productID, size, color string) {
	kept := s.items[:0]
	for _, it := range s.items {
		if !it.Matches(productID, size, color) {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// persist writes the whole list. Failures are logged; the in-memory change
// stands either way.
func (s *Service) persist(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("Failed to encode cart", zap.Error(err))
		return
	}
	if err := s.backend.Save(ctx, SlotKey, data); err != nil {
		s.logger.Warn("Failed to save cart", zap.Error(err), zap.Int("items", len(s.items)))
	}
}
