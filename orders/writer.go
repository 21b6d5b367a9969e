package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/maison-sac/storefront-api/models"
	"go.uber.org/zap"
)

const defaultPostTimeout = 15 * time.Second

// Poster sends an order to the server-side store.
type Poster interface {
	PostOrder(ctx context.Context, order models.Order) error
}

// Writer turns a verified payment into an Order: local write first, server
// copy in the background.
type Writer struct {
	book    *Book
	remote  Poster
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
}

type Option func(*Writer)

func WithPostTimeout(d time.Duration) Option {
	return func(w *Writer) { w.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

func NewWriter(book *Book, remote Poster, logger *zap.Logger, opts ...Option) *Writer {
	w := &Writer{
		book:    book,
		remote:  remote,
		logger:  logger,
		timeout: defaultPostTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Finalize records the order locally and starts the server POST without
// waiting for it. Only a failed local write is returned as an error.
func (w *Writer) Finalize(ctx context.Context, reference string, shipping models.ShippingInfo, items []models.CartItem, total float64) (models.Order, error) {
	order := models.Order{
		ID:               reference,
		CreatedAt:        w.now().UTC(),
		Total:            total,
		Status:           models.OrderStatusPending,
		ShippingInfo:     shipping,
		PaymentReference: reference,
		Items:            append([]models.CartItem(nil), items...),
	}

	added, err := w.book.Prepend(ctx, order)
	if err != nil {
		return order, fmt.Errorf("record order %s: %w", reference, err)
	}
	if !added {
		w.logger.Info("Order already recorded", zap.String("reference", reference))
		return order, nil
	}

	w.wg.Add(1)
	go w.post(order)
	return order, nil
}

// Wait blocks until background server writes have finished.
func (w *Writer) Wait() {
	w.wg.Wait()
}

func (w *Writer) post(order models.Order) {
	defer w.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("Order upload panicked", zap.String("reference", order.ID), zap.Any("panic", r))
		}
	}()

	if w.remote == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.remote.PostOrder(ctx, order); err != nil {
		w.logger.Warn("Failed to save order on server", zap.String("reference", order.ID), zap.Error(err))
		return
	}
	w.logger.Info("Order saved on server", zap.String("reference", order.ID))
}
