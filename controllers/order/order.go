package orderControllers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
	"go.uber.org/zap"
)

// -------- Request Structs --------

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Broadcaster is satisfied by *feed.Hub.
type Broadcaster interface {
	Broadcast(v any)
}

// -------- Handlers --------

// PlaceOrderHandler stores the order a shopper recorded after a verified
// payment. A reference that is already stored returns the stored record
// with 200, so retries never create a second order.
func PlaceOrderHandler(orders *store.Collection[models.Order], payments *store.Collection[models.PaymentEvent], feed Broadcaster, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := c.ShouldBindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order body"})
			return
		}
		order.ID = strings.TrimSpace(order.ID)
		if order.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order id is required"})
			return
		}
		if len(order.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order has no items"})
			return
		}

		if order.PaymentReference == "" {
			order.PaymentReference = order.ID
		}
		if order.CreatedAt.IsZero() {
			order.CreatedAt = time.Now().UTC()
		}
		// Fulfilment status is admin-only; every shopper order starts pending.
		order.Status = models.OrderStatusPending

		ctx := c.Request.Context()
		order.PaymentStatus = models.PaymentStatusUnconfirmed
		if _, err := payments.Get(ctx, order.PaymentReference); err == nil {
			order.PaymentStatus = models.PaymentStatusPaid
		} else if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("Failed to look up webhook payment", zap.String("reference", order.PaymentReference), zap.Error(err))
		}

		stored, created, err := orders.InsertIfAbsent(ctx, order)
		if err != nil {
			crud.Fail(c, "Order", err)
			return
		}
		if !created {
			c.JSON(http.StatusOK, stored)
			return
		}

		logger.Info("Order recorded",
			zap.String("id", stored.ID),
			zap.Float64("total", stored.Total),
			zap.Int("items", len(stored.Items)))
		if feed != nil {
			feed.Broadcast(stored)
		}
		c.JSON(http.StatusCreated, stored)
	}
}

// GetAllOrdersHandler lists orders newest first. Optional filter: status.
func GetAllOrdersHandler(orders *store.Collection[models.Order]) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := orders.All(c.Request.Context())
		if err != nil {
			crud.Fail(c, "Order", err)
			return
		}

		var status models.OrderStatus
		if s := c.Query("status"); s != "" {
			if status, err = models.ParseOrderStatus(s); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		out := make([]models.Order, 0, len(all))
		for _, o := range all {
			if status == "" || o.Status == status {
				out = append(out, o)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		c.JSON(http.StatusOK, out)
	}
}

func GetOrderByIDHandler(orders *store.Collection[models.Order]) gin.HandlerFunc {
	return crud.Get(orders, "Order")
}

// UpdateOrderStatusHandler sets the fulfilment status. Only the status
// field is writable here.
func UpdateOrderStatusHandler(orders *store.Collection[models.Order]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated, err := orders.Update(c.Request.Context(), c.Param("id"), func(o *models.Order) error {
			o.Status = newStatus
			return nil
		})
		if err != nil {
			crud.Fail(c, "Order", err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteOrderHandler(orders *store.Collection[models.Order]) gin.HandlerFunc {
	return crud.Delete(orders, "Order")
}
