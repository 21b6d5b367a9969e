package paymentControllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/middleware"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/paystack"
	"github.com/maison-sac/storefront-api/store"
	"go.uber.org/zap"
)

// Gateway is satisfied by *paystack.Client.
type Gateway interface {
	Configured() bool
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeData, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error)
}

type Settings struct {
	Currency    string
	CallbackURL string
}

type InitializeRequest struct {
	Email    string         `json:"email"`
	Amount   float64        `json:"amount"` // major currency units
	Metadata map[string]any `json:"metadata"`
}

// InitializePaymentHandler opens a gateway transaction for the checkout
// total and returns the reference and the amount in minor units.
func InitializePaymentHandler(gw Gateway, settings Settings, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InitializeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}
		amount := paystack.ToMinorUnits(req.Amount)
		if amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		if !gw.Configured() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": paystack.ErrNotConfigured.Error()})
			return
		}

		data, err := gw.Initialize(c.Request.Context(), paystack.InitializeRequest{
			Email:       req.Email,
			Amount:      amount,
			Currency:    settings.Currency,
			CallbackURL: settings.CallbackURL,
			Metadata:    req.Metadata,
		})
		if err != nil {
			logger.Error("Payment initialization failed", zap.String("email", req.Email), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to initialize payment"})
			return
		}

		c.JSON(http.StatusOK, models.PaymentInit{
			Reference:        data.Reference,
			Amount:           amount,
			AccessCode:       data.AccessCode,
			AuthorizationURL: data.AuthorizationURL,
		})
	}
}

// VerifyPaymentHandler proxies the gateway's status lookup. It is a read and
// safe to repeat.
func VerifyPaymentHandler(gw Gateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := strings.TrimSpace(c.Query("reference"))
		if reference == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "reference is required"})
			return
		}
		if !gw.Configured() {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": paystack.ErrNotConfigured.Error()})
			return
		}

		result, err := gw.Verify(c.Request.Context(), reference)
		if err != nil {
			logger.Error("Payment verification failed", zap.String("reference", reference), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"status": false, "message": "Failed to verify payment"})
			return
		}

		var out models.PaymentVerification
		out.Status = result.Status
		out.Message = result.Message
		out.Data.Status = result.Data.Status
		out.Data.Reference = result.Data.Reference
		out.Data.Amount = result.Data.Amount
		out.Data.Currency = result.Data.Currency
		out.Data.PaidAt = result.Data.PaidAt
		c.JSON(http.StatusOK, out)
	}
}

// WebhookHandler records charge.success events and marks a stored order
// with the same reference as paid. Must run behind
// middleware.PaystackWebhookAuth.
func WebhookHandler(payments *store.Collection[models.PaymentEvent], orders *store.Collection[models.Order], logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := rawBody(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			return
		}

		var event paystack.WebhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
			return
		}
		if event.Event != "charge.success" || event.Data.Reference == "" {
			c.JSON(http.StatusOK, gin.H{"message": "ignored"})
			return
		}

		ctx := c.Request.Context()
		paidAt, _ := time.Parse(time.RFC3339, event.Data.PaidAt)
		_, created, err := payments.InsertIfAbsent(ctx, models.PaymentEvent{
			Reference:  event.Data.Reference,
			Event:      event.Event,
			Amount:     event.Data.Amount,
			Currency:   event.Data.Currency,
			PaidAt:     paidAt,
			ReceivedAt: time.Now().UTC(),
		})
		if err != nil {
			logger.Error("Failed to record webhook payment", zap.String("reference", event.Data.Reference), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
			return
		}

		_, err = orders.Update(ctx, event.Data.Reference, func(o *models.Order) error {
			o.PaymentStatus = models.PaymentStatusPaid
			return nil
		})
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			logger.Error("Failed to mark order paid", zap.String("reference", event.Data.Reference), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}

		logger.Info("Webhook payment recorded",
			zap.String("reference", event.Data.Reference),
			zap.Bool("new", created),
			zap.Bool("order_found", err == nil))
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
}

func rawBody(c *gin.Context) ([]byte, bool) {
	if v, ok := c.Get(middleware.RawBodyKey); ok {
		if body, ok := v.([]byte); ok {
			return body, true
		}
	}
	body, err := io.ReadAll(c.Request.Body)
	return body, err == nil
}
