package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SignatureHeader = "x-paystack-signature"
	RawBodyKey      = "raw_body"
	maxWebhookBody  = 1 << 20
)

type SignatureChecker interface {
	ValidSignature(body []byte, signature string) bool
}

// PaystackWebhookAuth verifies the HMAC signature over the raw body and
// leaves the body readable for the handler.
func PaystackWebhookAuth(checker SignatureChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader(SignatureHeader)
		if signature == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing webhook signature"})
			c.Abort()
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			c.Abort()
			return
		}

		if !checker.ValidSignature(body, signature) {
			logger.Warn("Rejected webhook with bad signature", zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Set(RawBodyKey, body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}
