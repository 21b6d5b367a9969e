package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/maison-sac/storefront-api/controllers/payment"
	"github.com/maison-sac/storefront-api/middleware"
)

func SetupPaymentRoutes(api *gin.RouterGroup, d *Deps) {
	settings := paymentControllers.Settings{
		Currency:    d.Config.Paystack.Currency,
		CallbackURL: d.Config.Paystack.CallbackURL,
	}

	payment := api.Group("/payment")
	{
		payment.POST("/initialize", paymentControllers.InitializePaymentHandler(d.Paystack, settings, d.Logger))
		payment.GET("/verify", paymentControllers.VerifyPaymentHandler(d.Paystack, d.Logger))

		// Webhook: middleware checks the HMAC signature over the raw body
		payment.POST("/webhook",
			middleware.PaystackWebhookAuth(d.Paystack, d.Logger),
			paymentControllers.WebhookHandler(d.Data.Payments, d.Data.Orders, d.Logger),
		)
	}
}
