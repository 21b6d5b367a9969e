package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/auth"
	"github.com/maison-sac/storefront-api/config"
	"github.com/maison-sac/storefront-api/feed"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/paystack"
	"github.com/maison-sac/storefront-api/store"
	"go.uber.org/zap"
)

// Collections are the whole-array entity stores behind the API.
type Collections struct {
	Products   *store.Collection[models.Product]
	Blog       *store.Collection[models.BlogPost]
	Orders     *store.Collection[models.Order]
	Payments   *store.Collection[models.PaymentEvent]
	CustomBags *store.Collection[models.CustomBagRequest]
	Repairs    *store.Collection[models.RepairRequest]
}

func NewCollections(backend store.Backend) *Collections {
	return &Collections{
		Products:   store.NewCollection[models.Product](backend, "products"),
		Blog:       store.NewCollection[models.BlogPost](backend, "blog"),
		Orders:     store.NewCollection[models.Order](backend, "orders"),
		Payments:   store.NewCollection[models.PaymentEvent](backend, "payments"),
		CustomBags: store.NewCollection[models.CustomBagRequest](backend, "custom_bag_requests"),
		Repairs:    store.NewCollection[models.RepairRequest](backend, "repair_requests"),
	}
}

type Deps struct {
	Data     *Collections
	Paystack *paystack.Client
	Issuer   *auth.Issuer
	Feed     *feed.Hub
	Config   *config.Config
	Logger   *zap.Logger
}

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, d *Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public catalog, checkout and service request endpoints
	SetupConfigRoutes(api, d)
	SetupCatalogRoutes(api, d)
	SetupPaymentRoutes(api, d)
	SetupOrderRoutes(api, d)
	SetupRequestRoutes(api, d)

	// Admin session and cookie-protected back office
	SetupAuthRoutes(api, d)
	SetupAdminRoutes(api, d)
}
