package requestControllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
	"go.uber.org/zap"
)

// SubmitCustomBag records a commission request from the storefront.
func SubmitCustomBag(requests *store.Collection[models.CustomBagRequest], logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CustomBagRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if missing := req.MissingFields(); len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "fields": missing})
			return
		}

		req.ID = uuid.NewString()
		req.Status = models.RequestStatusNew
		req.CreatedAt = time.Now().UTC()

		if err := requests.Insert(c.Request.Context(), req); err != nil {
			crud.Fail(c, "Request", err)
			return
		}
		logger.Info("Custom bag request received", zap.String("id", req.ID), zap.String("bag_type", req.BagType))
		c.JSON(http.StatusCreated, req)
	}
}

// SubmitRepair records a repair request from the storefront.
func SubmitRepair(requests *store.Collection[models.RepairRequest], logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RepairRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if missing := req.MissingFields(); len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "fields": missing})
			return
		}

		req.ID = uuid.NewString()
		req.Status = models.RequestStatusNew
		req.CreatedAt = time.Now().UTC()

		if err := requests.Insert(c.Request.Context(), req); err != nil {
			crud.Fail(c, "Request", err)
			return
		}
		logger.Info("Repair request received", zap.String("id", req.ID), zap.String("item_type", req.ItemType))
		c.JSON(http.StatusCreated, req)
	}
}

func ListCustomBag(requests *store.Collection[models.CustomBagRequest]) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := requests.All(c.Request.Context())
		if err != nil {
			crud.Fail(c, "Request", err)
			return
		}
		sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
		c.JSON(http.StatusOK, all)
	}
}

func ListRepair(requests *store.Collection[models.RepairRequest]) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := requests.All(c.Request.Context())
		if err != nil {
			crud.Fail(c, "Request", err)
			return
		}
		sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
		c.JSON(http.StatusOK, all)
	}
}

func UpdateCustomBag(requests *store.Collection[models.CustomBagRequest]) gin.HandlerFunc {
	return crud.Merge(requests, "Request", func(r *models.CustomBagRequest) error {
		status, err := models.ParseRequestStatus(string(r.Status))
		r.Status = status
		return err
	})
}

func UpdateRepair(requests *store.Collection[models.RepairRequest]) gin.HandlerFunc {
	return crud.Merge(requests, "Request", func(r *models.RepairRequest) error {
		status, err := models.ParseRequestStatus(string(r.Status))
		r.Status = status
		return err
	})
}
