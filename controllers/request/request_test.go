package requestControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup() (*gin.Engine, *store.Collection[models.CustomBagRequest], *store.Collection[models.RepairRequest]) {
	gin.SetMode(gin.TestMode)
	backend := store.NewMemoryBackend()
	bags := store.NewCollection[models.CustomBagRequest](backend, "custom_bag_requests")
	repairs := store.NewCollection[models.RepairRequest](backend, "repair_requests")

	r := gin.New()
	r.POST("/requests/custom-bag", SubmitCustomBag(bags, zap.NewNop()))
	r.POST("/requests/repair", SubmitRepair(repairs, zap.NewNop()))
	r.GET("/admin/requests/custom-bag", ListCustomBag(bags))
	r.PUT("/admin/requests/custom-bag/:id", UpdateCustomBag(bags))
	r.GET("/admin/requests/repair", ListRepair(repairs))
	r.GET("/admin/requests/repair/:id", crud.Get(repairs, "Request"))
	r.PUT("/admin/requests/repair/:id", UpdateRepair(repairs))
	r.DELETE("/admin/requests/repair/:id", crud.Delete(repairs, "Request"))
	return r, bags, repairs
}

func send(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitCustomBag(t *testing.T) {
	r, bags, _ := setup()

	w := send(r, http.MethodPost, "/requests/custom-bag",
		`{"id":"forged","name":"Ada","email":"ada@example.com","bagType":"clutch","details":"emerald croc","status":"completed"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.CustomBagRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEqual(t, "forged", got.ID)
	assert.Len(t, got.ID, 36)
	assert.Equal(t, models.RequestStatusNew, got.Status)

	all, err := bags.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitRepair_MissingFields(t *testing.T) {
	r, _, repairs := setup()

	w := send(r, http.MethodPost, "/requests/repair", `{"name":"Ada","email":"ada@example.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"itemType", "issue"}, body.Fields)

	all, err := repairs.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdminRequestLifecycle(t *testing.T) {
	r, _, repairs := setup()

	w := send(r, http.MethodPost, "/requests/repair", `{"name":"Ada","email":"ada@example.com","itemType":"tote","issue":"torn strap"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.RepairRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := "/admin/requests/repair/" + created.ID
	require.Equal(t, http.StatusOK, send(r, http.MethodPut, path, `{"status":"quoted"}`).Code)
	got, err := repairs.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusQuoted, got.Status)
	assert.Equal(t, "torn strap", got.Issue)

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPut, path, `{"status":"lost"}`).Code)
	got, err = repairs.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusQuoted, got.Status)

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/admin/requests/repair", "").Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodPut, "/admin/requests/custom-bag/nope", `{}`).Code)
}
