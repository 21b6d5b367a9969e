package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/auth"
	"github.com/maison-sac/storefront-api/config"
	"github.com/maison-sac/storefront-api/feed"
	"github.com/maison-sac/storefront-api/paystack"
	"github.com/maison-sac/storefront-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, jwtSecret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Auth.AdminPassword = "hunter2"
	cfg.Auth.JWTSecret = jwtSecret
	cfg.Paystack.SecretKey = ""
	cfg.Paystack.PublicKey = "pk_test"
	cfg.Mail.AtelierEmail = "atelier@example.com"

	r := gin.New()
	SetupRoutes(r, &Deps{
		Data:     NewCollections(store.NewMemoryBackend()),
		Paystack: paystack.NewClient("", "", nil),
		Issuer:   auth.NewIssuer(cfg.Auth.JWTSecret, time.Hour),
		Feed:     feed.NewHub(zap.NewNop()),
		Config:   cfg,
		Logger:   zap.NewNop(),
	})
	return r
}

func request(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) *http.Cookie {
	w := request(r, http.MethodPost, "/api/admin/login", `{"password":"hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_token" {
			return c
		}
	}
	t.Fatal("no admin cookie")
	return nil
}

func TestHealth(t *testing.T) {
	r := newRouter(t, "")
	w := request(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAdminGate(t *testing.T) {
	r := newRouter(t, "s3cret")

	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/admin/products", `{"name":"x","price":1}`).Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodGet, "/api/admin/orders", "").Code)

	forged := &http.Cookie{Name: "admin_token", Value: "forged"}
	assert.Equal(t, http.StatusUnauthorized, request(r, http.MethodPost, "/api/admin/migrate", "", forged).Code)

	session := login(t, r)
	assert.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/api/admin/products", `{"name":"Tote","price":10}`, session).Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/products/1", "").Code)
}

func TestAdminGate_PresenceOnlyWithoutSecret(t *testing.T) {
	r := newRouter(t, "")
	anyToken := &http.Cookie{Name: "admin_token", Value: "anything"}

	w := request(r, http.MethodPost, "/api/admin/migrate", "", anyToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Heritage Tote")
}

func TestPublicEndpoints(t *testing.T) {
	r := newRouter(t, "")

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/blog", "").Code)
	assert.Equal(t, http.StatusNotFound, request(r, http.MethodGet, "/api/products/9", "").Code)
	assert.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/api/requests/repair",
		`{"name":"Ada","email":"ada@example.com","itemType":"tote","issue":"strap"}`).Code)
	assert.Equal(t, http.StatusCreated, request(r, http.MethodPost, "/api/orders",
		`{"id":"ref_1","total":10,"items":[{"productId":"1","name":"Tote","price":10,"size":"M","quantity":1}]}`).Code)

	// Gateway has no secret key configured.
	assert.Equal(t, http.StatusInternalServerError, request(r, http.MethodPost, "/api/payment/initialize", `{"email":"a@b.c","amount":10}`).Code)
	assert.Equal(t, http.StatusForbidden, request(r, http.MethodPost, "/api/payment/webhook", `{}`).Code)
}

func TestStorefrontConfig(t *testing.T) {
	r := newRouter(t, "")
	w := request(r, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"paystackPublicKey":"pk_test","currency":"ZAR","atelierEmail":"atelier@example.com"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "sk_")
}
