package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGateway(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		var req InitializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Amount <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status":false,"message":"Invalid amount"}`))
			return
		}
		w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"ref_123"}}`))
	})
	mux.HandleFunc("/transaction/verify/ref_123", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"id":1,"status":"success","reference":"ref_123","amount":324900,"currency":"GHS","paid_at":"2026-03-01T12:00:00.000Z"}}`))
	})
	mux.HandleFunc("/transaction/verify/ref_failed", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"status":"failed","reference":"ref_failed"}}`))
	})
	mux.HandleFunc("/transaction/verify/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
	})
	mux.HandleFunc("/transaction/verify/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream down`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestInitialize(t *testing.T) {
	srv := fakeGateway(t)
	c := NewClient(srv.URL, "sk_test", srv.Client())

	data, err := c.Initialize(context.Background(), InitializeRequest{Email: "ada@example.com", Amount: 324900})
	require.NoError(t, err)
	assert.Equal(t, "ref_123", data.Reference)
	assert.Equal(t, "abc", data.AccessCode)

	_, err = c.Initialize(context.Background(), InitializeRequest{Email: "ada@example.com"})
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	srv := fakeGateway(t)
	c := NewClient(srv.URL, "sk_test", srv.Client())
	ctx := context.Background()

	res, err := c.Verify(ctx, "ref_123")
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
	assert.Equal(t, int64(324900), res.Data.Amount)

	again, err := c.Verify(ctx, "ref_123")
	require.NoError(t, err)
	assert.Equal(t, res, again)

	res, err = c.Verify(ctx, "ref_failed")
	require.NoError(t, err)
	assert.False(t, res.Succeeded())

	res, err = c.Verify(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, res.Status)

	_, err = c.Verify(ctx, "broken")
	assert.Error(t, err)
}

func TestNotConfigured(t *testing.T) {
	c := NewClient("", "", nil)

	_, err := c.Initialize(context.Background(), InitializeRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = c.Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, c.ValidSignature([]byte("{}"), "abc"))
}

func TestValidSignature(t *testing.T) {
	c := NewClient("", "sk_test", nil)
	body := []byte(`{"event":"charge.success"}`)

	assert.True(t, c.ValidSignature(body, c.Sign(body)))
	assert.False(t, c.ValidSignature(body, c.Sign([]byte("other"))))
	assert.False(t, c.ValidSignature(body, ""))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(324900), ToMinorUnits(3249))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(1), ToMinorUnits(0.005))
}
