// Package apiclient is the shopper-side HTTP client of the storefront API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maison-sac/storefront-api/models"
)

// RequestTimeout bounds repair and custom-bag submissions. Past it the
// caller carries on as if the backend write never happened.
const RequestTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// APIError is a non-2xx answer from the storefront.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront API error (%d): %s", e.StatusCode, e.Message)
}

func (c *Client) InitializePayment(ctx context.Context, email string, amount float64, metadata map[string]any) (*models.PaymentInit, error) {
	payload := map[string]any{
		"email":    email,
		"amount":   amount,
		"metadata": metadata,
	}
	var out models.PaymentInit
	if err := c.do(ctx, http.MethodPost, "/api/payment/initialize", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPayment is a read and may be repeated for the same reference.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*models.PaymentVerification, error) {
	var out models.PaymentVerification
	path := "/api/payment/verify?reference=" + url.QueryEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StorefrontConfig fetches the public widget key, currency and atelier address.
func (c *Client) StorefrontConfig(ctx context.Context) (*models.StorefrontConfig, error) {
	var out models.StorefrontConfig
	if err := c.do(ctx, http.MethodGet, "/api/config", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostOrder sends the order to the server store. The response body is ignored.
func (c *Client) PostOrder(ctx context.Context, order models.Order) error {
	return c.do(ctx, http.MethodPost, "/api/orders", order, nil)
}

func (c *Client) SubmitCustomBag(ctx context.Context, req models.CustomBagRequest) error {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()
	return c.do(ctx, http.MethodPost, "/api/requests/custom-bag", req, nil)
}

func (c *Client) SubmitRepair(ctx context.Context, req models.RepairRequest) error {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()
	return c.do(ctx, http.MethodPost, "/api/requests/repair", req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach storefront: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &e) == nil {
			if e.Error != "" {
				msg = e.Error
			} else if e.Message != "" {
				msg = e.Message
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse storefront response: %w", err)
	}
	return nil
}
