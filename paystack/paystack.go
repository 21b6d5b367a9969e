// Package paystack talks to the hosted payment gateway from the server side:
// transaction initialization, verification and webhook signatures.
package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.paystack.co"

var ErrNotConfigured = errors.New("paystack is not configured")

type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(baseURL, secretKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), secretKey: secretKey, http: httpClient}
}

func (c *Client) Configured() bool { return c.secretKey != "" }

type InitializeRequest struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"` // minor currency units
	Currency    string         `json:"currency,omitempty"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Transaction is the subset of the gateway's transaction object we read.
type Transaction struct {
	ID              int64  `json:"id"`
	Status          string `json:"status"` // "success", "failed", "abandoned", ...
	Reference       string `json:"reference"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	PaidAt          string `json:"paid_at"`
	GatewayResponse string `json:"gateway_response"`
	Customer        struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// VerifyResult mirrors the gateway envelope: Status is the API call outcome,
// Data.Status the transaction outcome.
type VerifyResult struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

func (r VerifyResult) Succeeded() bool {
	return r.Status && r.Data.Status == "success"
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Initialize opens a transaction and returns the reference the hosted
// widget will charge against.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeData, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	env, status, err := c.do(ctx, http.MethodPost, "/transaction/initialize", body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !env.Status {
		return nil, fmt.Errorf("paystack initialize failed (%d): %s", status, env.Message)
	}

	var data InitializeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse paystack response: %w", err)
	}
	if data.Reference == "" {
		return nil, errors.New("paystack returned empty reference")
	}
	return &data, nil
}

// Verify reads a transaction. A gateway answer of status=false (unknown
// reference and such) comes back as a result, not an error.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	env, status, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusInternalServerError {
		return nil, fmt.Errorf("paystack verify failed (%d): %s", status, env.Message)
	}

	res := &VerifyResult{Status: env.Status, Message: env.Message}
	if env.Status && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &res.Data); err != nil {
			return nil, fmt.Errorf("failed to parse paystack response: %w", err)
		}
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*envelope, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to reach paystack: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("paystack API error (%d): %s", resp.StatusCode, string(raw))
	}
	return &env, resp.StatusCode, nil
}

// WebhookEvent is the body the gateway POSTs to the webhook URL.
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  Transaction `json:"data"`
}

// ValidSignature checks the x-paystack-signature header: hex HMAC-SHA512 of
// the raw body keyed with the secret key.
func (c *Client) ValidSignature(body []byte, signature string) bool {
	if !c.Configured() || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// Sign computes the signature the gateway would send for body.
func (c *Client) Sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// ToMinorUnits converts a major-unit amount to the gateway's integer units.
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
