package models

import "time"

// PaymentEvent is a charge confirmation pushed by the gateway webhook.
type PaymentEvent struct {
	Reference  string    `json:"reference"`
	Event      string    `json:"event"`
	Amount     int64     `json:"amount"` // minor currency units
	Currency   string    `json:"currency"`
	PaidAt     time.Time `json:"paidAt"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func (p PaymentEvent) Key() string { return p.Reference }

// PaymentInit is the storefront's answer to a payment-initialization call.
type PaymentInit struct {
	Reference        string `json:"reference"`
	Amount           int64  `json:"amount"` // minor currency units
	AccessCode       string `json:"accessCode,omitempty"`
	AuthorizationURL string `json:"authorizationUrl,omitempty"`
}

// PaymentVerification is the storefront's answer to a verification call.
type PaymentVerification struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    struct {
		Status    string `json:"status"`
		Reference string `json:"reference,omitempty"`
		Amount    int64  `json:"amount,omitempty"`
		Currency  string `json:"currency,omitempty"`
		PaidAt    string `json:"paidAt,omitempty"`
	} `json:"data"`
}

// Succeeded is true only when the call worked and the charge went through.
func (v PaymentVerification) Succeeded() bool {
	return v.Status && v.Data.Status == "success"
}

// StorefrontConfig is the public settings block the shopper side needs to
// open the payment widget and route inquiries.
type StorefrontConfig struct {
	PaystackPublicKey string `json:"paystackPublicKey"`
	Currency          string `json:"currency"`
	AtelierEmail      string `json:"atelierEmail,omitempty"`
}
