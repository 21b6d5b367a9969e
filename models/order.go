package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Recorded by the shopper, not yet handled
	OrderStatusProcessing OrderStatus = "processing" // Being prepared by the atelier
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to the courier
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the bag
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled by staff

	PaymentStatusUnconfirmed PaymentStatus = ""     // No gateway webhook seen yet
	PaymentStatusPaid        PaymentStatus = "paid" // Gateway webhook confirmed the charge
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// ParseOrderStatus maps free text to an OrderStatus, case-insensitively.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(status))) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// ShippingInfo is the contact and delivery block of the checkout form.
type ShippingInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// Order is created once per verified payment. ID and PaymentReference both
// carry the gateway's transaction reference.
type Order struct {
	ID               string        `json:"id"`
	CreatedAt        time.Time     `json:"createdAt"`
	Total            float64       `json:"total"`
	Status           OrderStatus   `json:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus,omitempty"`
	ShippingInfo     ShippingInfo  `json:"shippingInfo"`
	PaymentReference string        `json:"paymentReference"`
	Items            []CartItem    `json:"items"`
}

func (o Order) Key() string { return o.ID }
