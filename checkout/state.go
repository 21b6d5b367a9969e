package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maison-sac/storefront-api/models"
)

type State int

const (
	StateIdle State = iota
	StateInitializing
	StateAwaitingGateway
	StateVerifying
	StateCompleted
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateAwaitingGateway:
		return "awaiting_gateway"
	case StateVerifying:
		return "verifying"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyCart  = errors.New("your cart is empty")
	ErrInProgress = errors.New("a payment is already being processed")
	// ErrGateway means no charge can have happened.
	ErrGateway = errors.New("payment could not be started")
	// ErrVerification means a charge may have happened without an order.
	ErrVerification = errors.New("we could not confirm your payment; if you were charged, please contact support")
)

// ValidationError lists required checkout fields left blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// ValidateShipping checks that every field of the form is filled in.
func ValidateShipping(form models.ShippingInfo) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", form.Name},
		{"email", form.Email},
		{"phone", form.Phone},
		{"address", form.Address},
		{"city", form.City},
		{"state", form.State},
		{"country", form.Country},
		{"postalCode", form.PostalCode},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
