// Package pricing turns a cart subtotal into the amount charged at checkout.
package pricing

import (
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

const (
	FreeShippingThreshold = 3000
	ShippingFee           = 225
	TaxRate               = 0.08
)

var ErrUnknownCoupon = errors.New("invalid coupon code")

// coupons maps upper-cased codes to a percentage discount.
var coupons = map[string]int{
	"WELCOME10": 10,
	"SAVE20":    20,
	"LUXURY15":  15,
}

type CouponResult struct {
	Code            string `json:"code"`
	Accepted        bool   `json:"accepted"`
	DiscountPercent int    `json:"discountPercent"`
}

// ApplyCoupon looks code up case-insensitively. Unknown codes come back
// with Accepted=false and a zero discount.
func ApplyCoupon(code string) CouponResult {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	percent, ok := coupons[normalized]
	if !ok {
		return CouponResult{Code: normalized}
	}
	return CouponResult{Code: normalized, Accepted: true, DiscountPercent: percent}
}

// Quote is the checkout breakdown. Discount is taken first; the free-shipping
// check and tax both use the discounted subtotal.
type Quote struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountPercent    int             `json:"discountPercent"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	DiscountedSubtotal decimal.Decimal `json:"discountedSubtotal"`
	Shipping           decimal.Decimal `json:"shipping"`
	Tax                decimal.Decimal `json:"tax"`
	Total              decimal.Decimal `json:"total"`
}

func NewQuote(subtotal float64, discountPercent int) Quote {
	if discountPercent < 0 {
		discountPercent = 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}

	sub := decimal.NewFromFloat(subtotal).Round(2)
	discount := sub.Mul(decimal.NewFromInt(int64(discountPercent))).Div(decimal.NewFromInt(100)).Round(2)
	discounted := sub.Sub(discount)

	shipping := decimal.NewFromInt(ShippingFee)
	if discounted.GreaterThanOrEqual(decimal.NewFromInt(FreeShippingThreshold)) {
		shipping = decimal.Zero
	}
	tax := discounted.Mul(decimal.NewFromFloat(TaxRate)).Round(2)

	return Quote{
		Subtotal:           sub,
		DiscountPercent:    discountPercent,
		DiscountAmount:     discount,
		DiscountedSubtotal: discounted,
		Shipping:           shipping,
		Tax:                tax,
		Total:              discounted.Add(shipping).Add(tax),
	}
}

func (q Quote) FreeShipping() bool { return q.Shipping.IsZero() }

// Session holds the single coupon applied during one checkout. Applying a
// new accepted code replaces the previous one; discounts never stack.
type Session struct {
	mu      sync.Mutex
	applied CouponResult
}

// Apply returns ErrUnknownCoupon for a rejected code and leaves any
// previously applied coupon in place.
func (s *Session) Apply(code string) (CouponResult, error) {
	res := ApplyCoupon(code)
	if !res.Accepted {
		return res, ErrUnknownCoupon
	}
	s.mu.Lock()
	s.applied = res
	s.mu.Unlock()
	return res, nil
}

func (s *Session) Remove() {
	s.mu.Lock()
	s.applied = CouponResult{}
	s.mu.Unlock()
}

func (s *Session) Applied() (CouponResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied, s.applied.Accepted
}

func (s *Session) Quote(subtotal float64) Quote {
	applied, _ := s.Applied()
	return NewQuote(subtotal, applied.DiscountPercent)
}
