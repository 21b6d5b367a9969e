package models

// CartItem is one line of a shopper's cart. Its identity is the
// (ProductID, Size, Color) triple; an absent color is the empty string.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Color     string  `json:"color,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Matches reports whether the item has the given identity.
func (i CartItem) Matches(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

// LineTotal is UnitPrice * Quantity.
func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
