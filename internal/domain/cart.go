package domain

// CartItem is a single line of the persisted cart. The cart itself is an
// ordered list of lines, in practice unique by ProductID.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartResponse wraps the raw cart lines for transport.
type CartResponse struct {
	Items []CartItem `json:"items"`
}

// ReplaceCartRequest replaces the whole cart. Items is a pointer so the
// handler can tell "missing or not a list" apart from an empty cart.
type ReplaceCartRequest struct {
	Items *[]CartItem `json:"items"`
}

// SetQuantityRequest sets one line's quantity. Quantity is a pointer because
// zero is a valid value (it removes the line) and must survive binding.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// AnnotatedItem is a cart line joined with its catalog record and priced.
// Rabatt reports whether the loyalty discount was applied to this line.
type AnnotatedItem struct {
	ProductID           string  `json:"productId"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	UnitPrice           float64 `json:"unit_price"`
	Quantity            int     `json:"quantity"`
	LineTotal           float64 `json:"line_total"`
	Rabatt              bool    `json:"rabatt"`
	DiscountedUnitPrice float64 `json:"discounted_unit_price"`
	LineTotalDiscounted float64 `json:"line_total_discounted"`
	SavingsTotal        float64 `json:"savings_total"`
}

// AnnotatedCart is the priced cart. Totals are sums of the already rounded
// per-line values, rounded again to two decimal places.
type AnnotatedCart struct {
	Items              []AnnotatedItem `json:"items"`
	Subtotal           float64         `json:"subtotal"`
	SubtotalDiscounted float64         `json:"subtotal_discounted"`
	TotalSavings       float64         `json:"total_savings"`
}
