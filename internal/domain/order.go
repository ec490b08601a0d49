package domain

// Order is one row of the append-only order history in the CRM database.
// Date is kept as an ISO calendar date string so year filtering can use
// plain lexicographic comparison.
type Order struct {
	ID         uint    `gorm:"primaryKey"  json:"id"`
	CustomerID string  `gorm:"index"       json:"customer_id"`
	OrderID    string  `gorm:"uniqueIndex" json:"order_id"`
	Date       string  `json:"date"`
	Total      float64 `json:"total"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderResponse struct {
	CustomerID string  `json:"customer_id"`
	OrderID    string  `json:"order_id"`
	Date       string  `json:"date"`
	Total      float64 `json:"total"`
}
