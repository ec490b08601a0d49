package domain

// CategoryPromo marks products that can participate in the loyalty discount.
const CategoryPromo = "Promo"

type Product struct {
	ID        uint    `gorm:"primaryKey"       json:"id"`
	ProductID string  `gorm:"uniqueIndex"      json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price"`
}

func (Product) TableName() string {
	return "products"
}

type ProductResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price"`
}
