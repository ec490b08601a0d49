package repository

import (
	"context"
	"fmt"

	"github.com/shopkit/cart-service/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository reads the product catalog from the shop database.
// The catalog is populated by the import tool and treated as read-only here.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListProducts returns the full catalog in insertion order. Callers build
// their own product_id index; the table is small enough to read per request.
func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
