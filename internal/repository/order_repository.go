package repository

import (
	"context"
	"fmt"

	"github.com/shopkit/cart-service/internal/domain"
	"gorm.io/gorm"
)

// OrderRepository reads the order history from the CRM database.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := r.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// RevenueByCustomer sums order totals per customer for orders dated within
// the given calendar year. Customers with no orders in the year are absent
// from the result, not present with zero. Dates are ISO strings, so the
// BETWEEN comparison is lexicographic and inclusive on both ends.
func (r *OrderRepository) RevenueByCustomer(ctx context.Context, year int) (map[string]float64, error) {
	type row struct {
		CustomerID string
		Revenue    float64
	}

	from := fmt.Sprintf("%d-01-01", year)
	to := fmt.Sprintf("%d-12-31", year)

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("customer_id, SUM(total) AS revenue").
		Where("date BETWEEN ? AND ?", from, to).
		Group("customer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue for %d: %w", year, err)
	}

	revenue := make(map[string]float64, len(rows))
	for _, r := range rows {
		revenue[r.CustomerID] = r.Revenue
	}
	return revenue, nil
}
