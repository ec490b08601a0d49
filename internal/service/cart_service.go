package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopkit/cart-service/internal/domain"
	"github.com/shopkit/cart-service/internal/repository"
	"go.uber.org/zap"
)

// ErrCartCorrupt means the persisted cart could not be parsed.
var ErrCartCorrupt = errors.New("cart storage is corrupt")

// Catalog provides the full product list. Reads are fresh per request.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// OrderLedger provides the order history and per-customer revenue.
type OrderLedger interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	RevenueByCustomer(ctx context.Context, year int) (map[string]float64, error)
}

// CartStore persists the cart as a whole; Save replaces any prior content.
type CartStore interface {
	Load() ([]domain.CartItem, error)
	Save(items []domain.CartItem) error
}

// EventPublisher publishes cart events. Failures must not fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.CartEvent) error
}

type CartService struct {
	catalog     Catalog
	orders      OrderLedger
	carts       CartStore
	events      EventPublisher
	revenueYear int
	logger      *zap.Logger
}

func NewCartService(catalog Catalog, orders OrderLedger, carts CartStore, events EventPublisher, revenueYear int, logger *zap.Logger) *CartService {
	return &CartService{
		catalog:     catalog,
		orders:      orders,
		carts:       carts,
		events:      events,
		revenueYear: revenueYear,
		logger:      logger,
	}
}

func (s *CartService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx)
}

func (s *CartService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.ListProducts(ctx)
}

func (s *CartService) GetCart(ctx context.Context) ([]domain.CartItem, error) {
	items, err := s.carts.Load()
	if err != nil {
		if errors.Is(err, repository.ErrCartCorrupt) {
			return nil, ErrCartCorrupt
		}
		return nil, err
	}
	return items, nil
}

// ReplaceCart persists the given lines verbatim, replacing any prior cart.
// No merge, no deduplication.
func (s *CartService) ReplaceCart(ctx context.Context, items []domain.CartItem) ([]domain.CartItem, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	if err := s.carts.Save(items); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventCartReplaced, "", items)
	s.logger.Info("Cart replaced", zap.Int("items", len(items)))
	return items, nil
}

// SetItemQuantity sets one line's quantity and returns the re-priced cart.
// A quantity of zero or less removes the line; removing an absent line is a
// no-op. At most one line per product is assumed.
func (s *CartService) SetItemQuantity(ctx context.Context, productID string, quantity int, customerID string) (*domain.AnnotatedCart, error) {
	items, err := s.GetCart(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, item := range items {
		if item.ProductID == productID {
			index = i
			break
		}
	}

	switch {
	case quantity <= 0:
		if index >= 0 {
			items = append(items[:index], items[index+1:]...)
		}
	case index >= 0:
		items[index].Quantity = quantity
	default:
		items = append(items, domain.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.carts.Save(items); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventCartUpdated, customerID, items)
	s.logger.Info("Cart item quantity set",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.String("customer_id", customerID))

	return s.AnnotatedCart(ctx, customerID)
}

// AnnotatedCart prices the current cart for the given customer: the order
// history feeds the VIP set, the catalog feeds per-line prices, and the
// pricing rule runs per line. Reads everything fresh; no caching.
func (s *CartService) AnnotatedCart(ctx context.Context, customerID string) (*domain.AnnotatedCart, error) {
	items, err := s.GetCart(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.orders.RevenueByCustomer(ctx, s.revenueYear)
	if err != nil {
		return nil, err
	}

	_, vip := vipCustomers(revenue)[customerID]

	cart := priceCart(items, productIndex(products), vip)
	return &cart, nil
}

func (s *CartService) publish(ctx context.Context, eventType, customerID string, items []domain.CartItem) {
	event := domain.CartEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		CustomerID: customerID,
		Items:      items,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish cart event",
			zap.String("type", eventType),
			zap.Error(err))
	}
}
