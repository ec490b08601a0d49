package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopkit/cart-service/internal/domain"
	"github.com/shopkit/cart-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCatalog struct {
	products []domain.Product
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

type fakeLedger struct {
	orders  []domain.Order
	revenue map[string]float64
}

func (f *fakeLedger) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeLedger) RevenueByCustomer(ctx context.Context, year int) (map[string]float64, error) {
	return f.revenue, nil
}

type memCartStore struct {
	items   []domain.CartItem
	loadErr error
	saves   int
}

func (m *memCartStore) Load() ([]domain.CartItem, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.CartItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memCartStore) Save(items []domain.CartItem) error {
	m.items = make([]domain.CartItem, len(items))
	copy(m.items, items)
	m.saves++
	return nil
}

type recordingPublisher struct {
	events []domain.CartEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.CartEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func newTestService(store *memCartStore, publisher *recordingPublisher) *CartService {
	catalog := &fakeCatalog{products: []domain.Product{
		{ProductID: "P100", Name: "Massager", Category: "Promo", Stock: 12, Price: 50},
		{ProductID: "P101", Name: "Attachment", Category: "Promo", Stock: 3, Price: 50},
		{ProductID: "P200", Name: "Gel", Category: "Standard", Stock: 50, Price: 20},
	}}
	ledger := &fakeLedger{revenue: map[string]float64{"C1001": 1200.50, "C2002": 400}}
	return NewCartService(catalog, ledger, store, publisher, 2025, zap.NewNop())
}

func TestSetItemQuantity_AppendsNewLine(t *testing.T) {
	store := &memCartStore{}
	svc := newTestService(store, &recordingPublisher{})

	cart, err := svc.SetItemQuantity(context.Background(), "P100", 2, "C1001")
	require.NoError(t, err)

	require.Len(t, store.items, 1)
	assert.Equal(t, domain.CartItem{ProductID: "P100", Quantity: 2}, store.items[0])
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].Rabatt)
}

func TestSetItemQuantity_UpdatesInPlace(t *testing.T) {
	store := &memCartStore{items: []domain.CartItem{
		{ProductID: "P100", Quantity: 1},
		{ProductID: "P200", Quantity: 4},
	}}
	svc := newTestService(store, &recordingPublisher{})

	_, err := svc.SetItemQuantity(context.Background(), "P100", 3, "C1001")
	require.NoError(t, err)

	require.Len(t, store.items, 2, "re-setting must not duplicate the line")
	assert.Equal(t, domain.CartItem{ProductID: "P100", Quantity: 3}, store.items[0])
	assert.Equal(t, domain.CartItem{ProductID: "P200", Quantity: 4}, store.items[1])
}

func TestSetItemQuantity_RemovesOnZeroOrNegative(t *testing.T) {
	for _, quantity := range []int{0, -3} {
		store := &memCartStore{items: []domain.CartItem{
			{ProductID: "P100", Quantity: 1},
			{ProductID: "P200", Quantity: 2},
		}}
		svc := newTestService(store, &recordingPublisher{})

		_, err := svc.SetItemQuantity(context.Background(), "P100", quantity, "C1001")
		require.NoError(t, err)

		require.Len(t, store.items, 1)
		assert.Equal(t, "P200", store.items[0].ProductID)
	}
}

func TestSetItemQuantity_RemoveAbsentIsNoop(t *testing.T) {
	store := &memCartStore{items: []domain.CartItem{{ProductID: "P200", Quantity: 2}}}
	svc := newTestService(store, &recordingPublisher{})

	_, err := svc.SetItemQuantity(context.Background(), "GONE", 0, "C1001")
	require.NoError(t, err)
	require.Len(t, store.items, 1)
}

func TestReplaceCart_RoundTrip(t *testing.T) {
	store := &memCartStore{items: []domain.CartItem{{ProductID: "OLD", Quantity: 9}}}
	svc := newTestService(store, &recordingPublisher{})

	want := []domain.CartItem{
		{ProductID: "P100", Quantity: 1},
		{ProductID: "P200", Quantity: 5},
	}
	saved, err := svc.ReplaceCart(context.Background(), want)
	require.NoError(t, err)
	assert.Equal(t, want, saved)

	got, err := svc.GetCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got, "replace then read must return exactly the new list")
}

func TestReplaceCart_NilBecomesEmpty(t *testing.T) {
	store := &memCartStore{items: []domain.CartItem{{ProductID: "OLD", Quantity: 9}}}
	svc := newTestService(store, &recordingPublisher{})

	saved, err := svc.ReplaceCart(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.Empty(t, store.items)
}

// TestAnnotatedCart_Idempotent: two reads with no mutation in between must
// produce identical output.
func TestAnnotatedCart_Idempotent(t *testing.T) {
	store := &memCartStore{items: []domain.CartItem{
		{ProductID: "P100", Quantity: 1},
		{ProductID: "P200", Quantity: 2},
	}}
	svc := newTestService(store, &recordingPublisher{})

	first, err := svc.AnnotatedCart(context.Background(), "C1001")
	require.NoError(t, err)
	second, err := svc.AnnotatedCart(context.Background(), "C1001")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnnotatedCart_NonVIPCustomer(t *testing.T) {
	store := &memCartStore{items: []domain.CartItem{{ProductID: "P100", Quantity: 1}}}
	svc := newTestService(store, &recordingPublisher{})

	cart, err := svc.AnnotatedCart(context.Background(), "C2002")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.False(t, cart.Items[0].Rabatt)

	cart, err = svc.AnnotatedCart(context.Background(), "UNKNOWN")
	require.NoError(t, err)
	assert.False(t, cart.Items[0].Rabatt, "unknown customer is simply non-VIP")
}

func TestGetCart_MapsCorruptError(t *testing.T) {
	store := &memCartStore{loadErr: repository.ErrCartCorrupt}
	svc := newTestService(store, &recordingPublisher{})

	_, err := svc.GetCart(context.Background())
	assert.ErrorIs(t, err, ErrCartCorrupt)
}

func TestMutations_PublishEvents(t *testing.T) {
	store := &memCartStore{}
	publisher := &recordingPublisher{}
	svc := newTestService(store, publisher)

	_, err := svc.SetItemQuantity(context.Background(), "P100", 2, "C1001")
	require.NoError(t, err)
	_, err = svc.ReplaceCart(context.Background(), []domain.CartItem{{ProductID: "P200", Quantity: 1}})
	require.NoError(t, err)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, domain.EventCartUpdated, publisher.events[0].Type)
	assert.Equal(t, "C1001", publisher.events[0].CustomerID)
	assert.NotEmpty(t, publisher.events[0].EventID)
	assert.Equal(t, domain.EventCartReplaced, publisher.events[1].Type)
}

// A broken event pipeline must never fail the cart operation itself.
func TestMutations_PublishFailureIsSwallowed(t *testing.T) {
	store := &memCartStore{}
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := newTestService(store, publisher)

	cart, err := svc.SetItemQuantity(context.Background(), "P100", 1, "C1001")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, 1, store.saves)
}
