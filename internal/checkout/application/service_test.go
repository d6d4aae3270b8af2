package application

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/cafe-amigas/storefront/internal/cart/application"
	cartdomain "github.com/cafe-amigas/storefront/internal/cart/domain"
	"github.com/cafe-amigas/storefront/internal/checkout/domain"
)

type memStore struct {
	snapshot []cartdomain.LineItem
}

func (m *memStore) Save(_ context.Context, items []cartdomain.LineItem) error {
	m.snapshot = append(m.snapshot[:0], items...)
	return nil
}

func (m *memStore) Load(_ context.Context) ([]cartdomain.LineItem, error) {
	return m.snapshot, nil
}

func customer() domain.Customer {
	return domain.Customer{Name: "X", Phone: "1", Address: "Y", Payment: "cash"}
}

func seedCart(t *testing.T, items ...cartdomain.LineItem) (*Service, *cartapp.Service, *memStore) {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	store := &memStore{}
	cart := cartapp.NewService(log, store, nil)
	for _, it := range items {
		require.NoError(t, cart.Add(context.Background(), it))
	}
	return NewService(log, cart), cart, store
}

func li(id string, price int64) cartdomain.LineItem {
	return cartdomain.LineItem{ID: id, Name: "Drink " + id, Price: price}
}

func TestCheckoutSelectedSubset(t *testing.T) {
	ctx := context.Background()
	checkout, cart, store := seedCart(t, li("a", 100), li("b", 150))

	order, err := checkout.Checkout(ctx, customer(), []int{0})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "a", order.Items[0].ID)
	assert.Equal(t, int64(100), order.Total)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	remaining := cart.Items()
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].ID)
	assert.Equal(t, int64(150), remaining[0].Price)
	require.Len(t, store.snapshot, 1, "reduced cart is persisted")
	assert.Equal(t, "b", store.snapshot[0].ID)
}

func TestCheckoutEmptySelectionMeansWholeCart(t *testing.T) {
	ctx := context.Background()
	checkout, cart, _ := seedCart(t, li("a", 100), li("b", 150))

	order, err := checkout.Checkout(ctx, customer(), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(250), order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 0, cart.Len())
}

func TestCheckoutSelectionOrderIrrelevant(t *testing.T) {
	ctx := context.Background()
	checkout, _, _ := seedCart(t, li("a", 100), li("b", 150), li("c", 200))

	order, err := checkout.Checkout(ctx, customer(), []int{2, 0, 2})
	require.NoError(t, err)

	require.Len(t, order.Items, 2, "selection is a set")
	assert.Equal(t, "a", order.Items[0].ID, "order items keep cart order, not selection order")
	assert.Equal(t, "c", order.Items[1].ID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	checkout, cart, _ := seedCart(t)

	_, err := checkout.Checkout(context.Background(), customer(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.Equal(t, 0, cart.Len())
}

func TestCheckoutMissingFields(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cust domain.Customer
	}{
		{name: "missing phone", cust: domain.Customer{Name: "X", Address: "Y", Payment: "cash"}},
		{name: "whitespace name", cust: domain.Customer{Name: "   ", Phone: "1", Address: "Y", Payment: "cash"}},
		{name: "missing payment", cust: domain.Customer{Name: "X", Phone: "1", Address: "Y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkout, cart, _ := seedCart(t, li("a", 100), li("b", 150))

			_, err := checkout.Checkout(ctx, tt.cust, []int{0})
			assert.ErrorIs(t, err, domain.ErrMissingFields)
			assert.Equal(t, 2, cart.Len(), "validation failure leaves the cart unchanged")
		})
	}
}

func TestCheckoutInvalidIndexIsAtomic(t *testing.T) {
	checkout, cart, _ := seedCart(t, li("a", 100), li("b", 150))

	_, err := checkout.Checkout(context.Background(), customer(), []int{0, 9})
	assert.ErrorIs(t, err, cartapp.ErrIndexOutOfRange)
	assert.Equal(t, 2, cart.Len(), "nothing removed on a bad selection")
}

func TestOrderSnapshotIsolatedFromCart(t *testing.T) {
	ctx := context.Background()
	checkout, cart, _ := seedCart(t, li("a", 100), li("b", 150))

	order, err := checkout.Checkout(ctx, customer(), []int{0})
	require.NoError(t, err)

	// Mutate the cart after the order is placed.
	require.NoError(t, cart.Edit(ctx, 0, li("b2", 999)))

	require.Len(t, order.Items, 1)
	assert.Equal(t, "a", order.Items[0].ID)
	assert.Equal(t, int64(100), order.Total, "a placed order never changes")
}

func TestOrderIDsUnique(t *testing.T) {
	ctx := context.Background()

	seen := make(map[string]struct{})
	for range 10 {
		checkout, _, _ := seedCart(t, li("a", 100))
		order, err := checkout.Checkout(ctx, customer(), nil)
		require.NoError(t, err)
		_, dup := seen[order.ID]
		require.False(t, dup)
		seen[order.ID] = struct{}{}
	}
}
