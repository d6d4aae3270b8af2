package application

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	cartapp "github.com/cafe-amigas/storefront/internal/cart/application"
	cartdomain "github.com/cafe-amigas/storefront/internal/cart/domain"
	"github.com/cafe-amigas/storefront/internal/checkout/domain"
)

// Service turns a subset of the cart into a finalized Order and removes
// exactly those items from the cart. The operation is atomic from the
// caller's side: a validation failure mutates nothing.
type Service struct {
	log  *slog.Logger
	cart *cartapp.Service
}

func NewService(log *slog.Logger, cart *cartapp.Service) *Service {
	return &Service{log: log, cart: cart}
}

// Checkout resolves the working set (selected cart indices in cart order,
// or the whole cart when none are selected), validates, and builds the
// Order. Removal happens by item id, not index, so slots that shifted
// between selection and submission cannot drag the wrong item out.
func (s *Service) Checkout(ctx context.Context, customer domain.Customer, selected []int) (domain.Order, error) {
	working, err := s.workingSet(selected)
	if err != nil {
		return domain.Order{}, err
	}
	if err := customer.Validate(); err != nil {
		return domain.Order{}, err
	}
	if len(working) == 0 {
		return domain.Order{}, domain.ErrEmptySelection
	}

	order := domain.NewOrder("ORD-"+uuid.NewString(), customer, working)

	ids := make(map[string]struct{}, len(working))
	for _, it := range working {
		ids[it.ID] = struct{}{}
	}
	s.cart.ClearByIDs(ctx, ids)

	s.log.Info("order placed", "order_id", order.ID, "items", len(order.Items), "total", order.Total)
	return order, nil
}

// workingSet resolves the selection into items in original cart order. The
// selection is an index set: duplicates collapse, selection order is
// irrelevant, and any out-of-range index fails the whole checkout before
// anything is removed. An empty selection means the entire cart.
func (s *Service) workingSet(selected []int) ([]cartdomain.LineItem, error) {
	if len(selected) == 0 {
		return s.cart.Items(), nil
	}
	uniq := make(map[int]struct{}, len(selected))
	for _, i := range selected {
		uniq[i] = struct{}{}
	}
	order := make([]int, 0, len(uniq))
	for i := range uniq {
		order = append(order, i)
	}
	sort.Ints(order)

	items := make([]cartdomain.LineItem, 0, len(order))
	for _, i := range order {
		it, err := s.cart.Item(i)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
