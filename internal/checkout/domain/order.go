package domain

import (
	"errors"
	"strings"
	"time"

	cartdomain "github.com/cafe-amigas/storefront/internal/cart/domain"
)

var (
	ErrMissingFields  = errors.New("name, phone, address and payment are required")
	ErrEmptySelection = errors.New("no items selected for checkout")
)

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Payment string `json:"payment"`
}

// Validate trims and checks every field; the first missing one fails the
// whole record.
func (c Customer) Validate() error {
	for _, f := range []string{c.Name, c.Phone, c.Address, c.Payment} {
		if strings.TrimSpace(f) == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// Order is the one-shot checkout artifact: a snapshot of the ordered items,
// handed to the caller for display and then discarded. Items are deep
// copies, so later cart mutation cannot alter a placed order.
type Order struct {
	ID        string                `json:"id"`
	Customer  Customer              `json:"customer"`
	Items     []cartdomain.LineItem `json:"items"`
	Total     int64                 `json:"total"`
	CreatedAt time.Time             `json:"createdAt"`
}

func NewOrder(id string, customer Customer, items []cartdomain.LineItem) Order {
	copied := make([]cartdomain.LineItem, len(items))
	var total int64
	for i, it := range items {
		copied[i] = it.Clone()
		total += it.Price
	}
	return Order{
		ID:        id,
		Customer:  customer,
		Items:     copied,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}
}
