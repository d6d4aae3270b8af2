package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Size string

const (
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

var (
	ErrNegativePrice = errors.New("line item price must not be negative")
	ErrEmptyID       = errors.New("line item id must not be empty")
)

// LineItem is one purchasable slot in the cart. Price is snapshotted when
// the item is created or edited and never recomputed afterwards. BaseID is a
// weak reference into the catalog; it may be empty for ad-hoc items.
type LineItem struct {
	ID     string   `json:"id"`
	BaseID string   `json:"baseId,omitempty"`
	Name   string   `json:"name"`
	Flavor string   `json:"flavor,omitempty"`
	Size   Size     `json:"size,omitempty"`
	Extras []string `json:"extras,omitempty"`
	Price  int64    `json:"price"`
	Custom bool     `json:"custom"`
}

// NewItemID returns a fresh cart-unique id. Ids are never reused for the
// lifetime of the cart.
func NewItemID() string {
	return "ci-" + uuid.NewString()
}

func (li LineItem) Validate() error {
	if li.ID == "" {
		return ErrEmptyID
	}
	if li.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Clone returns a deep copy, detaching the extras slice so a placed order
// cannot be altered through a shared backing array.
func (li LineItem) Clone() LineItem {
	out := li
	if li.Extras != nil {
		out.Extras = make([]string, len(li.Extras))
		copy(out.Extras, li.Extras)
	}
	return out
}

// DisplayName derives the cart label: a trimmed user-supplied name wins,
// otherwise "<size> <flavor> <base>" with empty parts collapsed.
func DisplayName(custom string, size Size, flavor string, base Base) string {
	if n := strings.TrimSpace(custom); n != "" {
		return n
	}
	parts := make([]string, 0, 3)
	if size != "" {
		parts = append(parts, string(size))
	}
	if flavor != "" {
		parts = append(parts, flavor)
	}
	parts = append(parts, base.Name)
	return strings.Join(parts, " ")
}
