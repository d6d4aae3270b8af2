package application

import (
	"context"

	"github.com/cafe-amigas/storefront/internal/cart/domain"
)

// SnapshotStore round-trips the whole cart as one keyed record in a local
// key-value store. Load must report missing data as (nil, nil), not an
// error; malformed data is an error the caller recovers from.
type SnapshotStore interface {
	Save(ctx context.Context, items []domain.LineItem) error
	Load(ctx context.Context) ([]domain.LineItem, error)
}

// Change describes one completed cart mutation for outside observers
// (badge counters, displays). Observers get state, never a view handle.
type Change struct {
	Op    string `json:"op"`
	Items int    `json:"items"`
	Total int64  `json:"total"`
}

type Notifier interface {
	CartChanged(ctx context.Context, ch Change)
}
