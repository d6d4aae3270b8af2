package application

import (
	"context"

	"github.com/cafe-amigas/storefront/internal/catalog/domain"
)

type Feed interface {
	Fetch(ctx context.Context) ([]domain.Item, error)
}
