package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cafe-amigas/storefront/internal/catalog/domain"
)

// Feed reads the menu from a local JSON document (menu.json), the default
// catalog source.
type Feed struct {
	path string
}

func NewFeed(path string) *Feed {
	return &Feed{path: path}
}

func (f *Feed) Fetch(ctx context.Context) ([]domain.Item, error) {
	payload, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read menu feed: %w", err)
	}
	var items []domain.Item
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode menu feed: %w", err)
	}
	return items, nil
}
