package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cafe-amigas/storefront/internal/cart/domain"
)

// Store persists the cart as a small JSON file on local disk, for running
// the storefront without a redis instance. Same contract as the redis
// store: one snapshot, missing file means empty cart.
type Store struct {
	log  *slog.Logger
	path string
}

func NewStore(log *slog.Logger, path string) *Store {
	return &Store{log: log, path: path}
}

func (s *Store) Save(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	// Write-then-rename so a crash mid-write cannot leave a torn snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace cart snapshot: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context) ([]domain.LineItem, error) {
	payload, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}
	var items []domain.LineItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return items, nil
}
