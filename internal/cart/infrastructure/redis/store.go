package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/cafe-amigas/storefront/internal/cart/domain"
)

// Store keeps the whole cart as one keyed JSON record in redis, the
// key-value analog of the browser's localStorage entry.
type Store struct {
	log *slog.Logger
	rdb *redis.Client
	key string
}

func NewStore(log *slog.Logger, rdb *redis.Client, key string) *Store {
	return &Store{log: log, rdb: rdb, key: key}
}

func (s *Store) Save(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}

// Load returns (nil, nil) when no snapshot exists; a snapshot that does not
// parse is an error for the caller to recover from.
func (s *Store) Load(ctx context.Context) ([]domain.LineItem, error) {
	payload, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
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
