package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cafe-amigas/storefront/internal/catalog/domain"
)

// Feed reads the menu from a menu_items table, for deployments where the
// café maintains its catalog in postgres instead of a flat file. The feed
// contract is unchanged: one fetch at startup, read-only afterwards.
type Feed struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewFeed(log *slog.Logger, pool *pgxpool.Pool) *Feed {
	return &Feed{log: log, pool: pool}
}

func (f *Feed) Fetch(ctx context.Context) ([]domain.Item, error) {
	rows, err := f.pool.Query(ctx, `
		SELECT id, name, description, quote, image, price, rating
		FROM menu_items
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query menu_items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Quote, &it.Image, &it.Price, &it.Rating); err != nil {
			return nil, fmt.Errorf("scan menu_items row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu_items: %w", err)
	}
	return items, nil
}
