package integration

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/cafe-amigas/storefront/internal/cart/domain"
	cartredis "github.com/cafe-amigas/storefront/internal/cart/infrastructure/redis"
	catalogpg "github.com/cafe-amigas/storefront/internal/catalog/infrastructure/postgres"
)

func setupEnv(t *testing.T) *Env {
	t.Helper()
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run container-backed tests")
	}
	env, err := Setup(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { env.Teardown(context.Background()) })
	return env
}

func TestRedisSnapshotStore(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	opts, err := goredis.ParseURL(env.RedisURL)
	require.NoError(t, err)
	rdb := goredis.NewClient(opts)
	defer rdb.Close()

	store := cartredis.NewStore(slog.New(slog.DiscardHandler), rdb, "caf:cart")

	missing, err := store.Load(ctx)
	require.NoError(t, err, "no snapshot yet is not an error")
	assert.Nil(t, missing)

	items := []cartdomain.LineItem{
		{ID: "ci-1", Name: "Espresso", Price: 120},
		{ID: "ci-2", Name: "Large Mocha Latte", Size: cartdomain.SizeLarge,
			Extras: []string{"Extra Shot"}, Price: 190, Custom: true},
	}
	require.NoError(t, store.Save(ctx, items))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	require.NoError(t, rdb.Set(ctx, "caf:cart", "{broken", 0).Err())
	_, err = store.Load(ctx)
	assert.Error(t, err, "malformed snapshot surfaces as an error for the cart to recover from")
}

func TestPostgresMenuFeed(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, env.PGURL)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, `
		CREATE TABLE menu_items (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			quote       TEXT NOT NULL DEFAULT '',
			image       TEXT NOT NULL DEFAULT '',
			price       BIGINT NOT NULL CHECK (price >= 0),
			rating      DOUBLE PRECISION NOT NULL DEFAULT 0
		)
	`)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `
		INSERT INTO menu_items (id, name, description, quote, image, price, rating) VALUES
		('esp-01', 'Espresso', 'Strong and dark', 'Wake up call', 'img/esp.jpg', 120, 4.8),
		('lat-01', 'Caramel Latte', 'Sweet caramel drizzle', '', 'img/lat.jpg', 150, 4.5)
	`)
	require.NoError(t, err)

	feed := catalogpg.NewFeed(slog.New(slog.DiscardHandler), pool)
	items, err := feed.Fetch(ctx)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "esp-01", items[0].ID)
	assert.Equal(t, int64(120), items[0].Price)
	assert.Equal(t, "Caramel Latte", items[1].Name)
}
