package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/cafe-amigas/storefront/pkg/logging"
	"github.com/cafe-amigas/storefront/pkg/shutdown"
	"github.com/cafe-amigas/storefront/pkg/tracing"

	cartapp "github.com/cafe-amigas/storefront/internal/cart/application"
	cartfile "github.com/cafe-amigas/storefront/internal/cart/infrastructure/file"
	carthttp "github.com/cafe-amigas/storefront/internal/cart/infrastructure/http"
	cartkafka "github.com/cafe-amigas/storefront/internal/cart/infrastructure/kafka"
	"github.com/cafe-amigas/storefront/internal/cart/infrastructure/lognotifier"
	cartredis "github.com/cafe-amigas/storefront/internal/cart/infrastructure/redis"
	catalogapp "github.com/cafe-amigas/storefront/internal/catalog/application"
	catalogfile "github.com/cafe-amigas/storefront/internal/catalog/infrastructure/file"
	cataloghttp "github.com/cafe-amigas/storefront/internal/catalog/infrastructure/http"
	catalogpg "github.com/cafe-amigas/storefront/internal/catalog/infrastructure/postgres"
	checkoutapp "github.com/cafe-amigas/storefront/internal/checkout/application"
)

func main() {
	log := logging.New(env("LOG_LEVEL", "info"))

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Configuration
	httpAddr := env("HTTP_ADDR", ":8080")
	menuPath := env("MENU_PATH", "menu.json")
	pgURL := env("PG_URL", "")
	redisAddr := env("REDIS_ADDR", "")
	cartKey := env("CART_KEY", "caf:cart")
	cartPath := env("CART_STATE_PATH", "caf_cart.json")
	kafkaAddr := env("KAFKA_ADDR", "")
	cartTopic := env("CART_TOPIC", "cart.events")
	otlpURL := env("OTLP_URL", "")

	if otlpURL != "" {
		tp, err := tracing.Init(ctx, "storefront", otlpURL, log)
		if err != nil {
			log.Error("otel init failed", "err", err)
			os.Exit(1)
		}
		defer func() { _ = tp.Shutdown(ctx) }()
	}

	// Catalog feed: postgres when configured, menu.json otherwise.
	var feed catalogapp.Feed
	if pgURL != "" {
		pool, err := pgxpool.New(ctx, pgURL)
		if err != nil {
			log.Error("pg connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		feed = catalogpg.NewFeed(log, pool)
	} else {
		feed = catalogfile.NewFeed(menuPath)
	}
	catalog := catalogapp.NewService(log, feed)
	catalog.Load(ctx)

	// Cart snapshot store: redis when configured, local file otherwise.
	var store cartapp.SnapshotStore
	if redisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: redisAddr})
		defer rdb.Close()
		store = cartredis.NewStore(log, rdb, cartKey)
	} else {
		store = cartfile.NewStore(log, cartPath)
	}

	// Change notifications: kafka when configured, structured log otherwise.
	var notifier cartapp.Notifier
	if kafkaAddr != "" {
		writer := cartkafka.NewWriter(strings.Split(kafkaAddr, ","), cartTopic)
		defer writer.Close()
		notifier = cartkafka.NewPublisher(log, writer, cartKey)
	} else {
		notifier = lognotifier.New(log)
	}

	cart := cartapp.NewService(log, store, notifier)
	cart.Restore(ctx)
	log.Info("cart restored", "items", cart.Len(), "total", cart.Total())

	session := cartapp.NewSession(cart)
	checkout := checkoutapp.NewService(log, cart)

	r := chi.NewRouter()
	r.Mount("/", cataloghttp.NewHandler(log, catalog).Routes())
	r.Mount("/shop", carthttp.NewHandler(log, cart, session, checkout, catalog).Routes())
	srv := &http.Server{
		Addr:         httpAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening", "addr", httpAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("storefront shutdown complete")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
