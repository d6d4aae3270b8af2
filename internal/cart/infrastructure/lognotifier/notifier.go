package lognotifier

import (
	"context"
	"log/slog"

	"github.com/cafe-amigas/storefront/internal/cart/application"
)

// Notifier is the fallback change sink when no broker is configured: the
// badge state just lands in the structured log.
type Notifier struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) CartChanged(_ context.Context, ch application.Change) {
	n.log.Info("cart changed", "op", ch.Op, "items", ch.Items, "total", ch.Total)
}
