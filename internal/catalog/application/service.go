package application

import (
	"context"
	"log/slog"
	"strings"

	cartdomain "github.com/cafe-amigas/storefront/internal/cart/domain"
	"github.com/cafe-amigas/storefront/internal/catalog/domain"
)

// Service holds the menu for the session. Load is called once at startup;
// after that the catalog is immutable and every method is a pure read.
type Service struct {
	log   *slog.Logger
	feed  Feed
	items []domain.Item
	byID  map[string]domain.Item
}

func NewService(log *slog.Logger, feed Feed) *Service {
	return &Service{log: log, feed: feed, byID: make(map[string]domain.Item)}
}

// Load fetches the menu feed. A failed or partly-malformed feed is not
// fatal: the storefront still serves the cart against an empty catalog.
func (s *Service) Load(ctx context.Context) {
	items, err := s.feed.Fetch(ctx)
	if err != nil {
		s.log.Error("menu feed load failed", "err", err)
		return
	}

	s.items = s.items[:0]
	clear(s.byID)
	for _, it := range items {
		if !it.Displayable() {
			s.log.Warn("menu record missing display fields, skipped", "id", it.ID)
			continue
		}
		if _, dup := s.byID[it.ID]; dup {
			s.log.Warn("duplicate menu id, first record kept", "id", it.ID)
			continue
		}
		s.items = append(s.items, it)
		s.byID[it.ID] = it
	}
	s.log.Info("menu loaded", "items", len(s.items))
}

func (s *Service) Items() []domain.Item {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) Resolve(id string) (domain.Item, bool) {
	it, ok := s.byID[id]
	return it, ok
}

// BaseFor resolves a menu id into a pricing base. A miss yields the default
// custom base rather than an error, so a dangling base reference degrades to
// the fallback price.
func (s *Service) BaseFor(id string) cartdomain.Base {
	if it, ok := s.byID[id]; ok {
		return cartdomain.Base{ID: it.ID, Name: it.Name, Price: it.Price}
	}
	return cartdomain.DefaultBase()
}

// Search filters the menu by case-insensitive substring match over name and
// description. Stateless; an empty query returns the whole menu.
func (s *Service) Search(query string) []domain.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Items()
	}
	var out []domain.Item
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Description), q) {
			out = append(out, it)
		}
	}
	return out
}
