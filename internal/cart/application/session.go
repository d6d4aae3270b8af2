package application

import (
	"context"

	"github.com/cafe-amigas/storefront/internal/cart/domain"
)

// Session is the transient customization state: at most one cart slot under
// edit at a time. It lives only in memory and is never persisted; a reload
// always comes back idle.
type Session struct {
	cart    *Service
	editing int
	active  bool
}

func NewSession(cart *Service) *Session {
	return &Session{cart: cart, editing: -1}
}

// Begin starts editing slot index and returns a draft copy of the item to
// prefill the form. Starting a new edit while one is active replaces the
// target; the previous unsaved draft is abandoned. An out-of-range index
// fails and leaves the session as it was.
func (s *Session) Begin(index int) (domain.LineItem, error) {
	item, err := s.cart.Item(index)
	if err != nil {
		return domain.LineItem{}, err
	}
	s.editing = index
	s.active = true
	return item, nil
}

// Submit commits a draft: as an in-place edit when a slot is under edit,
// otherwise as a new item. Either way the session returns to idle — even
// when the edit target went stale and the store rejected the index, so the
// form never wedges on a dead slot.
func (s *Session) Submit(ctx context.Context, draft domain.LineItem) error {
	if !s.active {
		return s.cart.Add(ctx, draft)
	}
	index := s.editing
	s.reset()
	return s.cart.Edit(ctx, index, draft)
}

// Cancel discards the draft without touching the cart.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) Editing() (int, bool) {
	return s.editing, s.active
}

func (s *Session) reset() {
	s.editing = -1
	s.active = false
}
