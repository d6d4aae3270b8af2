package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cafe-amigas/storefront/internal/cart/domain"
)

var (
	ErrIndexOutOfRange = errors.New("cart index out of range")
	ErrDuplicateID     = errors.New("cart already holds an item with this id")
)

// Service is the cart store: the single source of truth for what the
// customer intends to buy. Items keep insertion order. Every mutation
// persists the full snapshot before returning and then notifies observers,
// so the stored and in-memory carts are never observably divergent.
type Service struct {
	log      *slog.Logger
	store    SnapshotStore
	notifier Notifier
	items    []domain.LineItem
}

func NewService(log *slog.Logger, store SnapshotStore, notifier Notifier) *Service {
	return &Service{log: log, store: store, notifier: notifier}
}

// Restore loads the persisted cart. Missing or malformed data yields an
// empty cart, never an error: a broken snapshot is not worth losing the
// session over. Restored items that violate the line-item invariants are
// dropped, and duplicate ids keep their first occurrence.
func (s *Service) Restore(ctx context.Context) {
	items, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("cart snapshot unreadable, starting empty", "err", err)
		s.items = nil
		return
	}

	seen := make(map[string]struct{}, len(items))
	s.items = s.items[:0]
	for _, it := range items {
		if err := it.Validate(); err != nil {
			s.log.Warn("restored item dropped", "id", it.ID, "err", err)
			continue
		}
		if _, dup := seen[it.ID]; dup {
			s.log.Warn("restored duplicate id dropped", "id", it.ID)
			continue
		}
		seen[it.ID] = struct{}{}
		s.items = append(s.items, it)
	}
}

func (s *Service) Add(ctx context.Context, item domain.LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if s.indexOf(item.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
	}
	s.items = append(s.items, item)
	s.commit(ctx, "add")
	return nil
}

// Edit replaces the item at index in place, preserving its position. An
// out-of-range index mutates nothing.
func (s *Service) Edit(ctx context.Context, index int, item domain.LineItem) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if at := s.indexOf(item.ID); at >= 0 && at != index {
		return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
	}
	s.items[index] = item
	s.commit(ctx, "edit")
	return nil
}

func (s *Service) Remove(ctx context.Context, index int) error {
	return s.RemoveMany(ctx, []int{index})
}

// RemoveMany removes all given indices as one logical operation. Indices are
// validated up front and then processed highest first, so earlier removals
// cannot shift later targets; the result is independent of input order.
func (s *Service) RemoveMany(ctx context.Context, indices []int) error {
	if len(indices) == 0 {
		return nil
	}
	uniq := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.items) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
		}
		uniq[i] = struct{}{}
	}
	order := make([]int, 0, len(uniq))
	for i := range uniq {
		order = append(order, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(order)))
	for _, i := range order {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	s.commit(ctx, "remove")
	return nil
}

// ClearByIDs removes every item whose id is in ids, regardless of position.
// Checkout uses this so the exact ordered items leave the cart even if slots
// shifted between selection and submission. Unknown ids are ignored.
func (s *Service) ClearByIDs(ctx context.Context, ids map[string]struct{}) {
	if len(ids) == 0 {
		return
	}
	kept := s.items[:0]
	removed := 0
	for _, it := range s.items {
		if _, hit := ids[it.ID]; hit {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	if removed > 0 {
		s.commit(ctx, "clear")
	}
}

func (s *Service) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

func (s *Service) Item(index int) (domain.LineItem, error) {
	if index < 0 || index >= len(s.items) {
		return domain.LineItem{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return s.items[index].Clone(), nil
}

func (s *Service) Len() int { return len(s.items) }

func (s *Service) Total() int64 {
	var total int64
	for _, it := range s.items {
		total += it.Price
	}
	return total
}

func (s *Service) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// commit persists the snapshot and fans out the change. The in-memory cart
// stays authoritative if the save fails; the next successful mutation
// rewrites the whole snapshot anyway.
func (s *Service) commit(ctx context.Context, op string) {
	if err := s.store.Save(ctx, s.items); err != nil {
		s.log.Error("cart persist failed", "op", op, "err", err)
	}
	if s.notifier != nil {
		s.notifier.CartChanged(ctx, Change{Op: op, Items: len(s.items), Total: s.Total()})
	}
}
