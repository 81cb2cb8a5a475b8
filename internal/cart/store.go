package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fjod/coastline/internal/domain"
	"github.com/fjod/coastline/internal/storage"
	"github.com/shopspring/decimal"
)

// StorageKey is the slot the line list is written to.
const StorageKey = "coastline_cart"

var errInvalidLines = errors.New("invalid cart lines")

// Store owns the cart lines. Every mutation writes the full list through to storage.
type Store struct {
	mu      sync.RWMutex
	lines   []domain.CartLine
	storage storage.Store
	log     *slog.Logger
}

// NewStore restores the cart from st, starting empty when nothing usable is stored.
func NewStore(ctx context.Context, st storage.Store, log *slog.Logger) *Store {
	loaded := storage.LoadJSON(ctx, st, StorageKey, []domain.CartLine{}, validateLines)
	if loaded.Err != nil {
		log.WarnContext(ctx, "cart snapshot unusable, starting empty", "error", loaded.Err)
	}

	lines := loaded.Value
	if lines == nil {
		lines = []domain.CartLine{}
	}

	return &Store{
		lines:   lines,
		storage: st,
		log:     log,
	}
}

func validateLines(lines []domain.CartLine) error {
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l.ID == "" {
			return fmt.Errorf("%w: blank product id", errInvalidLines)
		}
		if seen[l.ID] {
			return fmt.Errorf("%w: duplicate product id %s", errInvalidLines, l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneLines(s.lines)
}

func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TotalItems(s.lines)
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TotalPrice(s.lines)
}

// Add puts quantity units of product in the cart. The quantity is taken as given;
// a product already in the cart has its quantity increased instead of a second line.
func (s *Store) Add(ctx context.Context, product domain.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.CloneLines(s.lines)
	if i := indexOf(next, product.ID); i >= 0 {
		next[i].Quantity += quantity
	} else {
		next = append(next, domain.CartLine{Product: product.Clone(), Quantity: quantity})
	}
	s.commit(ctx, next)
}

// Remove deletes the line for productID. Unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.CartLine, 0, len(s.lines))
	for _, l := range s.lines {
		if l.ID != productID {
			next = append(next, l)
		}
	}
	s.commit(ctx, next)
}

// SetQuantity replaces the quantity of productID's line. A quantity below 1 is
// ignored entirely: the line is neither clamped nor removed.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.CloneLines(s.lines)
	if i := indexOf(next, productID); i >= 0 {
		next[i].Quantity = quantity
	}
	s.commit(ctx, next)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(ctx, []domain.CartLine{})
}

// commit swaps in next and writes it through. Must hold s.mu.
// The write outlives ctx so a dropped request cannot leave storage behind memory.
func (s *Store) commit(ctx context.Context, next []domain.CartLine) {
	s.lines = next
	if err := storage.SaveJSON(context.WithoutCancel(ctx), s.storage, StorageKey, next); err != nil {
		s.log.ErrorContext(ctx, "cart persist failed", "error", err)
	}
}

func indexOf(lines []domain.CartLine, productID string) int {
	for i, l := range lines {
		if l.ID == productID {
			return i
		}
	}
	return -1
}
