package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/fjod/coastline/internal/domain"
	"github.com/fjod/coastline/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStorage records writes and can be told to fail them.
type mockStorage struct {
	*storage.MemoryStore
	m      sync.RWMutex
	writes int
	setErr error
}

func newMockStorage() *mockStorage {
	return &mockStorage{MemoryStore: storage.NewMemoryStore()}
}

func (m *mockStorage) Set(ctx context.Context, key, value string) error {
	m.m.Lock()
	m.writes++
	err := m.setErr
	m.m.Unlock()
	if err != nil {
		return err
	}
	return m.MemoryStore.Set(ctx, key, value)
}

func (m *mockStorage) writeCount() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.writes
}

var (
	p1 = domain.Product{ID: "p1", Name: "Classic Linen Shirt", Price: decimal.RequireFromString("89.99"),
		Category: domain.CategoryMen, Sizes: []string{"S", "M"}, Images: []string{"p1.jpg"}, InStock: true}
	p2 = domain.Product{ID: "p2", Name: "Ocean Breeze Dress", Price: decimal.RequireFromString("120.00"),
		Category: domain.CategoryWomen, Sizes: []string{"XS", "S"}, Images: []string{"p2.jpg"}, InStock: true}
	p3 = domain.Product{ID: "p3", Name: "Woven Straw Hat", Price: decimal.RequireFromString("45.00"),
		Category: domain.CategoryAccessories, Sizes: []string{domain.OneSize}, Images: []string{"p3.jpg"}, InStock: true}
)

func newTestStore(t *testing.T) (*Store, *mockStorage) {
	t.Helper()
	st := newMockStorage()
	return NewStore(context.Background(), st, slog.New(slog.DiscardHandler)), st
}

func quantities(lines []domain.CartLine) map[string]int {
	out := make(map[string]int, len(lines))
	for _, l := range lines {
		out[l.ID] = l.Quantity
	}
	return out
}

func TestAdd_SameProductIncrementsSingleLine(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, p1, 2)
	s.Add(ctx, p1, 3)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ID)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, p2, 1)
	s.Add(ctx, p1, 1)
	s.Add(ctx, p2, 1)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p2", lines[0].ID)
	assert.Equal(t, "p1", lines[1].ID)
}

func TestTotals_Scenario(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, p1, 1)
	s.Add(ctx, p2, 2)

	assert.Equal(t, 3, s.TotalItems())
	assert.Equal(t, "329.99", s.TotalPrice().StringFixed(2))
}

func TestSetQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, p1, 2)

	s.SetQuantity(ctx, "p1", 7)
	assert.Equal(t, map[string]int{"p1": 7}, quantities(s.Lines()))
}

func TestSetQuantity_BelowOneIsIgnored(t *testing.T) {
	s, st := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, p1, 2)
	writes := st.writeCount()

	for _, q := range []int{0, -1, -100} {
		s.SetQuantity(ctx, "p1", q)
	}

	assert.Equal(t, map[string]int{"p1": 2}, quantities(s.Lines()))
	assert.Equal(t, writes, st.writeCount(), "ignored calls must not write")
}

func TestSetQuantity_UnknownProduct(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, p1, 2)

	s.SetQuantity(ctx, "p9", 4)
	assert.Equal(t, map[string]int{"p1": 2}, quantities(s.Lines()))
}

func TestRemove_IsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, p1, 1)
	s.Add(ctx, p2, 1)

	s.Remove(ctx, "p1")
	s.Remove(ctx, "p1")

	assert.Equal(t, map[string]int{"p2": 1}, quantities(s.Lines()))
}

func TestClear(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, p1, 1)
	s.Add(ctx, p2, 4)

	s.Clear(ctx)

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, "0.00", s.TotalPrice().StringFixed(2))
}

func TestAdd_StoresQuantityAsGiven(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, p3, 0)
	s.Add(ctx, domain.Product{ID: "unknown"}, 1)

	assert.Equal(t, map[string]int{"p3": 0, "unknown": 1}, quantities(s.Lines()))
}

func TestLines_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, p1, 1)

	lines := s.Lines()
	lines[0].Quantity = 50
	lines[0].Sizes[0] = "XXL"

	again := s.Lines()
	assert.Equal(t, 1, again[0].Quantity)
	assert.Equal(t, "S", again[0].Sizes[0])
}

func TestEveryMutationWritesThrough(t *testing.T) {
	s, st := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, p1, 1)
	s.SetQuantity(ctx, "p1", 3)
	s.Remove(ctx, "p1")
	s.Clear(ctx)

	assert.Equal(t, 4, st.writeCount())
}

func TestPersistRoundTrip(t *testing.T) {
	st := newMockStorage()
	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)

	s := NewStore(ctx, st, log)
	s.Add(ctx, p1, 2)
	s.Add(ctx, p3, 1)

	reloaded := NewStore(ctx, st, log)
	lines := reloaded.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ID)
	assert.Equal(t, "Classic Linen Shirt", lines[0].Name)
	assert.Equal(t, []string{"S", "M"}, lines[0].Sizes)
	assert.Equal(t, "p3", lines[1].ID)
	assert.Equal(t, map[string]int{"p1": 2, "p3": 1}, quantities(reloaded.Lines()))
	assert.Equal(t, "224.98", reloaded.TotalPrice().StringFixed(2))
}

func TestNewStore_FallsBackToEmpty(t *testing.T) {
	tests := map[string]string{
		"malformed":       `[{"id":"p1","quantity":`,
		"wrong shape":     `{"id":"p1"}`,
		"blank id":        `[{"id":"","quantity":1}]`,
		"duplicate lines": `[{"id":"p1","quantity":1},{"id":"p1","quantity":2}]`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			st := newMockStorage()
			ctx := context.Background()
			require.NoError(t, st.MemoryStore.Set(ctx, StorageKey, raw))

			s := NewStore(ctx, st, slog.New(slog.DiscardHandler))
			assert.True(t, s.IsEmpty())
			assert.NotNil(t, s.Lines())
		})
	}
}

func TestNewStore_NullSnapshot(t *testing.T) {
	st := newMockStorage()
	ctx := context.Background()
	require.NoError(t, st.MemoryStore.Set(ctx, StorageKey, "null"))

	s := NewStore(ctx, st, slog.New(slog.DiscardHandler))
	assert.True(t, s.IsEmpty())
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	s, st := newTestStore(t)
	ctx := context.Background()
	st.setErr = errors.New("disk full")

	s.Add(ctx, p1, 1)

	assert.Equal(t, 1, s.TotalItems())
}

func TestMutationsPersistAfterContextCancelled(t *testing.T) {
	st := newMockStorage()
	log := slog.New(slog.DiscardHandler)
	s := NewStore(context.Background(), st, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Add(ctx, p1, 2)
	s.Add(ctx, p3, 1)
	s.SetQuantity(ctx, "p3", 4)
	s.Remove(ctx, "p1")

	reloaded := NewStore(context.Background(), st, log)
	assert.Equal(t, s.TotalItems(), reloaded.TotalItems())
	lines := reloaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p3", lines[0].ID)
	assert.Equal(t, 4, lines[0].Quantity)

	s.Clear(ctx)
	assert.True(t, NewStore(context.Background(), st, log).IsEmpty())
}
