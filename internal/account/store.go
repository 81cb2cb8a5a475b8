package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fjod/coastline/internal/domain"
	"github.com/fjod/coastline/internal/storage"
)

const (
	SessionKey = "coastline_auth"
	OrdersKey  = "coastline_orders"
)

var ErrOrderNotFound = errors.New("order not found")

// Store owns the signed-in session and the order history (newest first).
// Session and history are persisted under separate keys. Writes are not
// cut short by cancellation of the caller's context.
type Store struct {
	mu      sync.RWMutex
	session *domain.Session
	orders  []domain.Order
	storage storage.Store
	log     *slog.Logger
}

// NewStore restores session and history from st. Each falls back on its own
// to "signed out" and "no orders".
func NewStore(ctx context.Context, st storage.Store, log *slog.Logger) *Store {
	session := storage.LoadJSON(ctx, st, SessionKey, (*domain.Session)(nil), validateSession)
	if session.Err != nil {
		log.WarnContext(ctx, "session snapshot unusable, starting signed out", "error", session.Err)
	}

	orders := storage.LoadJSON(ctx, st, OrdersKey, []domain.Order{}, validateOrders)
	if orders.Err != nil {
		log.WarnContext(ctx, "orders snapshot unusable, starting with no history", "error", orders.Err)
	}
	history := orders.Value
	if history == nil {
		history = []domain.Order{}
	}

	return &Store{
		session: session.Value,
		orders:  history,
		storage: st,
		log:     log,
	}
}

func validateSession(s *domain.Session) error {
	if s != nil && s.Email == "" {
		return errors.New("session has no email")
	}
	return nil
}

func validateOrders(orders []domain.Order) error {
	for i, o := range orders {
		if o.ID == "" {
			return fmt.Errorf("order %d has no id", i)
		}
	}
	return nil
}

// Login signs in as email without any verification, replacing the current session.
func (s *Store) Login(ctx context.Context, email string) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.login(ctx, email)
}

// EnsureSession signs in as email only when nobody is signed in. It reports
// whether a new session was created.
func (s *Store) EnsureSession(ctx context.Context, email string) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return *s.session, false
	}
	return s.login(ctx, email), true
}

func (s *Store) login(ctx context.Context, email string) domain.Session {
	session := domain.NewSession(email)
	s.session = &session
	if err := storage.SaveJSON(context.WithoutCancel(ctx), s.storage, SessionKey, session); err != nil {
		s.log.ErrorContext(ctx, "session persist failed", "error", err)
	}
	return session
}

func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := s.storage.Remove(context.WithoutCancel(ctx), SessionKey); err != nil {
		s.log.ErrorContext(ctx, "session remove failed", "error", err)
	}
}

func (s *Store) Session() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return domain.Session{}, false
	}
	return *s.session, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// AddOrder puts order at the front of the history.
func (s *Store) AddOrder(ctx context.Context, order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Order, 0, len(s.orders)+1)
	next = append(next, order.Clone())
	next = append(next, s.orders...)
	s.orders = next

	if err := storage.SaveJSON(context.WithoutCancel(ctx), s.storage, OrdersKey, next); err != nil {
		s.log.ErrorContext(ctx, "orders persist failed", "error", err)
	}
}

// Orders returns the history, newest first.
func (s *Store) Orders() []domain.Order {
	return s.RecentOrders(-1)
}

// RecentOrders returns at most n orders, newest first. A negative n means all.
func (s *Store) RecentOrders(n int) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n < 0 || n > len(s.orders) {
		n = len(s.orders)
	}
	out := make([]domain.Order, n)
	for i := range out {
		out[i] = s.orders[i].Clone()
	}
	return out
}

func (s *Store) Order(id string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}
