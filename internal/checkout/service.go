package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fjod/coastline/internal/domain"
	"github.com/fjod/coastline/internal/events"
	"golang.org/x/sync/singleflight"
)

const (
	GuestEmail     = "guest@coastlineapparel.com.au"
	DefaultLatency = 1800 * time.Millisecond
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

type CartStore interface {
	Lines() []domain.CartLine
	Clear(ctx context.Context)
}

type AccountStore interface {
	EnsureSession(ctx context.Context, email string) (domain.Session, bool)
	AddOrder(ctx context.Context, order domain.Order)
}

const placeOrderKey = "place-order"

type Service struct {
	cart      CartStore
	account   AccountStore
	publisher events.Publisher
	latency   time.Duration
	now       func() time.Time
	group     singleflight.Group
	log       *slog.Logger

	mu      sync.Mutex
	pending *submission
}

// submission is the context shared by everyone waiting on the same checkout.
// It is cancelled only once every waiter has gone away.
type submission struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

type Option func(*Service)

func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(cart CartStore, account AccountStore, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		cart:      cart,
		account:   account,
		publisher: events.Noop{},
		latency:   DefaultLatency,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote prices the current cart the way PlaceOrder would.
func (s *Service) Quote() (Quote, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return Quote{}, ErrEmptyCart
	}
	return NewQuote(lines), nil
}

// PlaceOrder turns the cart into an order after the simulated processing delay.
// Concurrent calls share a single submission and receive the same order. A
// caller whose ctx ends stops waiting; the submission itself is abandoned only
// when no caller is left waiting for it.
func (s *Service) PlaceOrder(ctx context.Context) (domain.Order, error) {
	for {
		order, err := s.awaitSubmission(ctx)
		// joined a submission that was being abandoned as we arrived
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			continue
		}
		return order, err
	}
}

func (s *Service) awaitSubmission(ctx context.Context) (domain.Order, error) {
	sub := s.join(ctx)
	defer s.leave(sub)

	ch := s.group.DoChan(placeOrderKey, func() (any, error) {
		return s.placeOrder(sub.ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.Order{}, res.Err
		}
		order := res.Val.(domain.Order)
		if res.Shared {
			s.log.InfoContext(ctx, "duplicate checkout submission joined", "order_id", order.ID)
		}
		return order.Clone(), nil
	case <-ctx.Done():
		return domain.Order{}, ctx.Err()
	}
}

func (s *Service) join(ctx context.Context) *submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.pending = &submission{ctx: subCtx, cancel: cancel}
	}
	s.pending.waiters++
	return s.pending
}

func (s *Service) leave(sub *submission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.waiters--
	if sub.waiters == 0 {
		sub.cancel()
		if s.pending == sub {
			s.pending = nil
		}
	}
}

func (s *Service) placeOrder(ctx context.Context) (domain.Order, error) {
	if len(s.cart.Lines()) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	if err := s.wait(ctx); err != nil {
		return domain.Order{}, err
	}

	// the cart may have changed while we waited
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	quote := NewQuote(lines)
	order := domain.NewOrder(s.now(), lines, quote.Total)

	session, created := s.account.EnsureSession(ctx, GuestEmail)
	if created {
		s.log.InfoContext(ctx, "checked out as guest", "email", session.Email)
	}
	s.account.AddOrder(ctx, order)
	s.cart.Clear(ctx)

	s.log.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"items", quote.Items,
		"total", order.Total.StringFixed(2))

	if err := s.publisher.PublishOrderPlaced(context.WithoutCancel(ctx), order, session.Email); err != nil {
		s.log.WarnContext(ctx, "order event not published", "order_id", order.ID, "error", err)
	}
	return order, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
