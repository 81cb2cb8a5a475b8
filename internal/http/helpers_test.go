package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/coastline/internal/account"
	"github.com/fjod/coastline/internal/cart"
	"github.com/fjod/coastline/internal/catalog"
	"github.com/fjod/coastline/internal/checkout"
	"github.com/fjod/coastline/internal/domain"
	"github.com/fjod/coastline/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testProducts = []domain.Product{
	{
		ID: "p1", Name: "Classic Linen Shirt", Price: decimal.RequireFromString("89.99"),
		Category: domain.CategoryMen, Sizes: []string{"S", "M", "L", "XL"},
		Images: []string{"shirt-front.jpg", "shirt-back.jpg"}, Description: "Breathable linen for warm days.", InStock: true,
	},
	{
		ID: "p2", Name: "Wrap Midi Dress", Price: decimal.RequireFromString("120.00"),
		Category: domain.CategoryWomen, Sizes: []string{"XS", "S", "M", "L"},
		Images: []string{"dress.jpg"}, Description: "Flowing midi dress.", InStock: true,
	},
	{
		ID: "p3", Name: "Leather Tote", Price: decimal.RequireFromString("45.00"),
		Category: domain.CategoryAccessories, Sizes: []string{"OS"},
		Images: []string{"tote.jpg"}, Description: "Everyday carry.", InStock: true,
	},
	{
		ID: "p8", Name: "Wool Beanie", Price: decimal.RequireFromString("35.00"),
		Category: domain.CategoryAccessories, Sizes: []string{"OS"},
		Images: []string{"beanie.jpg"}, Description: "Knitted warmth.", InStock: false,
	},
}

type testServer struct {
	router  chi.Router
	cart    *cart.Store
	account *account.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLimit(t, 1<<20)
}

func newTestServerWithLimit(t *testing.T, bodyLimit int64) *testServer {
	t.Helper()
	return newTestServerWith(t, bodyLimit, slog.New(slog.DiscardHandler))
}

func newTestServerWithLogger(t *testing.T, log *slog.Logger) *testServer {
	t.Helper()
	return newTestServerWith(t, 1<<20, log)
}

func newTestServerWith(t *testing.T, bodyLimit int64, log *slog.Logger) *testServer {
	t.Helper()
	ctx := context.Background()
	st := storage.NewMemoryStore()

	cat := catalog.New(testProducts)
	cartStore := cart.NewStore(ctx, st, log)
	accountStore := account.NewStore(ctx, st, log)
	svc := checkout.NewService(cartStore, accountStore, log, checkout.WithLatency(0))

	router := NewRouter(Handlers{
		Products: NewProductHandler(cat),
		Cart:     NewCartHandler(cartStore, cat),
		Checkout: NewCheckoutHandler(svc, 5*time.Second),
		Orders:   NewOrdersHandler(accountStore),
		Account:  NewAccountHandler(accountStore),
	}, RouterConfig{RequestTimeout: 5 * time.Second, MaxRequestBodySize: bodyLimit})

	return &testServer{router: router, cart: cartStore, account: accountStore}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
}

