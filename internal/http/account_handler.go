package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/fjod/coastline/internal/domain"
)

// RecentOrderCount is how many orders the account overview shows.
const RecentOrderCount = 4

type AccountStore interface {
	OrderHistory
	Login(ctx context.Context, email string) domain.Session
	Logout(ctx context.Context)
	Session() (domain.Session, bool)
}

type AccountHandler struct {
	account AccountStore
}

func NewAccountHandler(account AccountStore) *AccountHandler {
	return &AccountHandler{account: account}
}

type LoginRequestDTO struct {
	Email string `json:"email"`
}

type AccountResponseDTO struct {
	IsAuthenticated bool               `json:"is_authenticated"`
	Session         *domain.Session    `json:"session,omitempty"`
	OrderCount      int                `json:"order_count"`
	RecentOrders    []OrderResponseDTO `json:"recent_orders"`
}

func (h *AccountHandler) accountResponse() AccountResponseDTO {
	resp := AccountResponseDTO{
		OrderCount:   len(h.account.Orders()),
		RecentOrders: toOrderDTOs(h.account.RecentOrders(RecentOrderCount)),
	}
	if session, ok := h.account.Session(); ok {
		resp.IsAuthenticated = true
		resp.Session = &session
	}
	return resp
}

// GET /api/v1/account
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.accountResponse())
}

// POST /api/v1/account/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		respondError(w, http.StatusBadRequest, "invalid_email", "a valid email address is required")
		return
	}

	h.account.Login(r.Context(), email)
	respondJSON(w, http.StatusOK, h.accountResponse())
}

// POST /api/v1/account/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.account.Logout(r.Context())
	respondJSON(w, http.StatusOK, h.accountResponse())
}
