package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymanager/internal/account"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/web"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type accountResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}

func toResponse(a account.Account) accountResponse {
	return accountResponse{ID: a.ID, Name: a.Name, Balance: a.Balance, Currency: a.Currency, CreatedAt: a.CreatedAt}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		web.Error(w, r, err)
		return
	}

	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	web.JSON(w, http.StatusOK, resp)
}

type createRequest struct {
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Create(r.Context(), account.CreateParams{Name: req.Name, Balance: req.Balance, Currency: req.Currency})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrMissingName):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, account.ErrDuplicate):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			web.Error(w, r, err)
		}

		return
	}

	web.JSON(w, http.StatusCreated, toResponse(*a))
}
