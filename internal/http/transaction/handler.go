package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymanager/internal/http/web"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
	loc *time.Location
}

// NewHandler serves transactions; list date filters are read as calendar days
// in loc.
func NewHandler(svc *transaction.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}", h.update)
}

type createTransactionRequest struct {
	Date        time.Time        `json:"date"`
	Amount      decimal.Decimal  `json:"amount"`
	Type        transaction.Type `json:"type"`
	Currency    string           `json:"currency"`
	Category    string           `json:"category"`
	AccountName string           `json:"account_name"`
	Description string           `json:"description"`
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrNegativeAmount),
		errors.Is(err, transaction.ErrMissingDate),
		errors.Is(err, transaction.ErrInvalidType):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		web.Error(w, r, err)
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Date:        req.Date,
		Amount:      req.Amount,
		Type:        req.Type,
		Currency:    req.Currency,
		Category:    req.Category,
		Account:     req.AccountName,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	web.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}

	q := r.URL.Query()

	if s := q.Get("type"); s != "" {
		typ := transaction.Type(s)
		if !typ.Valid() {
			writeError(w, r, transaction.ErrInvalidType)
			return
		}

		filter.Type = &typ
	}

	if s := q.Get("category"); s != "" {
		filter.Category = &s
	}

	win, err := web.Window(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}

	filter.Within(win.Bounds(h.loc))

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	web.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	web.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateTransactionRequest struct {
	Date        *time.Time        `json:"date,omitempty"`
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	Type        *transaction.Type `json:"type,omitempty"`
	Currency    *string           `json:"currency,omitempty"`
	Category    *string           `json:"category,omitempty"`
	AccountName *string           `json:"account_name,omitempty"`
	Description *string           `json:"description,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if req.Date != nil {
		tx.Date = *req.Date
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Type != nil {
		if !req.Type.Valid() {
			writeError(w, r, transaction.ErrInvalidType)
			return
		}

		tx.Type = *req.Type
	}

	if req.Currency != nil {
		tx.Currency = *req.Currency
	}

	if req.Category != nil {
		tx.Category = *req.Category
	}

	if req.AccountName != nil {
		tx.Account = *req.AccountName
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		writeError(w, r, err)
		return
	}

	web.JSON(w, http.StatusOK, toResponse(tx))
}
