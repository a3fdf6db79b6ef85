package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymanager/internal/category"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/web"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/{name}", h.set)
	r.Delete("/{name}", h.delete)
}

type budgetResponse struct {
	Name          string          `json:"name"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context())
	if err != nil {
		web.Error(w, r, err)
		return
	}

	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = budgetResponse{Name: b.Name, MonthlyBudget: b.MonthlyBudget}
	}

	web.JSON(w, http.StatusOK, resp)
}

type setRequest struct {
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Set(r.Context(), chi.URLParam(r, "name"), req.MonthlyBudget)
	if err != nil {
		if errors.Is(err, category.ErrNegativeBudget) || errors.Is(err, category.ErrMissingName) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		web.Error(w, r, err)

		return
	}

	web.JSON(w, http.StatusOK, budgetResponse{Name: b.Name, MonthlyBudget: b.MonthlyBudget})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}

		web.Error(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
