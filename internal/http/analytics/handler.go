package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/web"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/expense/bar", h.chart(report.ChartExpenseBar))
	r.Get("/category/pie", h.chart(report.ChartCategoryPie))
	r.Get("/expense/line-monthly", h.chart(report.ChartExpenseLineMonthly))
	r.Get("/category/bar", h.chart(report.ChartCategoryBar))
	r.Get("/budget/actual-vs-budget", h.chart(report.ChartBudgetVsActual))
	r.Get("/summary", h.summary)
}

func (h *Handler) chart(kind report.ChartKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		win, err := web.Window(r)
		if err != nil {
			web.Error(w, r, err)
			return
		}

		art, err := h.svc.Chart(r.Context(), kind, win)
		if err != nil {
			web.Error(w, r, err)
			return
		}

		web.Artifact(w, art)
	}
}

type amountResponse struct {
	Key    string          `json:"key"`
	Amount decimal.Decimal `json:"amount"`
}

type budgetResponse struct {
	Category  string          `json:"category"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	Actual    decimal.Decimal `json:"actual"`
	Remaining decimal.Decimal `json:"remaining"`
}

type summaryResponse struct {
	DateRange  string           `json:"date_range"`
	Days       int              `json:"days"`
	Total      decimal.Decimal  `json:"total"`
	Income     decimal.Decimal  `json:"income"`
	ByCategory []amountResponse `json:"by_category"`
	ByDay      []amountResponse `json:"by_day"`
	ByMonth    []amountResponse `json:"by_month"`
	Budget     []budgetResponse `json:"budget"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	win, err := web.Window(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}

	sum, err := h.svc.Summary(r.Context(), win)
	if err != nil {
		web.Error(w, r, err)
		return
	}

	resp := summaryResponse{
		DateRange:  sum.DateRange,
		Days:       sum.Days,
		Total:      sum.Total.Round(2),
		Income:     sum.Income.Round(2),
		ByCategory: make([]amountResponse, len(sum.ByCategory)),
		ByDay:      buckets(sum.ByDay),
		ByMonth:    buckets(sum.ByMonth),
		Budget:     make([]budgetResponse, len(sum.Budget)),
	}

	for i, c := range sum.ByCategory {
		resp.ByCategory[i] = amountResponse{Key: c.Category, Amount: c.Amount.Round(2)}
	}

	for i, b := range sum.Budget {
		resp.Budget[i] = budgetResponse{
			Category:  b.Category,
			Budgeted:  b.Budgeted.Round(2),
			Actual:    b.Actual.Round(2),
			Remaining: b.Remaining().Round(2),
		}
	}

	web.JSON(w, http.StatusOK, resp)
}

func buckets(in []analytics.Bucket) []amountResponse {
	out := make([]amountResponse, len(in))
	for i, b := range in {
		out[i] = amountResponse{Key: b.Label, Amount: b.Amount.Round(2)}
	}

	return out
}
