package report

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/render"
)

// ChartKind names one of the charts the service can draw.
type ChartKind string

const (
	ChartExpenseBar         ChartKind = "expense-bar"
	ChartCategoryPie        ChartKind = "category-pie"
	ChartExpenseLineMonthly ChartKind = "expense-line-monthly"
	ChartCategoryBar        ChartKind = "category-bar"
	ChartBudgetVsActual     ChartKind = "budget-vs-actual"
)

// ChartKinds lists every chart in menu order.
var ChartKinds = []ChartKind{
	ChartExpenseBar,
	ChartCategoryPie,
	ChartExpenseLineMonthly,
	ChartCategoryBar,
	ChartBudgetVsActual,
}

func (k ChartKind) Valid() bool {
	for _, c := range ChartKinds {
		if c == k {
			return true
		}
	}

	return false
}

// Label is the human name used in menus.
func (k ChartKind) Label() string {
	switch k {
	case ChartExpenseBar:
		return "Expenses per day"
	case ChartCategoryPie:
		return "Category distribution"
	case ChartExpenseLineMonthly:
		return "Monthly expenses"
	case ChartCategoryBar:
		return "Expenses by category"
	case ChartBudgetVsActual:
		return "Budget vs actual"
	}

	return string(k)
}

// Chart renders kind over the expenses in w. A window without expenses yields
// analytics.ErrNoData.
func (s *Service) Chart(ctx context.Context, kind ChartKind, w analytics.Window) (*render.Artifact, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown chart kind %q", kind)
	}

	f, err := s.load(ctx, w)
	if err != nil {
		return nil, err
	}

	if len(f.expenses) == 0 {
		return nil, analytics.ErrNoData
	}

	switch kind {
	case ChartExpenseBar:
		return render.DailyBar(analytics.GroupByDay(f.expenses, s.loc), w)
	case ChartCategoryPie:
		return render.CategoryPie(analytics.CategoryTotals(f.expenses), w)
	case ChartExpenseLineMonthly:
		return render.MonthlyLine(analytics.GroupByMonth(f.expenses, s.loc), w)
	case ChartCategoryBar:
		return render.CategoryBar(analytics.CategoryTotals(f.expenses), w)
	}

	rows, _, err := s.budgetRows(ctx, f)
	if err != nil {
		return nil, err
	}

	return render.BudgetVsActual(rows, w)
}
