package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

// Summary is the numeric content behind the charts, for clients that draw
// their own.
type Summary struct {
	DateRange  string
	Days       int
	Total      decimal.Decimal
	Income     decimal.Decimal
	ByCategory []analytics.CategoryTotal
	ByDay      []analytics.Bucket
	ByMonth    []analytics.Bucket
	Budget     []analytics.BudgetRow
}

func (s *Service) Summary(ctx context.Context, w analytics.Window) (*Summary, error) {
	f, err := s.load(ctx, w)
	if err != nil {
		return nil, err
	}

	if len(f.expenses) == 0 {
		return nil, analytics.ErrNoData
	}

	rows, days, err := s.budgetRows(ctx, f)
	if err != nil {
		return nil, err
	}

	return &Summary{
		DateRange:  analytics.DateRangeText(w),
		Days:       days,
		Total:      analytics.Total(f.expenses),
		Income:     analytics.Total(analytics.OfType(f.all, transaction.TypeIncome)),
		ByCategory: analytics.CategoryTotals(f.expenses),
		ByDay:      analytics.GroupByDay(f.expenses, s.loc),
		ByMonth:    analytics.GroupByMonth(f.expenses, s.loc),
		Budget:     rows,
	}, nil
}
