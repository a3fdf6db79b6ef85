// Package category manages the monthly budget set per spending category.
package category

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("category not found")
	ErrNegativeBudget = errors.New("monthly budget must not be negative")
	ErrMissingName    = errors.New("category name is required")
)

// Budget is the monthly allowance for one category. Names are case-sensitive.
type Budget struct {
	Name          string
	MonthlyBudget decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Names returns the budget names in their listed order.
func Names(budgets []Budget) []string {
	names := make([]string, len(budgets))
	for i, b := range budgets {
		names[i] = b.Name
	}

	return names
}
