package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymanager/internal/category"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

// Bucket is one point of a day or month series.
type Bucket struct {
	Start  time.Time // first instant of the period in the reporting zone
	Label  string    // 2006-01-02 for days, 2006-01 for months
	Amount decimal.Decimal
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// BudgetRow pairs what was spent in a category with its prorated allowance.
type BudgetRow struct {
	Category string
	Budgeted decimal.Decimal
	Actual   decimal.Decimal
}

// Remaining is the budget left over; negative when overspent.
func (r BudgetRow) Remaining() decimal.Decimal {
	return r.Budgeted.Sub(r.Actual)
}

// ValidateFeed rejects transactions the engine cannot aggregate.
func ValidateFeed(txns []*transaction.Transaction) error {
	for _, t := range txns {
		if t.Date.IsZero() {
			return invalid("transaction", "%s has no date", t.ID)
		}

		if t.Amount.IsNegative() {
			return invalid("transaction", "%s has negative amount %s", t.ID, t.Amount)
		}
	}

	return nil
}

// FilterToWindow returns the transactions that fall on a day covered by w in loc.
// The input slice is left untouched.
func FilterToWindow(txns []*transaction.Transaction, w Window, loc *time.Location) []*transaction.Transaction {
	out := make([]*transaction.Transaction, 0, len(txns))
	for _, t := range txns {
		if w.Contains(t.Date, loc) {
			out = append(out, t)
		}
	}

	return out
}

// OfType keeps only transactions of the given type.
func OfType(txns []*transaction.Transaction, typ transaction.Type) []*transaction.Transaction {
	out := make([]*transaction.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Type == typ {
			out = append(out, t)
		}
	}

	return out
}

// Extent returns the earliest and latest transaction dates converted to loc,
// or nils for an empty feed.
func Extent(txns []*transaction.Transaction, loc *time.Location) (first, last *time.Time) {
	for _, t := range txns {
		d := t.Date.In(loc)
		if first == nil || d.Before(*first) {
			first = &d
		}

		if last == nil || d.After(*last) {
			last = &d
		}
	}

	return first, last
}

func Total(txns []*transaction.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		sum = sum.Add(t.Amount)
	}

	return sum
}

// GroupByCategory sums amounts per category name. Only categories that occur in
// txns appear as keys.
func GroupByCategory(txns []*transaction.Transaction) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txns {
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}

	return sums
}

// ObservedCategories lists category names in order of first appearance.
func ObservedCategories(txns []*transaction.Transaction) []string {
	seen := make(map[string]struct{})

	var names []string

	for _, t := range txns {
		if _, ok := seen[t.Category]; ok {
			continue
		}

		seen[t.Category] = struct{}{}
		names = append(names, t.Category)
	}

	return names
}

// CategoryTotals is GroupByCategory in first-appearance order.
func CategoryTotals(txns []*transaction.Transaction) []CategoryTotal {
	sums := GroupByCategory(txns)
	names := ObservedCategories(txns)

	out := make([]CategoryTotal, len(names))
	for i, name := range names {
		out[i] = CategoryTotal{Category: name, Amount: sums[name]}
	}

	return out
}

// GroupByDay sums amounts per calendar day in loc. Days without transactions are
// omitted; buckets are in ascending order.
func GroupByDay(txns []*transaction.Transaction, loc *time.Location) []Bucket {
	return groupBy(txns, loc, time.DateOnly, func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	})
}

// GroupByMonth sums amounts per calendar month in loc, sparse and ascending.
func GroupByMonth(txns []*transaction.Transaction, loc *time.Location) []Bucket {
	return groupBy(txns, loc, "2006-01", func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	})
}

func groupBy(txns []*transaction.Transaction, loc *time.Location, layout string, truncate func(time.Time) time.Time) []Bucket {
	index := make(map[int64]int)

	var buckets []Bucket

	for _, t := range txns {
		start := truncate(t.Date.In(loc))

		i, ok := index[start.Unix()]
		if !ok {
			i = len(buckets)
			index[start.Unix()] = i
			buckets = append(buckets, Bucket{Start: start, Label: start.Format(layout), Amount: decimal.Zero})
		}

		buckets[i].Amount = buckets[i].Amount.Add(t.Amount)
	}

	sort.Slice(buckets, func(a, b int) bool { return buckets[a].Start.Before(buckets[b].Start) })

	return buckets
}

// ReconcileCategories unions observed and budgeted names without duplicates,
// keeping first-appearance order with observed names first.
func ReconcileCategories(observed, budgeted []string) []string {
	seen := make(map[string]struct{}, len(observed)+len(budgeted))
	out := make([]string, 0, len(observed)+len(budgeted))

	for _, list := range [][]string{observed, budgeted} {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}
			out = append(out, name)
		}
	}

	return out
}

// CompareBudgets produces one row per reconciled category with the actual spend
// and the budget prorated to days. A category missing on either side reads as 0.
func CompareBudgets(txns []*transaction.Transaction, budgets []category.Budget, days int) ([]BudgetRow, error) {
	monthly := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		if b.MonthlyBudget.IsNegative() {
			return nil, invalid("monthly budget", "%q has negative budget %s", b.Name, b.MonthlyBudget)
		}

		monthly[b.Name] = b.MonthlyBudget
	}

	actual := GroupByCategory(txns)
	names := ReconcileCategories(ObservedCategories(txns), category.Names(budgets))

	rows := make([]BudgetRow, 0, len(names))

	for _, name := range names {
		budgeted := decimal.Zero
		if m, ok := monthly[name]; ok {
			var err error
			if budgeted, err = Prorate(m, days); err != nil {
				return nil, err
			}
		}

		spent, ok := actual[name]
		if !ok {
			spent = decimal.Zero
		}

		rows = append(rows, BudgetRow{Category: name, Budgeted: budgeted, Actual: spent})
	}

	return rows, nil
}
