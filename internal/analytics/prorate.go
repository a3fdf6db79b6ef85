package analytics

import "github.com/shopspring/decimal"

var daysPerMonth = decimal.NewFromInt(DaysPerMonth)

// Prorate scales a monthly budget to a window of days. The result is exact: a
// 30-day window yields the monthly figure unchanged.
func Prorate(monthly decimal.Decimal, days int) (decimal.Decimal, error) {
	if days <= 0 {
		return decimal.Zero, invalid("window length", "%d days", days)
	}

	if monthly.IsNegative() {
		return decimal.Zero, invalid("monthly budget", "%s is negative", monthly)
	}

	return monthly.Mul(decimal.NewFromInt(int64(days))).Div(daysPerMonth), nil
}
