package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
)

func TestProrate(t *testing.T) {
	type args struct {
		monthly string
		days    int
	}

	type testCase struct {
		name    string
		args    args
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "ThirtyDaysIsIdentity", args: args{monthly: "300", days: 30}, want: "300"},
		{name: "ThirtyDaysKeepsCents", args: args{monthly: "123.45", days: 30}, want: "123.45"},
		{name: "SingleDay", args: args{monthly: "300", days: 1}, want: "10"},
		{name: "TenDays", args: args{monthly: "300", days: 10}, want: "100"},
		{name: "LongerThanMonth", args: args{monthly: "60", days: 45}, want: "90"},
		{name: "ZeroBudget", args: args{monthly: "0", days: 17}, want: "0"},
		{name: "ZeroDays", args: args{monthly: "300", days: 0}, wantErr: true},
		{name: "NegativeDays", args: args{monthly: "300", days: -3}, wantErr: true},
		{name: "NegativeBudget", args: args{monthly: "-1", days: 3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := analytics.Prorate(decimal.RequireFromString(tt.args.monthly), tt.args.days)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, analytics.IsValidation(err))

				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestProrate_ThirtyDaysForAnyBudget(t *testing.T) {
	for _, s := range []string{"0.01", "1", "99.99", "1000000", "7.3333"} {
		b := decimal.RequireFromString(s)

		got, err := analytics.Prorate(b, analytics.DaysPerMonth)
		require.NoError(t, err)
		assert.True(t, b.Equal(got), "prorate(%s, 30) = %s", s, got)
	}
}
