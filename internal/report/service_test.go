package report_test

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/moneymanager/internal/account"
	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/category"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
	"github.com/MrJamesThe3rd/moneymanager/internal/importer/mmcsv"
	"github.com/MrJamesThe3rd/moneymanager/internal/importer/mmxlsx"
	"github.com/MrJamesThe3rd/moneymanager/internal/render"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

type fixture struct {
	txs      *report.MockTransactionSource
	budgets  *report.MockBudgetSource
	accounts *report.MockAccountSource
	loc      *time.Location
	svc      *report.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	f := &fixture{
		txs:      report.NewMockTransactionSource(ctrl),
		budgets:  report.NewMockBudgetSource(ctrl),
		accounts: report.NewMockAccountSource(ctrl),
		loc:      loc,
	}

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, loc)
	f.svc = report.NewService(f.txs, f.budgets, f.accounts, clock.NewFixed(now), loc, report.Options{Owner: "alex"})

	return f
}

func (f *fixture) tx(date, amount, cat string, typ transaction.Type) *transaction.Transaction {
	d, err := time.ParseInLocation(time.DateOnly, date, f.loc)
	if err != nil {
		panic(err)
	}

	return &transaction.Transaction{
		ID:       uuid.New(),
		Date:     d.Add(10 * time.Hour),
		Amount:   decimal.RequireFromString(amount),
		Type:     typ,
		Currency: "USD",
		Category: cat,
		Account:  "Checking",
	}
}

func (f *fixture) feed() []*transaction.Transaction {
	return []*transaction.Transaction{
		f.tx("2024-01-01", "10", "Food", transaction.TypeExpense),
		f.tx("2024-01-01", "5", "Transport", transaction.TypeExpense),
		f.tx("2024-01-02", "20", "Food", transaction.TypeExpense),
		f.tx("2024-01-02", "1000", "Salary", transaction.TypeIncome),
		f.tx("2024-02-10", "7.25", "Food", transaction.TypeExpense),
	}
}

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return &t
}

func TestService_Chart(t *testing.T) {
	for _, kind := range report.ChartKinds {
		t.Run(string(kind), func(t *testing.T) {
			f := newFixture(t)
			f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(f.feed(), nil)

			if kind == report.ChartBudgetVsActual {
				f.budgets.EXPECT().List(gomock.Any()).Return([]category.Budget{
					{Name: "Food", MonthlyBudget: decimal.NewFromInt(300)},
					{Name: "Rent", MonthlyBudget: decimal.NewFromInt(900)},
				}, nil)
			}

			art, err := f.svc.Chart(context.Background(), kind, analytics.Window{From: day("2024-01-01"), To: day("2024-02-29")})
			require.NoError(t, err)

			assert.Equal(t, render.MIMEPNG, art.MIMEType)

			_, err = png.Decode(bytes.NewReader(art.Data))
			require.NoError(t, err)
		})
	}
}

func TestService_Chart_Errors(t *testing.T) {
	type testCase struct {
		name    string
		kind    report.ChartKind
		window  analytics.Window
		setup   func(f *fixture)
		wantErr func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name:   "InvertedWindow",
			kind:   report.ChartExpenseBar,
			window: analytics.Window{From: day("2024-02-01"), To: day("2024-01-01")},
			setup:  func(f *fixture) {},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, analytics.IsValidation(err))
			},
		},
		{
			name:   "OnlyIncomeInWindow",
			kind:   report.ChartCategoryPie,
			window: analytics.Window{From: day("2024-01-02"), To: day("2024-01-02")},
			setup: func(f *fixture) {
				f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{
					f.tx("2024-01-02", "1000", "Salary", transaction.TypeIncome),
				}, nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, analytics.ErrNoData)
			},
		},
		{
			name:   "StoreFailure",
			kind:   report.ChartCategoryBar,
			window: analytics.Window{},
			setup: func(f *fixture) {
				f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "loading transactions")
			},
		},
		{
			name:   "NegativeAmountInFeed",
			kind:   report.ChartExpenseBar,
			window: analytics.Window{},
			setup: func(f *fixture) {
				bad := f.tx("2024-01-01", "1", "Food", transaction.TypeExpense)
				bad.Amount = decimal.NewFromInt(-1)
				f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{bad}, nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, analytics.IsValidation(err))
			},
		},
		{
			name:    "UnknownKind",
			kind:    report.ChartKind("radar"),
			setup:   func(f *fixture) {},
			wantErr: func(t *testing.T, err error) { assert.ErrorContains(t, err, "unknown chart kind") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			art, err := f.svc.Chart(context.Background(), tt.kind, tt.window)
			require.Error(t, err)
			assert.Nil(t, art)
			tt.wantErr(t, err)
		})
	}
}

func TestService_Chart_FiltersToWindowInZone(t *testing.T) {
	f := newFixture(t)

	// 02:00 UTC on Jan 2 is still Jan 1 in New York.
	late := &transaction.Transaction{
		ID: uuid.New(), Date: time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(3), Type: transaction.TypeExpense, Category: "Food",
	}
	outside := f.tx("2024-01-03", "50", "Food", transaction.TypeExpense)

	f.txs.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			require.NotNil(t, filter.StartDate)
			require.NotNil(t, filter.EndDate)
			assert.True(t, filter.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, f.loc)))
			assert.True(t, filter.EndDate.Before(time.Date(2024, 1, 2, 0, 0, 0, 0, f.loc)))

			return []*transaction.Transaction{late, outside}, nil
		})
	f.budgets.EXPECT().List(gomock.Any()).Return(nil, nil)

	got, err := f.svc.Summary(context.Background(), analytics.Window{From: day("2024-01-01"), To: day("2024-01-01")})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(3).Equal(got.Total))
	require.Len(t, got.ByDay, 1)
	assert.Equal(t, "2024-01-01", got.ByDay[0].Label)
}

func TestService_Summary(t *testing.T) {
	f := newFixture(t)
	f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(f.feed(), nil)
	f.budgets.EXPECT().List(gomock.Any()).Return([]category.Budget{
		{Name: "Food", MonthlyBudget: decimal.NewFromInt(300)},
		{Name: "Rent", MonthlyBudget: decimal.NewFromInt(900)},
	}, nil)

	got, err := f.svc.Summary(context.Background(), analytics.Window{From: day("2024-01-01"), To: day("2024-01-15")})
	require.NoError(t, err)

	assert.Equal(t, "Date Range: 2024-01-01 to 2024-01-15", got.DateRange)
	assert.Equal(t, 15, got.Days)
	assert.True(t, decimal.NewFromInt(35).Equal(got.Total))
	assert.True(t, decimal.NewFromInt(1000).Equal(got.Income))

	require.Len(t, got.ByCategory, 2)
	assert.Equal(t, "Food", got.ByCategory[0].Category)
	assert.True(t, decimal.NewFromInt(30).Equal(got.ByCategory[0].Amount))

	require.Len(t, got.ByDay, 2)
	require.Len(t, got.ByMonth, 1)

	require.Len(t, got.Budget, 3)
	assert.Equal(t, "Food", got.Budget[0].Category)
	assert.True(t, decimal.NewFromInt(150).Equal(got.Budget[0].Budgeted))
	assert.Equal(t, "Transport", got.Budget[1].Category)
	assert.True(t, got.Budget[1].Budgeted.IsZero())
	assert.Equal(t, "Rent", got.Budget[2].Category)
	assert.True(t, got.Budget[2].Actual.IsZero())
	assert.True(t, decimal.NewFromInt(450).Equal(got.Budget[2].Budgeted))
}

func TestService_Summary_OpenFromUsesLastExpense(t *testing.T) {
	f := newFixture(t)
	f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(f.feed(), nil)
	f.budgets.EXPECT().List(gomock.Any()).Return(nil, nil)

	got, err := f.svc.Summary(context.Background(), analytics.Window{From: day("2024-02-01")})
	require.NoError(t, err)

	assert.Equal(t, 10, got.Days)
}

func TestService_Export_CSVRoundTrip(t *testing.T) {
	f := newFixture(t)
	feed := f.feed()
	f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(feed, nil)

	art, err := f.svc.Export(context.Background(), report.FormatCSV, report.DatasetTransactions, analytics.Window{})
	require.NoError(t, err)
	assert.Equal(t, "transactions.csv", art.Filename)

	got, err := mmcsv.New(f.loc).Parse(bytes.NewReader(art.Data))
	require.NoError(t, err)
	require.Len(t, got, len(feed))

	for i, want := range feed {
		assert.True(t, want.Date.Equal(got[i].Date), "row %d date", i)
		assert.Equal(t, want.Category, got[i].Category)
		assert.True(t, want.Amount.Equal(got[i].Amount), "row %d amount", i)
		assert.Equal(t, want.Type, got[i].Type)
	}
}

func TestService_Export_XLSXRoundTrip(t *testing.T) {
	f := newFixture(t)
	feed := f.feed()

	f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(feed, nil)
	f.budgets.EXPECT().List(gomock.Any()).Return([]category.Budget{{Name: "Food", MonthlyBudget: decimal.NewFromInt(300)}}, nil)
	f.accounts.EXPECT().List(gomock.Any()).Return([]account.Account{
		{ID: uuid.New(), Name: "Checking", Balance: decimal.NewFromInt(1500), Currency: "USD"},
	}, nil)

	art, err := f.svc.Export(context.Background(), report.FormatXLSX, "", analytics.Window{})
	require.NoError(t, err)
	assert.Equal(t, render.MIMEXLSX, art.MIMEType)

	got, err := mmxlsx.New(f.loc).Parse(bytes.NewReader(art.Data))
	require.NoError(t, err)
	require.Len(t, got, len(feed))

	for i, want := range feed {
		assert.True(t, want.Date.Equal(got[i].Date), "row %d date", i)
		assert.Equal(t, want.Category, got[i].Category)
		assert.True(t, want.Amount.Equal(got[i].Amount), "row %d amount", i)
	}
}

func TestService_Export_BudgetCSV(t *testing.T) {
	f := newFixture(t)
	f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(f.feed(), nil)
	f.budgets.EXPECT().List(gomock.Any()).Return([]category.Budget{{Name: "Food", MonthlyBudget: decimal.NewFromInt(300)}}, nil)

	art, err := f.svc.Export(context.Background(), report.FormatCSV, report.DatasetBudget,
		analytics.Window{From: day("2024-01-01"), To: day("2024-01-30")})
	require.NoError(t, err)

	assert.Equal(t, "budget.csv", art.Filename)
	assert.Equal(t,
		"category,budgeted,actual,remaining\nFood,300.00,30.00,270.00\nTransport,0.00,5.00,-5.00\n",
		string(art.Data))
}

func TestService_Export_PDF(t *testing.T) {
	f := newFixture(t)
	f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(f.feed(), nil)
	f.budgets.EXPECT().List(gomock.Any()).Return(nil, nil)
	f.accounts.EXPECT().List(gomock.Any()).Return(nil, nil)

	art, err := f.svc.Export(context.Background(), report.FormatPDF, "", analytics.Window{})
	require.NoError(t, err)

	assert.Equal(t, render.MIMEPDF, art.MIMEType)
	assert.True(t, bytes.HasPrefix(art.Data, []byte("%PDF-")))
}

func TestService_Export_Empty(t *testing.T) {
	f := newFixture(t)
	f.accounts.EXPECT().List(gomock.Any()).Return(nil, nil)

	_, err := f.svc.Export(context.Background(), report.FormatCSV, report.DatasetAccounts, analytics.Window{})
	assert.ErrorIs(t, err, analytics.ErrNoData)
}

func TestService_Export_BudgetWithoutExpenses(t *testing.T) {
	f := newFixture(t)
	f.txs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{
		f.tx("2024-01-05", "900", "Salary", transaction.TypeIncome),
	}, nil)
	f.budgets.EXPECT().List(gomock.Any()).Return([]category.Budget{
		{Name: "Food", MonthlyBudget: decimal.NewFromInt(300)},
	}, nil).AnyTimes()

	w := analytics.Between(
		time.Date(2024, 1, 1, 0, 0, 0, 0, f.loc),
		time.Date(2024, 1, 10, 0, 0, 0, 0, f.loc),
	)

	art, err := f.svc.Export(context.Background(), report.FormatCSV, report.DatasetBudget, w)
	require.ErrorIs(t, err, analytics.ErrNoData)
	assert.Nil(t, art)
}

func TestParseDataset(t *testing.T) {
	got, ok := report.ParseDataset("Expenses")
	require.True(t, ok)
	assert.Equal(t, report.DatasetTransactions, got)

	_, ok = report.ParseDataset("receipts")
	assert.False(t, ok)
}
