package view

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

func TestTimeframePicker_Preset(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	p := NewTimeframePicker(clock.NewFixed(now), analytics.TimeframeThisMonth)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "Last Month", msg.Label)
	assert.Equal(t, analytics.TimeframeLastMonth.Window(now), msg.Window)
}

func TestTimeframePicker_CustomRange(t *testing.T) {
	p := NewTimeframePicker(clock.NewFixed(time.Now()), analytics.TimeframeAll)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, p.IsSelecting())

	p.startInput.SetValue("2024-02-10")
	p.endInput.SetValue("2024-02-01")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	require.Error(t, p.err)
	assert.True(t, analytics.IsValidation(p.err))

	p.endInput.SetValue("")

	_, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd().(TimeframeSelectedMsg)
	assert.Equal(t, "Date Range: From 2024-02-10", msg.Label)
	assert.Nil(t, msg.Window.To)
}

func TestParseCustomWindow_BadDate(t *testing.T) {
	_, err := parseCustomWindow("2024-13-01", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date")
}

func TestBudgetRows(t *testing.T) {
	rows := budgetRows([]analytics.BudgetRow{
		{Category: "Food", Budgeted: decimal.NewFromInt(200), Actual: decimal.NewFromInt(50)},
		{Category: "Gifts", Budgeted: decimal.Zero, Actual: decimal.RequireFromString("12.5")},
	})

	assert.Equal(t, []table.Row{
		{"Food", "$200.00", "$50.00", "$150.00", "25%"},
		{"Gifts", "$0.00", "$12.50", "-$12.50", "-"},
	}, rows)
}

func TestPreviewImport(t *testing.T) {
	jan := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	p := previewImport([]transaction.CreateParams{
		{Date: jan(9), Amount: decimal.NewFromInt(40), Category: "Food"},
		{Date: jan(2), Amount: decimal.NewFromInt(1000), Type: transaction.TypeIncome, Category: "Salary"},
		{Date: jan(5), Amount: decimal.RequireFromString("2.5"), Type: transaction.TypeExpense},
	}, 1)

	assert.Equal(t, 3, p.rows)
	assert.Equal(t, 1, p.uncategorized)
	assert.Equal(t, jan(2), p.first)
	assert.Equal(t, jan(9), p.last)
	assert.Equal(t, "$42.50", FormatAmount(p.expenses))
	assert.Equal(t, "$1,000.00", FormatAmount(p.income))
	assert.Contains(t, p.String(), "3 transactions from 2024-01-02 to 2024-01-09")
	assert.Equal(t, "The file has no transactions.", previewImport(nil, 0).String())
}

func TestConflictRows(t *testing.T) {
	id := uuid.MustParse("0c4f1a2b-0000-4000-8000-000000000000")
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	rows := conflictRows([]transaction.Conflict{{
		Incoming: transaction.CreateParams{
			Date: day, Amount: decimal.NewFromInt(12), Type: transaction.TypeExpense,
			Category: "Food", Account: "Cash",
		},
		Existing: &transaction.Transaction{ID: id, Account: "Cash", Description: "Lunch"},
	}}, map[int]bool{0: true})

	assert.Equal(t, []table.Row{
		{"x", "2024-01-03", "expense", "$12.00", "Food", "Cash", "Cash Lunch [0c4f1a2b]"},
	}, rows)
}
