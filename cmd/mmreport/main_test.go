package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
)

func TestWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("Preset", func(t *testing.T) {
		w, err := window(options{period: "lastmonth", from: "2020-01-01"}, now, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, analytics.TimeframeLastMonth.Window(now), w)
	})

	t.Run("OpenEnd", func(t *testing.T) {
		w, err := window(options{from: "2024-02-10"}, now, time.UTC)
		require.NoError(t, err)
		require.NotNil(t, w.From)
		assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), *w.From)
		assert.Nil(t, w.To)
	})

	t.Run("Reversed", func(t *testing.T) {
		_, err := window(options{from: "2024-02-10", to: "2024-02-01"}, now, time.UTC)
		assert.True(t, analytics.IsValidation(err))
	})

	t.Run("BadDate", func(t *testing.T) {
		_, err := window(options{to: "10/02/2024"}, now, time.UTC)
		assert.EqualError(t, err, "invalid to: expected YYYY-MM-DD")
	})

	t.Run("UnknownPeriod", func(t *testing.T) {
		_, err := window(options{period: "fortnight"}, now, time.UTC)
		assert.Error(t, err)
	})
}

func TestRun_Flags(t *testing.T) {
	assert.EqualError(t, run(context.Background(), options{}), "-in is required")
	assert.Error(t, run(context.Background(), options{input: "x.csv", chart: "expense-bar", format: "csv"}))
	assert.Error(t, run(context.Background(), options{input: "x.csv", chart: "expense-bar", tz: "Nowhere/Town"}))
}

func TestRun_WritesChart(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	setup := filepath.Join(dir, "setup.yaml")

	require.NoError(t, os.WriteFile(input, []byte(
		"Date,Amount,Type,Category,Description\n"+
			"2024-02-03,40.00,expense,Food,Groceries\n"+
			"2024-02-10,15.50,expense,Transport,Bus\n",
	), 0o644))
	require.NoError(t, os.WriteFile(setup, []byte("budgets:\n  - name: Food\n    monthly_budget: 100\n"), 0o644))

	err := run(context.Background(), options{
		input: input,
		setup: setup,
		chart: "category-bar",
		from:  "2024-02-01",
		to:    "2024-02-29",
		out:   dir,
		tz:    "UTC",
	})
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
