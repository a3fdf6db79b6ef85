package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/export"
	"github.com/MrJamesThe3rd/moneymanager/internal/render"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
	"github.com/MrJamesThe3rd/moneymanager/internal/schedule"
)

type stubReporter struct {
	chartErr error
	window   analytics.Window
}

func (s *stubReporter) Chart(_ context.Context, kind report.ChartKind, w analytics.Window) (*render.Artifact, error) {
	s.window = w
	if s.chartErr != nil {
		return nil, s.chartErr
	}

	return &render.Artifact{Data: []byte("png"), MIMEType: render.MIMEPNG, Filename: string(kind) + ".png"}, nil
}

func (s *stubReporter) Summary(context.Context, analytics.Window) (*report.Summary, error) {
	return &report.Summary{
		DateRange: "Date Range: 2024-02-01 to 2024-02-29",
		Days:      29,
		Total:     decimal.NewFromInt(120),
		Budget: []analytics.BudgetRow{
			{Category: "Food", Budgeted: decimal.NewFromInt(100), Actual: decimal.NewFromInt(120)},
		},
	}, nil
}

func (s *stubReporter) Now() time.Time {
	return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
}

type recorder struct {
	chats []int64
	files []string
	texts []string
}

func (r *recorder) SendArtifact(chatID int64, art *render.Artifact) error {
	r.chats = append(r.chats, chatID)
	r.files = append(r.files, art.Filename)

	return nil
}

func (r *recorder) SendText(chatID int64, text string) error {
	r.chats = append(r.chats, chatID)
	r.texts = append(r.texts, text)

	return nil
}

func TestMonthlyBudget_Send(t *testing.T) {
	reports := &stubReporter{}
	sender := &recorder{}

	job := schedule.NewMonthlyBudget(reports, export.NewService(nil), sender, 99)
	require.NoError(t, job.Send(context.Background()))

	assert.Equal(t, analytics.MonthOf(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)), reports.window)
	assert.Equal(t, []int64{99, 99}, sender.chats)
	assert.Equal(t, []string{"budget-vs-actual.png"}, sender.files)
	require.Len(t, sender.texts, 1)
	assert.Contains(t, sender.texts[0], "* Food | $120.00 of $100.00 | over by $20.00")
}

func TestMonthlyBudget_SendWithoutExpenses(t *testing.T) {
	sender := &recorder{}

	job := schedule.NewMonthlyBudget(&stubReporter{chartErr: analytics.ErrNoData}, export.NewService(nil), sender, 99)
	require.NoError(t, job.Send(context.Background()))

	assert.Empty(t, sender.files)
	assert.Equal(t, []string{"No expenses recorded. Date Range: 2024-02-01 to 2024-02-29"}, sender.texts)
}

func TestMonthlyBudget_SendFails(t *testing.T) {
	sender := &recorder{}

	job := schedule.NewMonthlyBudget(&stubReporter{chartErr: assert.AnError}, export.NewService(nil), sender, 99)
	require.ErrorIs(t, job.Send(context.Background()), assert.AnError)
	assert.Empty(t, sender.chats)
}

func TestRun(t *testing.T) {
	job := schedule.NewMonthlyBudget(&stubReporter{}, export.NewService(nil), &recorder{}, 99)

	err := schedule.Run(context.Background(), "not a spec", time.UTC, job)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, schedule.Run(ctx, "0 0 8 1 * *", time.UTC, job))
}
