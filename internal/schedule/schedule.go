// Package schedule runs the periodic budget report and pushes it to a chat.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/export"
	"github.com/MrJamesThe3rd/moneymanager/internal/render"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
)

type Reporter interface {
	Chart(ctx context.Context, kind report.ChartKind, w analytics.Window) (*render.Artifact, error)
	Summary(ctx context.Context, w analytics.Window) (*report.Summary, error)
	Now() time.Time
}

// Sender delivers finished reports to a chat.
type Sender interface {
	SendArtifact(chatID int64, art *render.Artifact) error
	SendText(chatID int64, text string) error
}

// MonthlyBudget sends the budget-vs-actual chart of the previous calendar
// month, followed by a text digest.
type MonthlyBudget struct {
	reports Reporter
	digests *export.Service
	sender  Sender
	chatID  int64
	timeout time.Duration
}

func NewMonthlyBudget(reports Reporter, digests *export.Service, sender Sender, chatID int64) *MonthlyBudget {
	return &MonthlyBudget{reports: reports, digests: digests, sender: sender, chatID: chatID, timeout: 2 * time.Minute}
}

// Run implements cron.Job.
func (j *MonthlyBudget) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.Send(ctx); err != nil {
		slog.Error("scheduled budget report", "chat_id", j.chatID, "error", err)
	}
}

// Send renders and delivers one report.
func (j *MonthlyBudget) Send(ctx context.Context) error {
	w := analytics.TimeframeLastMonth.Window(j.reports.Now())

	art, err := j.reports.Chart(ctx, report.ChartBudgetVsActual, w)
	if errors.Is(err, analytics.ErrNoData) {
		return j.sender.SendText(j.chatID, "No expenses recorded. "+analytics.DateRangeText(w))
	}

	if err != nil {
		return fmt.Errorf("rendering budget chart: %w", err)
	}

	if err := j.sender.SendArtifact(j.chatID, art); err != nil {
		return err
	}

	sum, err := j.reports.Summary(ctx, w)
	if err != nil {
		return fmt.Errorf("summarising: %w", err)
	}

	return j.sender.SendText(j.chatID, j.digests.GenerateSummary(sum, nil))
}

// Run schedules job on spec, a six-field cron expression evaluated in loc, and
// blocks until ctx is cancelled.
func Run(ctx context.Context, spec string, loc *time.Location, job cron.Job) error {
	c := cron.NewWithLocation(loc)
	if err := c.AddJob(spec, job); err != nil {
		return fmt.Errorf("parsing schedule %q: %w", spec, err)
	}

	c.Start()
	slog.Info("report schedule started", "spec", spec, "location", loc.String())

	<-ctx.Done()
	c.Stop()

	return nil
}
