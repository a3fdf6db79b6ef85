// Package report runs the reporting pipeline: it loads the transaction feed for
// a window, aggregates it and hands the result to the renderer.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/moneymanager/internal/account"
	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/category"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=report

type TransactionSource interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type BudgetSource interface {
	List(ctx context.Context) ([]category.Budget, error)
}

type AccountSource interface {
	List(ctx context.Context) ([]account.Account, error)
}

// Options carries the presentation settings stamped on documents.
type Options struct {
	Product string
	Owner   string
}

type Service struct {
	txs      TransactionSource
	budgets  BudgetSource
	accounts AccountSource
	clock    clock.Clock
	loc      *time.Location
	opts     Options
}

// NewService wires the sources together. Day and month boundaries are taken
// in loc.
func NewService(
	txs TransactionSource,
	budgets BudgetSource,
	accounts AccountSource,
	clk clock.Clock,
	loc *time.Location,
	opts Options,
) *Service {
	if loc == nil {
		loc = time.UTC
	}

	if opts.Product == "" {
		opts.Product = "Money Manager"
	}

	return &Service{txs: txs, budgets: budgets, accounts: accounts, clock: clk, loc: loc, opts: opts}
}

// Location is the zone reports are computed in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now is the current time in the reporting zone.
func (s *Service) Now() time.Time {
	return s.clock.Now().In(s.loc)
}

// feed is the window-filtered input of one report.
type feed struct {
	window   analytics.Window
	all      []*transaction.Transaction
	expenses []*transaction.Transaction
}

func (s *Service) load(ctx context.Context, w analytics.Window) (*feed, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	var filter transaction.ListFilter
	filter.Within(w.Bounds(s.loc))

	txns, err := s.txs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	if err := analytics.ValidateFeed(txns); err != nil {
		return nil, err
	}

	all := analytics.FilterToWindow(txns, w, s.loc)

	return &feed{
		window:   w,
		all:      all,
		expenses: analytics.OfType(all, transaction.TypeExpense),
	}, nil
}

// days resolves the window length against the expenses actually in it.
func (s *Service) days(f *feed) (int, error) {
	first, last := analytics.Extent(f.expenses, s.loc)
	return analytics.ResolveLength(f.window, first, last, s.Now())
}

func (s *Service) budgetRows(ctx context.Context, f *feed) ([]analytics.BudgetRow, int, error) {
	days, err := s.days(f)
	if err != nil {
		return nil, 0, err
	}

	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("loading budgets: %w", err)
	}

	rows, err := analytics.CompareBudgets(f.expenses, budgets, days)
	if err != nil {
		return nil, 0, err
	}

	return rows, days, nil
}
