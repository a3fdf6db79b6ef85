// Package memory provides in-memory report sources for rendering from files
// without a database.
package memory

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymanager/internal/account"
	"github.com/MrJamesThe3rd/moneymanager/internal/category"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

// Transactions answers listings the way the Postgres store does: filters are
// inclusive and results are ordered by date.
type Transactions []*transaction.Transaction

// FromParams assigns each parsed row an identity.
func FromParams(params []transaction.CreateParams) (Transactions, error) {
	txs := make(Transactions, 0, len(params))

	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		tx := transaction.New(p)
		tx.ID = uuid.New()
		tx.CreatedAt = tx.Date

		txs = append(txs, tx)
	}

	return txs, nil
}

func (t Transactions) List(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction

	for _, tx := range t {
		if matches(tx, filter) {
			out = append(out, tx)
		}
	}

	slices.SortStableFunc(out, func(a, b *transaction.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	return out, nil
}

func matches(tx *transaction.Transaction, f transaction.ListFilter) bool {
	switch {
	case f.Type != nil && tx.Type != *f.Type:
		return false
	case f.Category != nil && tx.Category != *f.Category:
		return false
	case f.StartDate != nil && tx.Date.Before(*f.StartDate):
		return false
	case f.EndDate != nil && tx.Date.After(*f.EndDate):
		return false
	}

	return true
}

type Budgets []category.Budget

func (b Budgets) List(context.Context) ([]category.Budget, error) {
	out := slices.Clone(b)
	slices.SortFunc(out, func(x, y category.Budget) int { return strings.Compare(x.Name, y.Name) })

	return out, nil
}

type Accounts []account.Account

func (a Accounts) List(context.Context) ([]account.Account, error) {
	out := slices.Clone(a)
	slices.SortFunc(out, func(x, y account.Account) int { return strings.Compare(x.Name, y.Name) })

	return out, nil
}

// Setup is the YAML document holding budgets and accounts:
//
//	budgets:
//	  - name: Food
//	    monthly_budget: 300
//	accounts:
//	  - name: Checking
//	    balance: 1200.50
//	    currency: USD
type Setup struct {
	Budgets []struct {
		Name          string          `json:"name"`
		MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	} `json:"budgets"`
	Accounts []struct {
		Name     string          `json:"name"`
		Balance  decimal.Decimal `json:"balance"`
		Currency string          `json:"currency"`
	} `json:"accounts"`
}

// ReadSetup parses a setup document, rejecting duplicate or negative budgets.
func ReadSetup(r io.Reader) (Budgets, Accounts, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading setup: %w", err)
	}

	var s Setup
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, nil, fmt.Errorf("parsing setup: %w", err)
	}

	now := time.Now()
	seen := make(map[string]bool, len(s.Budgets))
	budgets := make(Budgets, 0, len(s.Budgets))

	for _, b := range s.Budgets {
		name := strings.TrimSpace(b.Name)

		switch {
		case name == "":
			return nil, nil, category.ErrMissingName
		case b.MonthlyBudget.IsNegative():
			return nil, nil, fmt.Errorf("%s: %w", name, category.ErrNegativeBudget)
		case seen[name]:
			return nil, nil, fmt.Errorf("duplicate budget %q", name)
		}

		seen[name] = true
		budgets = append(budgets, category.Budget{Name: name, MonthlyBudget: b.MonthlyBudget, CreatedAt: now, UpdatedAt: now})
	}

	accounts := make(Accounts, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		acc := account.Account{ID: uuid.New(), Name: a.Name, Balance: a.Balance, Currency: strings.ToUpper(a.Currency), CreatedAt: now}
		if acc.Currency == "" {
			acc.Currency = transaction.DefaultCurrency
		}

		accounts = append(accounts, acc)
	}

	return budgets, accounts, nil
}
