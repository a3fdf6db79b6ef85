package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/moneymanager/internal/account"
	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/category"
	"github.com/MrJamesThe3rd/moneymanager/internal/render"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var Formats = []Format{FormatCSV, FormatXLSX, FormatPDF}

func ParseFormat(s string) (Format, bool) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, true
		}
	}

	return "", false
}

// Dataset selects what a single-section CSV export contains.
type Dataset string

const (
	DatasetTransactions Dataset = "transactions"
	DatasetAccounts     Dataset = "accounts"
	DatasetCategories   Dataset = "categories"
	DatasetBudget       Dataset = "budget"
)

var Datasets = []Dataset{DatasetTransactions, DatasetAccounts, DatasetCategories, DatasetBudget}

// ParseDataset accepts "expenses" as an alias for transactions.
func ParseDataset(s string) (Dataset, bool) {
	s = strings.ToLower(s)
	if s == "expenses" {
		return DatasetTransactions, true
	}

	for _, d := range Datasets {
		if string(d) == s {
			return d, true
		}
	}

	return "", false
}

// TransactionColumns is the header of the transactions section. The importer
// reads files with this header back.
var TransactionColumns = []string{"date", "amount", "currency", "category", "description", "account_name", "type", "id"}

const documentDescription = "Money Manager helps you track your expenses, manage your accounts " +
	"and set budgets for your categories. This document lists the records of the selected period."

// Export renders a CSV of one dataset, or a workbook or document combining all
// of them. Datasets are ignored for combined formats.
func (s *Service) Export(ctx context.Context, format Format, dataset Dataset, w analytics.Window) (*render.Artifact, error) {
	switch format {
	case FormatCSV:
		section, err := s.section(ctx, dataset, w)
		if err != nil {
			return nil, err
		}

		return render.CSV(*section)
	case FormatXLSX, FormatPDF:
		doc, err := s.Document(ctx, w)
		if err != nil {
			return nil, err
		}

		if format == FormatXLSX {
			return render.XLSX(*doc, "money_manager_export")
		}

		return render.PDF(*doc, "money_manager_export")
	}

	return nil, fmt.Errorf("unknown export format %q", format)
}

// Document assembles every section for w in display order.
func (s *Service) Document(ctx context.Context, w analytics.Window) (*render.Document, error) {
	f, err := s.load(ctx, w)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading budgets: %w", err)
	}

	days, err := s.days(f)
	if err != nil {
		return nil, err
	}

	rows, err := analytics.CompareBudgets(f.expenses, budgets, days)
	if err != nil {
		return nil, err
	}

	return &render.Document{
		Title:       strings.ToUpper(s.opts.Product),
		Product:     s.opts.Product,
		Description: documentDescription,
		Owner:       s.opts.Owner,
		Sections: []render.Section{
			transactionSection(f.all, w, s.loc),
			accountSection(accounts),
			categorySection(budgets),
			budgetSection(rows, w, days),
		},
		TableOfContents: true,
		GeneratedAt:     s.Now(),
	}, nil
}

func (s *Service) section(ctx context.Context, dataset Dataset, w analytics.Window) (*render.Section, error) {
	var section render.Section

	switch dataset {
	case DatasetTransactions:
		f, err := s.load(ctx, w)
		if err != nil {
			return nil, err
		}

		section = transactionSection(f.all, w, s.loc)
	case DatasetAccounts:
		accounts, err := s.accounts.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading accounts: %w", err)
		}

		section = accountSection(accounts)
	case DatasetCategories:
		budgets, err := s.budgets.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading budgets: %w", err)
		}

		section = categorySection(budgets)
	case DatasetBudget:
		f, err := s.load(ctx, w)
		if err != nil {
			return nil, err
		}

		if len(f.expenses) == 0 {
			return nil, analytics.ErrNoData
		}

		rows, days, err := s.budgetRows(ctx, f)
		if err != nil {
			return nil, err
		}

		section = budgetSection(rows, w, days)
	default:
		return nil, fmt.Errorf("unknown dataset %q", dataset)
	}

	return &section, nil
}

func transactionSection(txns []*transaction.Transaction, w analytics.Window, loc *time.Location) render.Section {
	rows := make([][]any, len(txns))
	for i, t := range txns {
		rows[i] = []any{t.Date.In(loc), t.Amount, t.Currency, t.Category, t.Description, t.Account, string(t.Type), t.ID.String()}
	}

	return render.Section{
		Name:    "Transactions",
		Heading: "Transactions",
		Note:    analytics.DateRangeText(w),
		Columns: TransactionColumns,
		Rows:    rows,
	}
}

func accountSection(accounts []account.Account) render.Section {
	rows := make([][]any, len(accounts))
	for i, a := range accounts {
		rows[i] = []any{a.Name, a.Balance, a.Currency, a.ID.String()}
	}

	return render.Section{
		Name:    "Accounts",
		Heading: "Accounts",
		Columns: []string{"name", "balance", "currency", "id"},
		Rows:    rows,
	}
}

func categorySection(budgets []category.Budget) render.Section {
	rows := make([][]any, len(budgets))
	for i, b := range budgets {
		rows[i] = []any{b.Name, b.MonthlyBudget}
	}

	return render.Section{
		Name:    "Categories",
		Heading: "Categories",
		Columns: []string{"name", "monthly_budget"},
		Rows:    rows,
	}
}

func budgetSection(budget []analytics.BudgetRow, w analytics.Window, days int) render.Section {
	rows := make([][]any, len(budget))
	for i, r := range budget {
		rows[i] = []any{r.Category, r.Budgeted, r.Actual, r.Remaining()}
	}

	return render.Section{
		Name:    "Budget",
		Heading: "Budget vs Actual",
		Note:    fmt.Sprintf("%s (%d days)", analytics.DateRangeText(w), days),
		Columns: []string{"category", "budgeted", "actual", "remaining"},
		Rows:    rows,
	}
}
