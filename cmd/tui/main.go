package main

import (
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/moneymanager/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/moneymanager/internal/account"
	accountStore "github.com/MrJamesThe3rd/moneymanager/internal/account/store"
	"github.com/MrJamesThe3rd/moneymanager/internal/category"
	categoryStore "github.com/MrJamesThe3rd/moneymanager/internal/category/store"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
	"github.com/MrJamesThe3rd/moneymanager/internal/config"
	"github.com/MrJamesThe3rd/moneymanager/internal/database"
	"github.com/MrJamesThe3rd/moneymanager/internal/export"
	"github.com/MrJamesThe3rd/moneymanager/internal/importer"
	"github.com/MrJamesThe3rd/moneymanager/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/moneymanager/internal/matching/store"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
	txStore "github.com/MrJamesThe3rd/moneymanager/internal/transaction/store"
)

type model struct {
	name string
	clk  clock.Clock
	loc  *time.Location

	txService       *transaction.Service
	categoryService *category.Service
	matchingService *matching.Service
	importService   *importer.Service
	reportService   *report.Service
	exportService   *export.Service

	currentView View

	importView   view.ImportModel
	reviewView   view.ReviewModel
	listView     view.ListModel
	categoryView view.CategoryModel
	budgetView   view.BudgetModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewImport   View = 1
	ViewReview   View = 2
	ViewList     View = 3
	ViewCategory View = 4
	ViewBudget   View = 5
	ViewExport   View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load time zone", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	clk := clock.NewReal()

	txSvc := transaction.NewService(txStore.New(db))
	catSvc := category.NewService(categoryStore.New(db))
	matchSvc := matching.NewService(matchingStore.New(db))
	impSvc := importer.NewService(loc)
	repSvc := report.NewService(txSvc, catSvc, account.NewService(accountStore.New(db)), clk, loc,
		report.Options{Product: cfg.App.Name, Owner: cfg.App.Owner})
	expSvc := export.NewService(repSvc)

	return model{
		name:            cfg.App.Name,
		clk:             clk,
		loc:             loc,
		txService:       txSvc,
		categoryService: catSvc,
		matchingService: matchSvc,
		importService:   impSvc,
		reportService:   repSvc,
		exportService:   expSvc,
		currentView:     ViewMenu,
		importView:      view.NewImportModel(txSvc, impSvc, matchSvc),
		reviewView:      view.NewReviewModel(txSvc, matchSvc, clk, loc),
		listView:        view.NewListModel(txSvc, clk),
		categoryView:    view.NewCategoryModel(catSvc),
		budgetView:      view.NewBudgetModel(repSvc, clk),
		exportView:      view.NewExportModel(expSvc, clk),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				return m, m.importView.Init()
			case "2":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.txService, m.matchingService, m.clk, m.loc)

				return m, m.reviewView.Init()
			case "3":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.txService, m.clk)

				return m, m.listView.Init()
			case "4":
				m.currentView = ViewCategory
				m.categoryView = view.NewCategoryModel(m.categoryService)

				return m, m.categoryView.Init()
			case "5":
				m.currentView = ViewBudget
				m.budgetView = view.NewBudgetModel(m.reportService, m.clk)

				return m, m.budgetView.Init()
			case "6":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.clk)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewCategory:
		var newModel tea.Model
		newModel, cmd = m.categoryView.Update(msg)
		m.categoryView = newModel.(view.CategoryModel)
	case ViewBudget:
		var newModel tea.Model
		newModel, cmd = m.budgetView.Update(msg)
		m.budgetView = newModel.(view.BudgetModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.name + "\n\n" +
				"1. Import Transactions\n" +
				"2. Categorize Transactions\n" +
				"3. List All Transactions\n" +
				"4. Manage Budgets\n" +
				"5. Budget vs Actual\n" +
				"6. Export Report Bundle\n\n" +
				"q. Quit",
		)
	case ViewImport:
		return m.importView.View()
	case ViewReview:
		return m.reviewView.View()
	case ViewList:
		return m.listView.View()
	case ViewCategory:
		return m.categoryView.View()
	case ViewBudget:
		return m.budgetView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
