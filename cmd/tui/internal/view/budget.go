package view

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
)

type budgetState int

const (
	budgetStateTimeframe budgetState = iota
	budgetStateTable
)

// BudgetModel shows prorated budget against actual spend per category.
type BudgetModel struct {
	CommonModel
	reports *report.Service

	state           budgetState
	timeframePicker TimeframePicker
	table           table.Model

	summary *report.Summary
	loading bool
	status  string
	err     error
}

func NewBudgetModel(reports *report.Service, clk clock.Clock) BudgetModel {
	return BudgetModel{
		reports:         reports,
		timeframePicker: NewTimeframePicker(clk, analytics.TimeframeThisMonth),
		table:           newTable(budgetColumns()),
	}
}

func budgetColumns() []table.Column {
	return []table.Column{
		{Title: "Category", Width: 20},
		{Title: "Budgeted", Width: 14},
		{Title: "Actual", Width: 14},
		{Title: "Remaining", Width: 14},
		{Title: "Used", Width: 8},
	}
}

// newTable builds a focused table with the shared header and selection style.
func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m BudgetModel) Title() string { return "Budget vs Actual" }

func (m BudgetModel) ShortHelp() string {
	if m.state == budgetStateTable {
		return "Esc: pick another period"
	}

	return "Esc: back | Enter: select"
}

func (m BudgetModel) Init() tea.Cmd {
	return nil
}

func (m BudgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.state = budgetStateTable
		m.loading = true
		m.status = msg.Label

		return m, m.loadCmd(msg.Window)

	case loadBudgetMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	if m.state == budgetStateTimeframe {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = budgetStateTimeframe
		m.timeframePicker.Reset()

		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *BudgetModel) refreshTable() {
	if m.summary == nil {
		m.table.SetRows(nil)
		return
	}

	m.table.SetRows(budgetRows(m.summary.Budget))
}

func budgetRows(budget []analytics.BudgetRow) []table.Row {
	rows := make([]table.Row, 0, len(budget))

	for _, r := range budget {
		used := "-"
		if r.Budgeted.IsPositive() {
			used = r.Actual.Div(r.Budgeted).Shift(2).StringFixed(0) + "%"
		}

		rows = append(rows, table.Row{
			r.Category,
			FormatAmount(r.Budgeted),
			FormatAmount(r.Actual),
			FormatAmount(r.Remaining()),
			used,
		})
	}

	return rows
}

func (m BudgetModel) View() string {
	if m.state == budgetStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Computing budget...")
	}

	if m.err != nil {
		text := fmt.Sprintf("Error: %v", m.err)
		if errors.Is(m.err, analytics.ErrNoData) {
			text = "No expenses found for " + m.status + "."
		}

		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(text) + "\n\n(Esc to go back)")
	}

	header := fmt.Sprintf("%s  |  %s (%d days)  |  Total Spend: %s",
		activeStyle(m.status), m.summary.DateRange, m.summary.Days, FormatAmount(m.summary.Total))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	))
}

type loadBudgetMsg struct {
	summary *report.Summary
	err     error
}

func (m BudgetModel) loadCmd(w analytics.Window) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sum, err := m.reports.Summary(ctx, w)

		return loadBudgetMsg{summary: sum, err: err}
	}
}
