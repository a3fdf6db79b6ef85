package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymanager/internal/category"
)

type categoryState int

const (
	categoryStateBrowse categoryState = iota
	categoryStateEdit
)

// CategoryModel lists category budgets and edits their monthly amounts.
type CategoryModel struct {
	CommonModel
	categoryService *category.Service

	state   categoryState
	table   table.Model
	budgets []category.Budget
	form    *huh.Form

	formName   string
	formAmount string
	creating   bool

	status string
	err    error
}

func NewCategoryModel(svc *category.Service) CategoryModel {
	return CategoryModel{
		categoryService: svc,
		table: newTable([]table.Column{
			{Title: "Category", Width: 24},
			{Title: "Monthly Budget", Width: 16},
		}),
	}
}

func (m CategoryModel) Title() string { return "Manage Budgets" }

func (m CategoryModel) ShortHelp() string {
	if m.state == categoryStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | n: new | x: delete"
}

func (m CategoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CategoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCategoriesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.budgets = msg.budgets
		m.refreshTable()

		return m, nil

	case categorySaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = categoryStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()
	}

	if m.state == categoryStateEdit {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			return m.enterEdit(false)
		case "n":
			return m.enterEdit(true)
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoryModel) selected() (category.Budget, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.budgets) {
		return category.Budget{}, false
	}

	return m.budgets[idx], true
}

func (m CategoryModel) enterEdit(creating bool) (tea.Model, tea.Cmd) {
	m.creating = creating
	m.formName, m.formAmount = "", ""

	if !creating {
		b, ok := m.selected()
		if !ok {
			return m, nil
		}

		m.formName = b.Name
		m.formAmount = b.MonthlyBudget.StringFixed(2)
	}

	name := huh.NewInput().
		Key("name").
		Title("Category").
		Value(&m.formName).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return category.ErrMissingName
			}

			return nil
		})

	amount := huh.NewInput().
		Key("monthly_budget").
		Title("Monthly Budget").
		Placeholder("0.00").
		Value(&m.formAmount).
		Validate(func(s string) error {
			d, err := decimal.NewFromString(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("enter an amount like 250.00")
			}

			if d.IsNegative() {
				return category.ErrNegativeBudget
			}

			return nil
		})

	fields := []huh.Field{amount}
	if creating {
		fields = []huh.Field{name, amount}
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)
	m.state = categoryStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoryModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = categoryStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m *CategoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.budgets))
	for _, b := range m.budgets {
		rows = append(rows, table.Row{b.Name, FormatAmount(b.MonthlyBudget)})
	}

	m.table.SetRows(rows)
}

func (m CategoryModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to back)")
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if len(m.budgets) == 0 {
		content = "No budgets yet. Press n to add one."
	}

	if m.state == categoryStateEdit && m.form != nil {
		title := "Edit " + m.formName
		if m.creating {
			title = "New Budget"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content + "\n\n" + faintStyle.Render(m.ShortHelp()))
}

type loadCategoriesMsg struct {
	budgets []category.Budget
	err     error
}

func (m CategoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		budgets, err := m.categoryService.List(ctx)

		return loadCategoriesMsg{budgets: budgets, err: err}
	}
}

type categorySaveMsg struct {
	status string
	err    error
}

func (m CategoryModel) saveCmd() tea.Cmd {
	name := m.formName
	amount := decimal.RequireFromString(strings.TrimSpace(m.formAmount))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		b, err := m.categoryService.Set(ctx, name, amount)
		if err != nil {
			return categorySaveMsg{err: err}
		}

		return categorySaveMsg{status: fmt.Sprintf("Saved %s at %s per month.", b.Name, FormatAmount(b.MonthlyBudget))}
	}
}

func (m CategoryModel) deleteCmd() tea.Cmd {
	b, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.categoryService.Delete(ctx, b.Name); err != nil {
			return categorySaveMsg{err: err}
		}

		return categorySaveMsg{status: "Deleted " + b.Name + "."}
	}
}
