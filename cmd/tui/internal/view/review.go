package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
	"github.com/MrJamesThe3rd/moneymanager/internal/matching"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

// ReviewModel walks through uncategorized transactions one at a time and
// learns a description mapping from every answer.
type ReviewModel struct {
	CommonModel
	txService       *transaction.Service
	matchingService *matching.Service

	state           ReviewState
	timeframePicker TimeframePicker
	loc             *time.Location

	queue     []*transaction.Transaction
	currentTx *transaction.Transaction

	categoryInput textinput.Model

	status     string
	loading    bool
	totalCount int
}

type ReviewState int

const (
	StateSelectTimeframe ReviewState = iota
	StateReviewing
)

func NewReviewModel(txSvc *transaction.Service, matchSvc *matching.Service, clk clock.Clock, loc *time.Location) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "Category"
	ti.Width = 40

	return ReviewModel{
		txService:       txSvc,
		matchingService: matchSvc,
		timeframePicker: NewTimeframePicker(clk, analytics.TimeframeThisMonth),
		loc:             loc,
		categoryInput:   ti,
		state:           StateSelectTimeframe,
	}
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.state = StateReviewing
		m.loading = true

		return m, m.loadUncategorizedCmd(msg.Window)

	case loadUncategorizedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading transactions: %v", msg.err)
			break
		}

		m.queue = msg.txs
		m.totalCount = len(m.queue)

		if len(m.queue) > 0 {
			m.nextTx()
			return m, textinput.Blink
		}

		m.status = "Every transaction in this period has a category."

	case saveResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			break
		}

		m.nextTx()

		return m, textinput.Blink

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		if m.state == StateSelectTimeframe {
			if msg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
				return m, Back
			}

			m.timeframePicker, cmd = m.timeframePicker.Update(msg)

			return m, cmd
		}

		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			if m.currentTx != nil && strings.TrimSpace(m.categoryInput.Value()) != "" {
				return m, m.saveAndNextCmd(strings.TrimSpace(m.categoryInput.Value()))
			}
		case tea.KeyCtrlN:
			// skip without saving
			m.nextTx()
			return m, nil
		}
	}

	if m.state == StateSelectTimeframe {
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)
		return m, cmd
	}

	m.categoryInput, cmd = m.categoryInput.Update(msg)

	return m, cmd
}

func (m ReviewModel) View() string {
	if m.state == StateSelectTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(
			"Categorize transactions recorded without a category.\n\n" + m.timeframePicker.View(),
		)
	}

	content := ""

	switch {
	case m.loading:
		content = "Loading transactions..."
	case m.currentTx != nil:
		info := fmt.Sprintf(
			"Date: %s\nType: %s\nAmount: %s\nAccount: %s\nDescription: %s\n",
			FormatDate(m.currentTx.Date),
			m.currentTx.Type,
			FormatAmount(m.currentTx.Amount),
			m.currentTx.Account,
			m.currentTx.Description,
		)
		content = fmt.Sprintf("%s\n\n%s\nCategory:\n%s\n\n(Enter to save & next, Ctrl+N to skip, Esc to quit)",
			m.status, info, m.categoryInput.View())
	default:
		content = m.status + "\n\n(Esc to back)"
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type loadUncategorizedMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ReviewModel) loadUncategorizedCmd(w analytics.Window) tea.Cmd {
	return func() tea.Msg {
		filter := transaction.ListFilter{Category: new("")}
		filter.Within(w.Bounds(m.loc))

		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, filter)

		return loadUncategorizedMsg{txs: txs, err: err}
	}
}

func (m *ReviewModel) nextTx() {
	if len(m.queue) == 0 {
		m.currentTx = nil
		m.status = "All done!"
		m.categoryInput.SetValue("")
		m.categoryInput.Blur()

		return
	}

	m.currentTx = m.queue[0]
	m.queue = m.queue[1:]

	m.status = fmt.Sprintf("Reviewing %d/%d", m.totalCount-len(m.queue), m.totalCount)
	m.categoryInput.Focus()

	ctx, cancel := DbCtx()
	defer cancel()

	suggestion, _ := m.matchingService.Suggest(ctx, m.currentTx.Description)
	m.categoryInput.SetValue(suggestion)
}

type saveResultMsg struct {
	err error
}

func (m ReviewModel) saveAndNextCmd(category string) tea.Cmd {
	tx := m.currentTx

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if tx.Description != "" {
			_ = m.matchingService.Learn(ctx, tx.Description, category)
		}

		tx.Category = category

		return saveResultMsg{err: m.txService.Update(ctx, tx)}
	}
}
