package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymanager/internal/importer"
	"github.com/MrJamesThe3rd/moneymanager/internal/matching"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importStep int

const (
	importStepFormat importStep = iota
	importStepFile
	importStepBusy
	importStepPreview
	importStepConflicts
	importStepDone
)

// ImportModel reads a Money Manager export, fills in categories the matching
// service knows, previews the totals and then stores the rows. Rows that look
// like already stored transactions are only added when ticked.
type ImportModel struct {
	CommonModel
	txService       *transaction.Service
	importService   *importer.Service
	matchingService *matching.Service

	step       importStep
	formats    []importer.Format
	formatIdx  int
	format     importer.Format
	filePicker filepicker.Model

	parsed  []transaction.CreateParams
	preview importPreview

	pending   []transaction.CreateParams
	conflicts []transaction.Conflict
	keep      map[int]bool
	table     table.Model

	status string
	err    error
}

func NewImportModel(txSvc *transaction.Service, impSvc *importer.Service, matchSvc *matching.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		txService:       txSvc,
		importService:   impSvc,
		matchingService: matchSvc,
		formats:         impSvc.Formats(),
		filePicker:      fp,
		keep:            make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	switch m.step {
	case importStepPreview:
		return "Enter: import | Esc: cancel"
	case importStepConflicts:
		return "Space: keep/skip | a: keep all | n: skip all | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.cancel()
		}

		switch m.step {
		case importStepFormat:
			return m.updateFormat(msg)
		case importStepPreview:
			if msg.Type == tea.KeyEnter {
				m.step = importStepBusy
				m.status = fmt.Sprintf("Storing %d transactions...", len(m.parsed))

				return m, m.storeCmd(m.parsed)
			}

			return m, nil
		case importStepConflicts:
			return m.updateConflicts(msg)
		}

	case parsedMsg:
		if msg.err != nil {
			return m.finish(0, msg.err)
		}

		m.parsed = msg.params
		m.preview = previewImport(msg.params, msg.suggested)
		m.step = importStepPreview

		return m, nil

	case storedMsg:
		if msg.err != nil {
			return m.finish(0, msg.err)
		}

		if len(msg.result.Conflicts) == 0 {
			return m.finish(len(msg.result.Imported), nil)
		}

		m.pending = msg.result.New
		m.conflicts = msg.result.Conflicts
		m.keep = make(map[int]bool)
		m.table = newTable(conflictColumns)
		m.table.SetRows(conflictRows(m.conflicts, m.keep))
		m.step = importStepConflicts

		return m, nil

	case confirmedMsg:
		return m.finish(msg.count, msg.err)
	}

	if m.step != importStepFile {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if ok, path := m.filePicker.DidSelectFile(msg); ok {
		m.step = importStepBusy
		m.status = "Reading " + path + "..."

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) finish(count int, err error) (tea.Model, tea.Cmd) {
	m.step = importStepDone
	m.err = err
	m.status = fmt.Sprintf("Imported %d transactions.", count)

	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
	} else if m.preview.uncategorized > 0 {
		m.status += fmt.Sprintf("\n%d still have no category; use Categorize Transactions.", m.preview.uncategorized)
	}

	return m, nil
}

func (m ImportModel) cancel() (tea.Model, tea.Cmd) {
	switch m.step {
	case importStepFormat:
		return m, Back
	case importStepBusy:
		return m, nil
	}

	m.step = importStepFormat
	m.parsed, m.pending, m.conflicts = nil, nil, nil
	m.preview = importPreview{}
	m.err = nil
	m.status = ""

	return m, nil
}

func (m ImportModel) updateFormat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.formatIdx = max(m.formatIdx-1, 0)
	case tea.KeyDown:
		m.formatIdx = min(m.formatIdx+1, len(m.formats)-1)
	case tea.KeyEnter:
		m.format = m.formats[m.formatIdx]
		m.filePicker.AllowedTypes = []string{"." + string(m.format)}
		m.step = importStepFile

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		i := m.table.Cursor()
		m.keep[i] = !m.keep[i]
	case "a", "n":
		for i := range m.conflicts {
			m.keep[i] = msg.String() == "a"
		}
	case "enter":
		m.step = importStepBusy
		return m, m.confirmCmd()
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	m.table.SetRows(conflictRows(m.conflicts, m.keep))

	return m, nil
}

func (m ImportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1, 2)

	switch m.step {
	case importStepFormat:
		var b strings.Builder
		b.WriteString("Select File Format:\n\n")

		for i, f := range m.formats {
			line := "  Money Manager " + strings.ToUpper(string(f)) + " export"
			if i == m.formatIdx {
				line = activeStyle("> Money Manager " + strings.ToUpper(string(f)) + " export")
			}

			b.WriteString(line + "\n")
		}

		return pad.Render(b.String())
	case importStepFile:
		return pad.Render(fmt.Sprintf("Select file to import (%s):\n\n%s", m.format, m.filePicker.View()))
	case importStepBusy:
		return pad.Render(m.status)
	case importStepPreview:
		return pad.Render(m.preview.String() + "\n\n" + faintStyle.Render(m.ShortHelp()))
	case importStepConflicts:
		head := fmt.Sprintf("%d rows match stored transactions. Ticked rows are imported anyway.\n\n", len(m.conflicts))
		return pad.Render(head + m.table.View() + "\n\n" + faintStyle.Render(m.ShortHelp()))
	case importStepDone:
		style := successStyle
		if m.err != nil {
			style = errorStyle
		}

		return pad.Render(style.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

// importPreview summarises parsed rows before anything is stored.
type importPreview struct {
	rows          int
	expenses      decimal.Decimal
	income        decimal.Decimal
	first, last   time.Time
	suggested     int
	uncategorized int
}

func previewImport(params []transaction.CreateParams, suggested int) importPreview {
	p := importPreview{rows: len(params), suggested: suggested}

	for _, row := range params {
		if row.Type == transaction.TypeIncome {
			p.income = p.income.Add(row.Amount)
		} else {
			p.expenses = p.expenses.Add(row.Amount)
		}

		if row.Category == "" {
			p.uncategorized++
		}

		if p.first.IsZero() || row.Date.Before(p.first) {
			p.first = row.Date
		}

		if row.Date.After(p.last) {
			p.last = row.Date
		}
	}

	return p
}

func (p importPreview) String() string {
	if p.rows == 0 {
		return "The file has no transactions."
	}

	return fmt.Sprintf(
		"%d transactions from %s to %s\nExpenses: %s\nIncome:   %s\nCategories suggested: %d\nWithout category: %d",
		p.rows, FormatDate(p.first), FormatDate(p.last),
		FormatAmount(p.expenses), FormatAmount(p.income),
		p.suggested, p.uncategorized,
	)
}

var conflictColumns = []table.Column{
	{Title: "Keep", Width: 4},
	{Title: "Date", Width: 10},
	{Title: "Type", Width: 7},
	{Title: "Amount", Width: 11},
	{Title: "Category", Width: 14},
	{Title: "Account", Width: 12},
	{Title: "Stored as", Width: 30},
}

func conflictRows(conflicts []transaction.Conflict, keep map[int]bool) []table.Row {
	rows := make([]table.Row, len(conflicts))

	for i, c := range conflicts {
		mark := ""
		if keep[i] {
			mark = "x"
		}

		in, old := c.Incoming, c.Existing
		rows[i] = table.Row{
			mark,
			FormatDate(in.Date),
			string(in.Type),
			FormatAmount(in.Amount),
			in.Category,
			in.Account,
			fmt.Sprintf("%s %s [%s]", old.Account, old.Description, old.ID.String()[:8]),
		}
	}

	return rows
}

type parsedMsg struct {
	params    []transaction.CreateParams
	suggested int
	err       error
}

type storedMsg struct {
	result *transaction.ImportResult
	err    error
}

type confirmedMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	format := m.format

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		params, err := m.importService.Import(format, f)
		if err != nil {
			return parsedMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		before := countUncategorized(params)
		params = m.matchingService.Categorize(ctx, params)

		return parsedMsg{params: params, suggested: before - countUncategorized(params)}
	}
}

func countUncategorized(params []transaction.CreateParams) int {
	n := 0

	for _, p := range params {
		if p.Category == "" {
			n++
		}
	}

	return n
}

func (m ImportModel) storeCmd(params []transaction.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.txService.ImportBatch(ctx, params)

		return storedMsg{result: result, err: err}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	rows := append([]transaction.CreateParams(nil), m.pending...)

	for i, c := range m.conflicts {
		if m.keep[i] {
			rows = append(rows, c.Incoming)
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		txs, err := m.txService.CreateBatch(ctx, rows)

		return confirmedMsg{count: len(txs), err: err}
	}
}
