// Package mmcsv reads Money Manager CSV exports back into transactions.
package mmcsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/moneymanager/internal/encoding"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Parser reads the CSV layout written by the exporter: a header row naming at
// least date, amount and category, followed by one row per transaction.
type Parser struct {
	loc *time.Location
}

// New returns a parser that reads zone-less dates in loc.
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}

	return &Parser{loc: loc}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	slog.Debug("parsing csv import", "charset", charset)

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return p.ParseRecords(rows)
}

// ParseRecords converts already split rows, header included, into params.
// Blank rows are skipped; any malformed row fails the whole import.
func (p *Parser) ParseRecords(rows [][]string) ([]transaction.CreateParams, error) {
	cols, headerIdx := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header found: expected at least date, amount and category columns")
	}

	idx := struct{ date, amount, category, currency, description, account, typ int }{
		date:        cols.lookup(dateCols),
		amount:      cols.lookup(amountCols),
		category:    cols.lookup(categoryCols),
		currency:    cols.lookup(currencyCols),
		description: cols.lookup(descriptionCols),
		account:     cols.lookup(accountCols),
		typ:         cols.lookup(typeCols),
	}

	var params []transaction.CreateParams

	for i, row := range rows[headerIdx+1:] {
		rowNum := headerIdx + i + 2

		if blank(row) {
			continue
		}

		date, err := p.parseDate(cellValue(row, idx.date))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		amount, err := parseAmount(cellValue(row, idx.amount))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		typ, err := parseType(cellValue(row, idx.typ))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		params = append(params, transaction.CreateParams{
			Date:        date,
			Amount:      amount,
			Type:        typ,
			Currency:    strings.ToUpper(cellValue(row, idx.currency)),
			Category:    cellValue(row, idx.category),
			Account:     cellValue(row, idx.account),
			Description: cellValue(row, idx.description),
		})
	}

	return params, nil
}

// sniffDelimiter picks ';' when the first line has more semicolons than
// commas, as spreadsheets in comma-decimal locales write.
func sniffDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(1024)
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}

	return ','
}

func findHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, dup := cols[name]; name != "" && !dup {
				cols[name] = i
			}
		}

		if cols.isHeader() {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func (p *Parser) parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, transaction.ErrMissingDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseAmount accepts plain decimals with an optional currency symbol and
// thousands separators, e.g. "1,234.50" or "$12".
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("missing amount")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	if d.IsNegative() {
		return decimal.Zero, transaction.ErrNegativeAmount
	}

	return d, nil
}

func parseType(s string) (transaction.Type, error) {
	if s == "" {
		return transaction.TypeExpense, nil
	}

	t := transaction.Type(strings.ToLower(s))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", transaction.ErrInvalidType, s)
	}

	return t, nil
}

// cellValue returns the trimmed cell at idx, or "" when the column is absent.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
