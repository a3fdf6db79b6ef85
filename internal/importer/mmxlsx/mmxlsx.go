// Package mmxlsx reads Money Manager workbook exports back into transactions.
package mmxlsx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/moneymanager/internal/importer/mmcsv"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

// preferredSheets are tried in order before falling back to the first sheet.
var preferredSheets = []string{"Transactions", "Expenses"}

type Parser struct {
	rows *mmcsv.Parser
}

func New(loc *time.Location) *Parser {
	return &Parser{rows: mmcsv.New(loc)}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList())
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	slog.Debug("parsing xlsx import", "sheet", sheet)

	// Raw values keep numbers free of the cell number format.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return p.rows.ParseRecords(rows)
}

func pickSheet(sheets []string) string {
	for _, want := range preferredSheets {
		for _, s := range sheets {
			if strings.EqualFold(s, want) {
				return s
			}
		}
	}

	if len(sheets) == 0 {
		return ""
	}

	return sheets[0]
}
