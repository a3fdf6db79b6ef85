package render

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// XLSX writes every section of doc to its own sheet, in order. Sections without
// rows still get a header-only sheet; a document with no rows at all is
// reported as ErrNoData.
func XLSX(doc Document, stem string) (*Artifact, error) {
	if doc.empty() {
		return nil, analytics.ErrNoData
	}

	data, err := draw(func(w io.Writer) error {
		return writeWorkbook(doc, w)
	})
	if err != nil {
		return nil, fmt.Errorf("rendering xlsx: %w", err)
	}

	return newArtifact(data, MIMEXLSX, stem), nil
}

func writeWorkbook(doc Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	first := f.GetSheetName(0)

	for i, s := range doc.Sections {
		name := sheetName(s.Name)

		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return fmt.Errorf("naming sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("adding sheet %q: %w", name, err)
		}

		if err := writeSheet(f, name, s, header); err != nil {
			return fmt.Errorf("writing sheet %q: %w", name, err)
		}
	}

	f.SetActiveSheet(0)

	_, err = f.WriteTo(w)

	return err
}

func writeSheet(f *excelize.File, sheet string, s Section, headerStyle int) error {
	columns := make([]any, len(s.Columns))
	for i, c := range s.Columns {
		columns[i] = c
	}

	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return err
	}

	if len(s.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(s.Columns), 1)
		if err != nil {
			return err
		}

		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}

		values := make([]any, len(row))
		for i, v := range row {
			values[i] = sheetValue(v)
		}

		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return nil
}

// sheetValue keeps amounts numeric so spreadsheet formulas work on them.
func sheetValue(v any) any {
	switch c := v.(type) {
	case decimal.Decimal:
		return float(c)
	case time.Time:
		return cellText(c)
	case string, nil:
		return c
	}

	return cellText(v)
}

func sheetName(name string) string {
	if name == "" {
		name = "Sheet"
	}

	r := []rune(name)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}

	return string(r)
}
