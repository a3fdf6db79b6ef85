package render

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Section is one logical table of an export: a sheet in a workbook, a page
// section in a document, or the whole of a CSV file.
//
// Cells may be strings, decimals, times or any fmt.Stringer.
type Section struct {
	Name    string // sheet name and file stem
	Heading string // shown above the table in documents
	Note    string // optional line under the heading, e.g. the date range
	Columns []string
	Rows    [][]any
}

// Document is an ordered collection of sections exported together.
type Document struct {
	Title       string
	Product     string // used in the PDF footer, defaults to Title
	Description string
	Owner       string
	Sections    []Section
	// TableOfContents adds a linked index page to PDF output.
	TableOfContents bool
	// GeneratedAt is stamped in the PDF footer; callers pass it already in
	// the reporting zone.
	GeneratedAt time.Time
}

func (d Document) empty() bool {
	for _, s := range d.Sections {
		if len(s.Rows) > 0 {
			return false
		}
	}

	return true
}

// cellText renders a cell the way it appears in CSV and PDF output.
func cellText(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case decimal.Decimal:
		return c.StringFixed(2)
	case time.Time:
		if c.Hour() == 0 && c.Minute() == 0 && c.Second() == 0 && c.Nanosecond() == 0 {
			return c.Format(time.DateOnly)
		}

		return c.Format(time.RFC3339)
	case fmt.Stringer:
		return c.String()
	}

	return fmt.Sprint(v)
}
