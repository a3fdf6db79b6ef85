package importer

import (
	"io"

	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

// Format identifies the layout of an uploaded file.
type Format string

const (
	// FormatCSV is the Money Manager CSV export, as written by the CSV exporter
	// and by earlier versions of the app.
	FormatCSV Format = "csv"
	// FormatXLSX is the Money Manager workbook export.
	FormatXLSX Format = "xlsx"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
