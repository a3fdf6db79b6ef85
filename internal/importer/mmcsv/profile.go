package mmcsv

// Column names accepted in a header row. Each field lists its aliases in
// preference order; the first alias is the one the exporter writes.
var (
	dateCols        = []string{"date"}
	amountCols      = []string{"amount"}
	categoryCols    = []string{"category"}
	currencyCols    = []string{"currency"}
	descriptionCols = []string{"description", "note"}
	accountCols     = []string{"account_name", "account"}
	typeCols        = []string{"type"}
)

// colIndex maps header names to their position in a row.
type colIndex map[string]int

// lookup returns the position of the first alias present, or -1.
func (c colIndex) lookup(aliases []string) int {
	for _, a := range aliases {
		if i, ok := c[a]; ok {
			return i
		}
	}

	return -1
}

// isHeader reports whether the columns contain every required field.
func (c colIndex) isHeader() bool {
	return c.lookup(dateCols) >= 0 && c.lookup(amountCols) >= 0 && c.lookup(categoryCols) >= 0
}
