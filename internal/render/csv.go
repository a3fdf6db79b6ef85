package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
)

// CSV writes one section as a comma separated file with a header row.
func CSV(s Section) (*Artifact, error) {
	if len(s.Rows) == 0 {
		return nil, analytics.ErrNoData
	}

	data, err := draw(func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(s.Columns); err != nil {
			return err
		}

		record := make([]string, len(s.Columns))
		for _, row := range s.Rows {
			for i := range record {
				record[i] = ""
				if i < len(row) {
					record[i] = cellText(row[i])
				}
			}

			if err := cw.Write(record); err != nil {
				return err
			}
		}

		cw.Flush()

		return cw.Error()
	})
	if err != nil {
		return nil, fmt.Errorf("rendering csv: %w", err)
	}

	return newArtifact(data, MIMECSV, s.Name), nil
}
