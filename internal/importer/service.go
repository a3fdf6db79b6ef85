package importer

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/MrJamesThe3rd/moneymanager/internal/importer/mmcsv"
	"github.com/MrJamesThe3rd/moneymanager/internal/importer/mmxlsx"
	"github.com/MrJamesThe3rd/moneymanager/internal/transaction"
)

type Service struct {
	importers map[Format]Importer
}

// NewService registers every supported format. Dates without a zone are read
// in loc.
func NewService(loc *time.Location) *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatCSV:  mmcsv.New(loc),
			FormatXLSX: mmxlsx.New(loc),
		},
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]transaction.CreateParams, error) {
	imp, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return imp.Parse(r)
}

// Formats lists the registered formats in a stable order.
func (s *Service) Formats() []Format {
	formats := make([]Format, 0, len(s.importers))
	for f := range s.importers {
		formats = append(formats, f)
	}

	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })

	return formats
}
