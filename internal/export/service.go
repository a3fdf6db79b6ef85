// Package export writes a complete report bundle for a window to disk: every
// chart that has data, the combined workbook and document, and a plain-text
// digest suitable for an email body.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/render"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
)

// Item is one file of a bundle.
type Item struct {
	Name     string
	MIMEType string
	FilePath string
}

// Reporter is the subset of the report service a bundle needs.
type Reporter interface {
	Chart(ctx context.Context, kind report.ChartKind, w analytics.Window) (*render.Artifact, error)
	Export(ctx context.Context, format report.Format, dataset report.Dataset, w analytics.Window) (*render.Artifact, error)
	Summary(ctx context.Context, w analytics.Window) (*report.Summary, error)
}

type Service struct {
	reports Reporter
}

func NewService(reports Reporter) *Service {
	return &Service{reports: reports}
}

// Export renders the bundle for w into outputDir. Charts without data are
// skipped; the call fails with analytics.ErrNoData only when nothing at all
// could be rendered.
func (s *Service) Export(ctx context.Context, w analytics.Window, outputDir string) ([]Item, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var artifacts []*render.Artifact

	for _, kind := range report.ChartKinds {
		art, err := s.reports.Chart(ctx, kind, w)
		if errors.Is(err, analytics.ErrNoData) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", kind, err)
		}

		artifacts = append(artifacts, art)
	}

	for _, format := range []report.Format{report.FormatXLSX, report.FormatPDF} {
		art, err := s.reports.Export(ctx, format, "", w)
		if errors.Is(err, analytics.ErrNoData) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", format, err)
		}

		artifacts = append(artifacts, art)
	}

	if len(artifacts) == 0 {
		return nil, analytics.ErrNoData
	}

	items := make([]Item, 0, len(artifacts))

	for _, art := range artifacts {
		path := filepath.Join(outputDir, art.Filename)
		if err := os.WriteFile(path, art.Data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", art.Filename, err)
		}

		items = append(items, Item{Name: art.Filename, MIMEType: art.MIMEType, FilePath: path})
	}

	return items, nil
}

// GenerateSummary creates a plain-text digest of the window: spend per
// category against its prorated budget, then the list of bundled files.
func (s *Service) GenerateSummary(sum *report.Summary, items []Item) string {
	var sb strings.Builder

	if sum != nil {
		fmt.Fprintf(&sb, "%s (%d days)\n", sum.DateRange, sum.Days)
		fmt.Fprintf(&sb, "Total Spend: %s\n\n", render.Money(sum.Total))

		for _, row := range sum.Budget {
			status := "within budget"
			if row.Remaining().IsNegative() {
				status = "over by " + render.Money(row.Remaining().Neg())
			}

			fmt.Fprintf(&sb, "* %s | %s of %s | %s\n",
				row.Category, render.Money(row.Actual), render.Money(row.Budgeted), status)
		}

		sb.WriteString("\n")
	}

	for _, item := range items {
		fmt.Fprintf(&sb, "- %s\n", item.Name)
	}

	return sb.String()
}

// Digest is Export followed by GenerateSummary for the same window.
func (s *Service) Digest(ctx context.Context, w analytics.Window, outputDir string) ([]Item, string, error) {
	items, err := s.Export(ctx, w, outputDir)
	if err != nil {
		return nil, "", err
	}

	sum, err := s.reports.Summary(ctx, w)
	if err != nil && !errors.Is(err, analytics.ErrNoData) {
		return nil, "", fmt.Errorf("summarising: %w", err)
	}

	return items, s.GenerateSummary(sum, items), nil
}
