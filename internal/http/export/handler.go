package export

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
	"github.com/MrJamesThe3rd/moneymanager/internal/export"
	"github.com/MrJamesThe3rd/moneymanager/internal/http/web"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
)

type Handler struct {
	reports *report.Service
	bundles *export.Service
	clock   clock.Clock
}

func NewHandler(reports *report.Service, bundles *export.Service, clk clock.Clock) *Handler {
	return &Handler{reports: reports, bundles: bundles, clock: clk}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.csv)
	r.Get("/xlsx", h.combined(report.FormatXLSX))
	r.Get("/pdf", h.combined(report.FormatPDF))
	r.Get("/bundle", h.bundle)
}

func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	dataset, ok := report.ParseDataset(r.URL.Query().Get("export_type"))
	if !ok {
		web.Error(w, r, &analytics.ValidationError{
			Field:  "export_type",
			Reason: "must be one of transactions, accounts, categories, budget",
		})

		return
	}

	h.render(w, r, report.FormatCSV, dataset)
}

func (h *Handler) combined(format report.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, format, "")
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, format report.Format, dataset report.Dataset) {
	win, err := web.Window(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}

	art, err := h.reports.Export(r.Context(), format, dataset, win)
	if err != nil {
		web.Error(w, r, err)
		return
	}

	web.Artifact(w, art)
}

// bundle zips every chart, the workbook, the document and a text digest.
func (h *Handler) bundle(w http.ResponseWriter, r *http.Request) {
	win, err := web.Window(r)
	if err != nil {
		web.Error(w, r, err)
		return
	}

	tmpDir, err := os.MkdirTemp("", "moneymanager-export-*")
	if err != nil {
		web.Error(w, r, fmt.Errorf("creating temp dir: %w", err))
		return
	}
	defer os.RemoveAll(tmpDir)

	items, digest, err := h.bundles.Digest(r.Context(), win, tmpDir)
	if err != nil {
		web.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"report_%s.zip\"", h.clock.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	if err := writeEntry(zipWriter, "summary.txt", func(dst io.Writer) error {
		_, err := io.WriteString(dst, digest)
		return err
	}); err != nil {
		slog.Error("failed to create zip", "error", err)
		return
	}

	for _, item := range items {
		err := writeEntry(zipWriter, item.Name, func(dst io.Writer) error {
			f, err := os.Open(item.FilePath)
			if err != nil {
				return err
			}
			defer f.Close()

			_, err = io.Copy(dst, f)

			return err
		})
		if err != nil {
			slog.Error("failed to create zip", "error", err)
			return
		}
	}
}

func writeEntry(zw *zip.Writer, name string, fill func(io.Writer) error) error {
	zf, err := zw.Create(name)
	if err != nil {
		return err
	}

	return fill(zf)
}
