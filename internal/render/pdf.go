package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
)

const (
	pdfFont       = "Helvetica"
	pdfMargin     = 15.0
	pdfLineHeight = 6.0
	footerLayout  = "2006-01-02 15:04:05"
)

// PDF lays doc out as a title page, an optional table of contents that links
// to each section, and one page run per section. Every page carries a footer
// with the export time and page number.
func PDF(doc Document, stem string) (*Artifact, error) {
	if doc.empty() {
		return nil, analytics.ErrNoData
	}

	data, err := draw(func(w io.Writer) error {
		return writePDF(doc, w)
	})
	if err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	return newArtifact(data, MIMEPDF, stem), nil
}

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func writePDF(doc Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin+10)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Owner, true)
	pdf.SetCreationDate(doc.GeneratedAt)

	pw := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	product := doc.Product
	if product == "" {
		product = doc.Title
	}

	footer := fmt.Sprintf("%s - Exported on %s", product, doc.GeneratedAt.Format(footerLayout))
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, pw.tr(footer), "", 0, "L", false, 0, "")
		pdf.SetX(pdfMargin)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pw.titlePage(doc)

	links := make([]int, len(doc.Sections))
	for i := range doc.Sections {
		links[i] = pdf.AddLink()
	}

	if doc.TableOfContents {
		pw.contents(doc.Sections, links)
	}

	for i, s := range doc.Sections {
		pdf.AddPage()
		pdf.SetLink(links[i], -1, -1)
		pw.section(s)
	}

	if err := pdf.Error(); err != nil {
		return err
	}

	return pdf.Output(w)
}

func (pw *pdfWriter) titlePage(doc Document) {
	pdf := pw.pdf
	pdf.AddPage()

	pdf.SetY(70)
	pdf.SetFont(pdfFont, "B", 32)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 16, pw.tr(doc.Title), "", 1, "C", false, 0, "")

	if doc.Description != "" {
		pdf.Ln(6)
		pdf.SetFont(pdfFont, "", 12)
		pdf.MultiCell(0, pdfLineHeight, pw.tr(doc.Description), "", "C", false)
	}

	if doc.Owner != "" {
		pdf.Ln(10)
		pdf.SetFont(pdfFont, "B", 14)
		pdf.CellFormat(0, 10, pw.tr("PDF Report for - "+doc.Owner), "", 1, "C", false, 0, "")
	}
}

func (pw *pdfWriter) contents(sections []Section, links []int) {
	pdf := pw.pdf
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 18)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 12, "Table of Contents", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "", 12)
	pdf.SetTextColor(0, 70, 160)

	for i, s := range sections {
		pdf.CellFormat(0, 9, pw.tr(fmt.Sprintf("%d. %s", i+1, s.Heading)), "", 1, "L", false, links[i], "")
	}
}

func (pw *pdfWriter) section(s Section) {
	pdf := pw.pdf

	pdf.SetFont(pdfFont, "B", 18)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 12, pw.tr(s.Heading), "", 1, "L", false, 0, "")

	if s.Note != "" {
		pdf.SetFont(pdfFont, "", 11)
		pdf.CellFormat(0, 8, pw.tr(s.Note), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)

	if len(s.Rows) == 0 {
		pdf.SetFont(pdfFont, "I", 11)
		pdf.CellFormat(0, 8, "No records.", "", 1, "L", false, 0, "")

		return
	}

	pw.table(s)
}

func (pw *pdfWriter) table(s Section) {
	pdf := pw.pdf

	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin) / float64(max(len(s.Columns), 1))
	bottom := pageH - pdfMargin - 10

	header := func() {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetDrawColor(0, 0, 0)

		for _, c := range s.Columns {
			pdf.CellFormat(colW, 8, pw.tr(c), "1", 0, "C", true, 0, "")
		}

		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(245, 245, 220)
	}

	header()

	for _, row := range s.Rows {
		cells := make([][]string, len(s.Columns))
		lines := 1

		for i := range s.Columns {
			text := ""
			if i < len(row) {
				text = pw.tr(cellText(row[i]))
			}

			cells[i] = pdf.SplitText(text, colW-2)
			if len(cells[i]) == 0 {
				cells[i] = []string{""}
			}

			lines = max(lines, len(cells[i]))
		}

		h := float64(lines)*pdfLineHeight + 1

		if pdf.GetY()+h > bottom {
			pdf.AddPage()
			header()
		}

		x, y := pdf.GetX(), pdf.GetY()
		for i, cell := range cells {
			cx := x + float64(i)*colW
			pdf.Rect(cx, y, colW, h, "FD")

			for j, line := range cell {
				pdf.SetXY(cx, y+0.5+float64(j)*pdfLineHeight)
				pdf.CellFormat(colW, pdfLineHeight, line, "", 0, "C", false, 0, "")
			}
		}

		pdf.SetXY(x, y+h)
	}
}
