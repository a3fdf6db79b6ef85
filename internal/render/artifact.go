// Package render turns aggregated series and tabular sections into PNG charts,
// CSV files, XLSX workbooks and PDF documents.
package render

import "strings"

const (
	MIMEPNG  = "image/png"
	MIMECSV  = "text/csv"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEPDF  = "application/pdf"
)

// Artifact is a finished rendering ready for delivery.
type Artifact struct {
	Data     []byte
	MIMEType string
	Filename string
}

// Extension returns the file extension matching the MIME type, without a dot.
func (a *Artifact) Extension() string {
	switch a.MIMEType {
	case MIMEPNG:
		return "png"
	case MIMECSV:
		return "csv"
	case MIMEXLSX:
		return "xlsx"
	case MIMEPDF:
		return "pdf"
	}

	return "bin"
}

func newArtifact(data []byte, mime, stem string) *Artifact {
	a := &Artifact{Data: data, MIMEType: mime}
	a.Filename = slug(stem) + "." + a.Extension()

	return a
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder

	lastDash := false

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)

			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('_')

			lastDash = true
		}
	}

	out := strings.TrimSuffix(b.String(), "_")
	if out == "" {
		return "report"
	}

	return out
}
