// Package web holds the request and response helpers shared by the handlers.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/render"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Error maps reporting errors onto status codes: validation failures are 422,
// an empty window is 404 and everything else is a 500 whose cause is logged
// but not exposed.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var verr *analytics.ValidationError

	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: verr.Error()})
	case errors.Is(err, analytics.ErrNoData):
		JSON(w, http.StatusNotFound, errorResponse{Detail: "No expenses found for the specified period"})
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
	}
}

// Window reads from_date and to_date (YYYY-MM-DD) from the query string.
// Malformed dates and inverted ranges are validation errors.
func Window(r *http.Request) (analytics.Window, error) {
	from, err := dateParam(r, "from_date")
	if err != nil {
		return analytics.Window{}, err
	}

	to, err := dateParam(r, "to_date")
	if err != nil {
		return analytics.Window{}, err
	}

	return analytics.NewWindow(from, to)
}

func dateParam(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, &analytics.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}

	return &t, nil
}

// Artifact streams a rendered file. Charts are shown inline, tabular exports
// are offered as downloads.
func Artifact(w http.ResponseWriter, art *render.Artifact) {
	disposition := "attachment"
	if art.MIMEType == render.MIMEPNG {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", art.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, art.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(art.Data); err != nil {
		slog.Error("failed to write artifact", "file", art.Filename, "error", err)
	}
}
