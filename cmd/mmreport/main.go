// Command mmreport renders charts and exports from a Money Manager export file
// and a YAML budget file, without a database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/clock"
	"github.com/MrJamesThe3rd/moneymanager/internal/importer"
	"github.com/MrJamesThe3rd/moneymanager/internal/render"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
	"github.com/MrJamesThe3rd/moneymanager/internal/report/memory"
)

type options struct {
	input   string
	setup   string
	chart   string
	format  string
	dataset string
	from    string
	to      string
	period  string
	out     string
	tz      string
}

func main() {
	var opts options

	flag.StringVar(&opts.input, "in", "", "Money Manager export (.csv or .xlsx)")
	flag.StringVar(&opts.setup, "setup", "", "YAML file with budgets and accounts")
	flag.StringVar(&opts.chart, "chart", "", "chart to draw: "+joinKinds())
	flag.StringVar(&opts.format, "export", "", "export format: csv, xlsx or pdf")
	flag.StringVar(&opts.dataset, "dataset", string(report.DatasetTransactions), "dataset for csv exports")
	flag.StringVar(&opts.period, "period", "", "preset period: week, lastweek, month, lastmonth or all")
	flag.StringVar(&opts.from, "from", "", "first day, YYYY-MM-DD")
	flag.StringVar(&opts.to, "to", "", "last day, YYYY-MM-DD")
	flag.StringVar(&opts.out, "out", ".", "output directory")
	flag.StringVar(&opts.tz, "tz", "UTC", "IANA time zone for day boundaries")
	flag.Parse()

	if err := run(context.Background(), opts); err != nil {
		slog.Error("mmreport failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.input == "" {
		return errors.New("-in is required")
	}

	if (opts.chart == "") == (opts.format == "") {
		return errors.New("exactly one of -chart or -export is required")
	}

	loc, err := time.LoadLocation(opts.tz)
	if err != nil {
		return fmt.Errorf("loading time zone %q: %w", opts.tz, err)
	}

	svc, err := load(opts, loc)
	if err != nil {
		return err
	}

	w, err := window(opts, svc.Now(), loc)
	if err != nil {
		return err
	}

	var art *render.Artifact

	if opts.chart != "" {
		kind := report.ChartKind(opts.chart)
		if !kind.Valid() {
			return fmt.Errorf("unknown chart %q, want one of %s", opts.chart, joinKinds())
		}

		art, err = svc.Chart(ctx, kind, w)
	} else {
		format, ok := report.ParseFormat(opts.format)
		if !ok {
			return fmt.Errorf("unknown export format %q", opts.format)
		}

		dataset, ok := report.ParseDataset(opts.dataset)
		if !ok {
			return fmt.Errorf("unknown dataset %q", opts.dataset)
		}

		art, err = svc.Export(ctx, format, dataset, w)
	}

	if errors.Is(err, analytics.ErrNoData) {
		slog.Warn("nothing to render", "period", analytics.DateRangeText(w))
		return nil
	}

	if err != nil {
		return err
	}

	path := filepath.Join(opts.out, art.Filename)
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	slog.Info("report written", "path", path, "bytes", len(art.Data))

	return nil
}

func load(opts options, loc *time.Location) (*report.Service, error) {
	format := importer.FormatCSV
	if strings.EqualFold(filepath.Ext(opts.input), ".xlsx") {
		format = importer.FormatXLSX
	}

	f, err := os.Open(opts.input)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	params, err := importer.NewService(loc).Import(format, f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", opts.input, err)
	}

	txs, err := memory.FromParams(params)
	if err != nil {
		return nil, err
	}

	var (
		budgets  memory.Budgets
		accounts memory.Accounts
	)

	if opts.setup != "" {
		sf, err := os.Open(opts.setup)
		if err != nil {
			return nil, fmt.Errorf("opening setup: %w", err)
		}
		defer sf.Close()

		if budgets, accounts, err = memory.ReadSetup(sf); err != nil {
			return nil, err
		}
	}

	slog.Info("loaded export", "transactions", len(txs), "budgets", len(budgets))

	return report.NewService(txs, budgets, accounts, clock.NewReal(), loc, report.Options{}), nil
}

// window resolves the period flags. A preset wins over explicit dates; with
// neither, the whole history is used.
func window(opts options, now time.Time, loc *time.Location) (analytics.Window, error) {
	if opts.period != "" {
		tf, ok := analytics.ParseTimeframe(opts.period)
		if !ok {
			return analytics.Window{}, fmt.Errorf("unknown period %q", opts.period)
		}

		return tf.Window(now), nil
	}

	from, err := parseDay(opts.from, "from", loc)
	if err != nil {
		return analytics.Window{}, err
	}

	to, err := parseDay(opts.to, "to", loc)
	if err != nil {
		return analytics.Window{}, err
	}

	return analytics.NewWindow(from, to)
}

func parseDay(s, field string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, &analytics.ValidationError{Field: field, Reason: "expected YYYY-MM-DD"}
	}

	return &t, nil
}

func joinKinds() string {
	kinds := make([]string, len(report.ChartKinds))
	for i, k := range report.ChartKinds {
		kinds[i] = string(k)
	}

	return strings.Join(kinds, ", ")
}
