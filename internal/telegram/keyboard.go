package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
	"github.com/MrJamesThe3rd/moneymanager/internal/report"
)

// Callback payloads are colon separated:
//
//	chart:<kind>[:<timeframe>]
//	export:<format>[:<dataset>]
const (
	chartPrefix  = "chart:"
	exportPrefix = "export:"
)

func chartKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(report.ChartKinds))
	for _, k := range report.ChartKinds {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(k.Label(), chartPrefix+string(k)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// timeframeKeyboard lays the presets out two per row, each appending its key
// to prefix.
func timeframeKeyboard(prefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i := 0; i < len(analytics.Timeframes); i += 2 {
		var row []tgbotapi.InlineKeyboardButton
		for _, tf := range analytics.Timeframes[i:min(i+2, len(analytics.Timeframes))] {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(tf.String(), prefix+":"+tf.Key()))
		}

		rows = append(rows, row)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func formatKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("PDF", exportPrefix+string(report.FormatPDF)),
			tgbotapi.NewInlineKeyboardButtonData("Excel", exportPrefix+string(report.FormatXLSX)),
			tgbotapi.NewInlineKeyboardButtonData("CSV", exportPrefix+string(report.FormatCSV)),
		),
	)
}

func datasetKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, d := range report.Datasets {
		label := strings.ToUpper(string(d[:1])) + string(d[1:])
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, exportPrefix+string(report.FormatCSV)+":"+string(d)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(row)
}

type action struct {
	chart        report.ChartKind
	timeframe    analytics.Timeframe
	hasTimeframe bool

	format  report.Format
	dataset report.Dataset
}

func parseAction(data string) (action, error) {
	var a action

	switch {
	case strings.HasPrefix(data, chartPrefix):
		kind, tf, hasTF := strings.Cut(strings.TrimPrefix(data, chartPrefix), ":")

		a.chart = report.ChartKind(kind)
		if !a.chart.Valid() {
			return action{}, fmt.Errorf("unknown chart %q", kind)
		}

		if hasTF {
			t, ok := analytics.ParseTimeframe(tf)
			if !ok {
				return action{}, fmt.Errorf("unknown timeframe %q", tf)
			}

			a.timeframe, a.hasTimeframe = t, true
		}
	case strings.HasPrefix(data, exportPrefix):
		format, dataset, hasDataset := strings.Cut(strings.TrimPrefix(data, exportPrefix), ":")

		f, ok := report.ParseFormat(format)
		if !ok {
			return action{}, fmt.Errorf("unknown export format %q", format)
		}

		a.format = f

		if hasDataset {
			d, ok := report.ParseDataset(dataset)
			if !ok {
				return action{}, fmt.Errorf("unknown dataset %q", dataset)
			}

			a.dataset = d
		}
	default:
		return action{}, errors.New("unrecognised callback")
	}

	return a, nil
}
