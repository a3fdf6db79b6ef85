package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
)

const (
	chartHeight   = 720
	minChartWidth = 1000
	maxChartWidth = 4000
	pieSize       = 900
)

var (
	skyBlue     = drawing.ColorFromHex("87ceeb")
	budgetColor = drawing.ColorFromHex("3498db")
	actualColor = drawing.ColorFromHex("e67e22")

	piePalette = []drawing.Color{
		drawing.ColorFromHex("2ecc71"),
		drawing.ColorFromHex("3498db"),
		drawing.ColorFromHex("9b59b6"),
		drawing.ColorFromHex("e74c3c"),
		drawing.ColorFromHex("f1c40f"),
		drawing.ColorFromHex("1abc9c"),
		drawing.ColorFromHex("e67e22"),
		drawing.ColorFromHex("34495e"),
		drawing.ColorFromHex("7f8c8d"),
		drawing.ColorFromHex("16a085"),
	}
)

// chartTitle joins the chart name, the window text and optionally the total.
// go-chart draws titles on a single line.
func chartTitle(name string, w analytics.Window, total *decimal.Decimal) string {
	parts := []string{name, analytics.DateRangeText(w)}
	if total != nil {
		parts = append(parts, "Total Spend: "+Money(*total))
	}

	return strings.Join(parts, "  |  ")
}

func titleStyle() chart.Style {
	return chart.Style{FontSize: 14, FontColor: chart.ColorBlack}
}

func background() chart.Style {
	return chart.Style{
		Padding:   chart.Box{Top: 60, Left: 30, Right: 30, Bottom: 30},
		FillColor: chart.ColorWhite,
	}
}

// valueAxis pins the value axis to [0, a rounded maximum] so that single
// points and all-zero series still have a drawable range.
func valueAxis(top float64) chart.YAxis {
	return chart.YAxis{
		Style: chart.Style{FontSize: 10, FontColor: chart.ColorBlack},
		Range: &chart.ContinuousRange{Min: 0, Max: niceCeiling(top)},
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return printer.Sprintf("%d", int64(math.Round(f)))
			}

			return ""
		},
	}
}

func niceCeiling(v float64) float64 {
	if v <= 0 {
		return 1
	}

	v *= 1.1
	mag := math.Pow(10, math.Floor(math.Log10(v)))

	for _, step := range []float64{1, 2, 2.5, 5, 10} {
		if ceil := step * mag; ceil >= v {
			return ceil
		}
	}

	return 10 * mag
}

type bar struct {
	label string
	value decimal.Decimal
	color drawing.Color
}

// barGeometry spreads n bars across a canvas that grows with n up to a cap.
func barGeometry(n int) (width, barWidth, spacing int) {
	width = min(max(n*70+120, minChartWidth), maxChartWidth)
	per := max((width-120)/max(n, 1), 3)
	barWidth = min(max(per*2/3, 2), 80)
	spacing = max(min(per-barWidth, 80), 1)

	return width, barWidth, spacing
}

// fitBars shrinks spacing, then width, the way go-chart does when n bars do
// not fit the canvas.
func fitBars(n, canvasWidth, barWidth, spacing int) (int, int) {
	if n*(barWidth+spacing) > canvasWidth {
		spacing = 0
		if rest := canvasWidth - n*barWidth; rest > 0 {
			spacing = int(math.Ceil(float64(rest) / float64(n)))
		}
	}

	if n*(barWidth+spacing) > canvasWidth {
		barWidth = 0
		if rest := canvasWidth - n*spacing; rest > 0 {
			barWidth = int(math.Ceil(float64(rest) / float64(n)))
		}
	}

	return barWidth, spacing
}

// valueLabels writes each bar's amount centred just above the bar.
func valueLabels(bars []bar, barWidth, spacing int, ceiling float64) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		bw, sp := fitBars(len(bars), canvas.Width(), barWidth, spacing)
		style := chart.Style{FontSize: 8, FontColor: chart.ColorBlack}.InheritFrom(defaults)

		x := canvas.Left + sp>>1
		for _, b := range bars {
			text := Grouped(b.value)
			box := chart.Draw.MeasureText(r, text, style)
			height := int(float(b.value) / ceiling * float64(canvas.Height()))

			chart.Draw.Text(r, text, x+(bw-box.Width())/2, canvas.Bottom-height-4, style)
			x += bw + sp
		}
	}
}

func renderBars(title string, bars []bar) ([]byte, error) {
	if len(bars) == 0 {
		return nil, analytics.ErrNoData
	}

	values := make([]chart.Value, len(bars))
	top := 0.0

	for i, b := range bars {
		v := float(b.value)
		top = math.Max(top, v)
		values[i] = chart.Value{
			Label: b.label,
			Value: v,
			Style: chart.Style{FillColor: b.color, StrokeColor: b.color},
		}
	}

	width, barWidth, spacing := barGeometry(len(bars))
	ceiling := niceCeiling(top)

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: background(),
		XAxis:      chart.Style{FontSize: 9, FontColor: chart.ColorBlack},
		YAxis:      valueAxis(top),
		Bars:       values,
		Elements:   []chart.Renderable{valueLabels(bars, barWidth, spacing, ceiling)},
	}

	return draw(func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

// DailyBar charts total expense per day, one bar per day that has spend.
func DailyBar(days []analytics.Bucket, win analytics.Window) (*Artifact, error) {
	if len(days) == 0 {
		return nil, analytics.ErrNoData
	}

	total := decimal.Zero
	bars := make([]bar, len(days))

	for i, d := range days {
		total = total.Add(d.Amount)
		bars[i] = bar{label: d.Label, value: d.Amount, color: skyBlue}
	}

	data, err := renderBars(chartTitle("Total Expenses per Day", win, &total), bars)
	if err != nil {
		return nil, fmt.Errorf("rendering daily expense chart: %w", err)
	}

	return newArtifact(data, MIMEPNG, "expenses_by_day"), nil
}

// CategoryBar charts total expense per category.
func CategoryBar(totals []analytics.CategoryTotal, win analytics.Window) (*Artifact, error) {
	if len(totals) == 0 {
		return nil, analytics.ErrNoData
	}

	total := decimal.Zero
	bars := make([]bar, len(totals))

	for i, c := range totals {
		total = total.Add(c.Amount)
		bars[i] = bar{label: c.Category, value: c.Amount, color: skyBlue}
	}

	data, err := renderBars(chartTitle("Expenses by Category", win, &total), bars)
	if err != nil {
		return nil, fmt.Errorf("rendering category chart: %w", err)
	}

	return newArtifact(data, MIMEPNG, "expenses_by_category"), nil
}

// BudgetVsActual draws two adjacent bars per category: the prorated budget
// followed by the actual spend.
func BudgetVsActual(rows []analytics.BudgetRow, win analytics.Window) (*Artifact, error) {
	if len(rows) == 0 {
		return nil, analytics.ErrNoData
	}

	bars := make([]bar, 0, 2*len(rows))
	for _, r := range rows {
		bars = append(bars,
			bar{label: r.Category + " budgeted", value: r.Budgeted, color: budgetColor},
			bar{label: r.Category + " actual", value: r.Actual, color: actualColor},
		)
	}

	title := chartTitle("Budget vs Actual Expenses", win, nil) + "  |  blue: Budgeted, orange: Actual"

	data, err := renderBars(title, bars)
	if err != nil {
		return nil, fmt.Errorf("rendering budget chart: %w", err)
	}

	return newArtifact(data, MIMEPNG, "budget_vs_actual"), nil
}

// MonthlyLine plots total expense per month as a line with a marker per month.
func MonthlyLine(months []analytics.Bucket, win analytics.Window) (*Artifact, error) {
	if len(months) == 0 {
		return nil, analytics.ErrNoData
	}

	total := decimal.Zero
	xs := make([]float64, len(months))
	ys := make([]float64, len(months))
	top := 0.0

	// Padding ticks at both ends keep the x range non-empty for a single month.
	ticks := []chart.Tick{{Value: -0.5}}

	for i, m := range months {
		total = total.Add(m.Amount)
		xs[i] = float64(i)
		ys[i] = float(m.Amount)
		top = math.Max(top, ys[i])
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: m.Label})
	}

	ticks = append(ticks, chart.Tick{Value: float64(len(months)) - 0.5})

	graph := chart.Chart{
		Title:      chartTitle("Monthly Expenses", win, &total),
		TitleStyle: titleStyle(),
		Width:      minChartWidth + 200,
		Height:     chartHeight,
		Background: background(),
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: 10, FontColor: chart.ColorBlack},
			Ticks: ticks,
		},
		YAxis: valueAxis(top),
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Expenses",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: skyBlue,
					StrokeWidth: 3,
					DotColor:    skyBlue,
					DotWidth:    6,
				},
			},
		},
	}

	data, err := draw(func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
	if err != nil {
		return nil, fmt.Errorf("rendering monthly chart: %w", err)
	}

	return newArtifact(data, MIMEPNG, "expenses_by_month"), nil
}

// CategoryPie draws the share of each category in total spend. Categories with
// no spend get no slice.
func CategoryPie(totals []analytics.CategoryTotal, win analytics.Window) (*Artifact, error) {
	total := decimal.Zero

	var slices []analytics.CategoryTotal

	for _, c := range totals {
		if c.Amount.IsPositive() {
			slices = append(slices, c)
			total = total.Add(c.Amount)
		}
	}

	if len(slices) == 0 {
		return nil, analytics.ErrNoData
	}

	values := make([]chart.Value, len(slices))
	for i, c := range slices {
		share := c.Amount.Div(total).Mul(decimal.NewFromInt(100))
		color := piePalette[i%len(piePalette)]
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s (%s, %s%%)", c.Category, Money(c.Amount), share.StringFixed(1)),
			Value: float(c.Amount),
			Style: chart.Style{FillColor: color, StrokeColor: chart.ColorWhite, FontSize: 10},
		}
	}

	graph := chart.PieChart{
		Title:      chartTitle("Expense Distribution by Category", win, &total),
		TitleStyle: titleStyle(),
		Width:      pieSize,
		Height:     pieSize,
		Background: background(),
		Values:     values,
	}

	data, err := draw(func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
	if err != nil {
		return nil, fmt.Errorf("rendering category pie: %w", err)
	}

	return newArtifact(data, MIMEPNG, "expense_distribution"), nil
}
