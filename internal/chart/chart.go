// Package chart renders the monthly expense bar chart as PNG.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/report"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when there is nothing to plot. Callers skip the
// chart instead of showing an empty one.
var ErrNoData = errors.New("no expense data to chart")

// Default canvas settings.
const (
	DefaultWidth  = 800
	DefaultHeight = 480

	barWidth   = 40
	barSpacing = 20
	// go-chart reserves roughly this much for the axes and padding.
	canvasMargin = 120
)

// Options configures a Renderer. Zero values fall back to the defaults.
type Options struct {
	Title  string
	Width  int
	Height int
}

// Renderer draws one bar per month with the month's total expenses.
type Renderer struct {
	opts   Options
	logger logging.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(opts Options, logger logging.Logger) *Renderer {
	if opts.Title == "" {
		opts.Title = models.DefaultChartTitle
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	return &Renderer{opts: opts, logger: logger}
}

// Render writes a PNG bar chart of series to w, keeping the series order.
func (r *Renderer) Render(w io.Writer, series []report.MonthTotal) error {
	if len(series) == 0 {
		return ErrNoData
	}

	bars := make([]gochart.Value, 0, len(series))
	maxValue := 0.0
	for _, point := range series {
		v := point.Total.InexactFloat64()
		if v > maxValue {
			maxValue = v
		}
		bars = append(bars, gochart.Value{Label: point.Month.String(), Value: v})
	}

	width := r.opts.Width
	if needed := len(bars)*(barWidth+barSpacing) + canvasMargin; needed > width {
		width = needed
	}

	graph := gochart.BarChart{
		Title:      r.opts.Title,
		Width:      width,
		Height:     r.opts.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		YAxis: gochart.YAxis{
			Name: "Amount",
			// A fixed range keeps a single bar from collapsing the axis.
			Range: &gochart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
		},
		Bars: bars,
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render expense chart: %w", err)
	}

	r.logger.Debug("Rendered expense chart",
		logging.F(logging.FieldCount, len(bars)))
	return nil
}

// PNG renders series and returns the encoded image.
func (r *Renderer) PNG(series []report.MonthTotal) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, series); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromReport renders the expense totals of rep.
func (r *Renderer) FromReport(rep *report.Report) ([]byte, error) {
	return r.PNG(rep.ExpenseTotals())
}
