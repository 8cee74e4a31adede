// Package chart renders the dashboard's raster charts with gonum/plot.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// Default chart dimensions, 10x6 inches.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// kdePoints is the number of samples along the KDE curve.
const kdePoints = 200

var (
	lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	fillColor = color.RGBA{R: 31, G: 119, B: 180, A: 140}
)

// Label is a tick label at a position on an axis.
type Label struct {
	Value float64
	Text  string
}

// LineSpec describes a line chart.
type LineSpec struct {
	XLabel string
	YLabel string
	Points plotter.XYs
	// XTicks replaces the numeric x axis ticks when set, e.g. for
	// categorical x columns plotted by row position.
	XTicks []Label
	// XTime formats x values as Unix timestamps.
	XTime bool
	// YTicks and YTime do the same for the y axis.
	YTicks []Label
	YTime  bool
}

// Line renders a line chart as PNG.
func Line(spec LineSpec) ([]byte, error) {
	if len(spec.Points) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	line, err := plotter.NewLine(spec.Points)
	if err != nil {
		return nil, fmt.Errorf("failed to build line: %w", err)
	}
	line.Color = lineColor
	line.Width = vg.Points(1.5)
	p.Add(line)

	if marker := tickMarker(spec.XTicks, spec.XTime); marker != nil {
		p.X.Tick.Marker = marker
	}
	if marker := tickMarker(spec.YTicks, spec.YTime); marker != nil {
		p.Y.Tick.Marker = marker
	}

	return encode(p)
}

func tickMarker(labels []Label, isTime bool) plot.Ticker {
	switch {
	case len(labels) > 0:
		ticks := make([]plot.Tick, len(labels))
		for i, l := range labels {
			ticks[i] = plot.Tick{Value: l.Value, Label: l.Text}
		}
		return plot.ConstantTicks(ticks)
	case isTime:
		return plot.TimeTicks{Format: time.DateOnly}
	default:
		return nil
	}
}

// Histogram renders a histogram of values with a Gaussian kernel density
// estimate scaled to counts, drawn on top.
func Histogram(label string, values []float64) ([]byte, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}

	if lo := floats.Min(values); lo == floats.Max(values) {
		// A single distinct value has no bin width; draw it as one bar.
		return Bars(label, []string{strconv.FormatFloat(lo, 'g', -1, 64)}, []float64{float64(len(values))})
	}

	p := plot.New()
	p.X.Label.Text = label
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(values), SturgesBins(len(values)))
	if err != nil {
		return nil, fmt.Errorf("failed to build histogram: %w", err)
	}
	h.FillColor = fillColor
	h.LineStyle.Color = lineColor
	p.Add(h)

	if curve := KDE(values, kdePoints); len(curve) > 0 {
		scale := float64(len(values)) * h.Width
		for i := range curve {
			curve[i].Y *= scale
		}
		kde, err := plotter.NewLine(curve)
		if err != nil {
			return nil, fmt.Errorf("failed to build density curve: %w", err)
		}
		kde.Color = lineColor
		kde.Width = vg.Points(2)
		p.Add(kde)
	}

	return encode(p)
}

// Bars renders one bar per category, used for histograms of non-numeric columns.
func Bars(label string, categories []string, counts []float64) ([]byte, error) {
	if len(categories) == 0 || len(categories) != len(counts) {
		return nil, ErrNoData
	}

	p := plot.New()
	p.X.Label.Text = label
	p.Y.Label.Text = "Count"

	width := vg.Points(20)
	if n := len(categories); n > 20 {
		width = vg.Points(math.Max(2, 400/float64(n)))
	}
	bars, err := plotter.NewBarChart(plotter.Values(counts), width)
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = fillColor
	bars.LineStyle.Color = lineColor
	p.Add(bars)
	p.NominalX(categories...)

	return encode(p)
}

// SturgesBins returns the Sturges bin count for n observations.
func SturgesBins(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// KDE evaluates a Gaussian kernel density estimate of values at n evenly
// spaced points spanning three bandwidths beyond the data range. The
// bandwidth follows Scott's rule. It returns nil when the estimate is
// undefined (fewer than two values or zero variance).
func KDE(values []float64, n int) plotter.XYs {
	if len(values) < 2 || n < 2 {
		return nil
	}
	sd := stat.StdDev(values, nil)
	if sd == 0 || math.IsNaN(sd) {
		return nil
	}
	bw := sd * math.Pow(float64(len(values)), -0.2)

	lo := floats.Min(values) - 3*bw
	hi := floats.Max(values) + 3*bw
	step := (hi - lo) / float64(n-1)

	kernel := distuv.Normal{Mu: 0, Sigma: bw}
	out := make(plotter.XYs, n)
	for i := range out {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			sum += kernel.Prob(x - v)
		}
		out[i].X = x
		out[i].Y = sum / float64(len(values))
	}
	return out
}

func encode(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render png: %w", err)
	}
	return buf.Bytes(), nil
}
