package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"

	"github.com/leapstack-labs/tabview/internal/chart"
	"github.com/leapstack-labs/tabview/internal/dataset"
)

// DefaultMapZoom is the initial zoom level of the marker map.
const DefaultMapZoom = 10

// maxCategoryTicks caps the labelled ticks on a categorical x axis.
const maxCategoryTicks = 20

var (
	latHints = []string{"lat", "latitude"}
	lonHints = []string{"lon", "lng", "long", "longitude"}
)

func loadDataView(state State, opts Options) Output {
	out := Output{
		Page:  PageLoadData,
		Title: "Load CSV File",
		Intro: "Upload a CSV file",
		Load:  &LoadView{},
	}
	if !state.HasDataset() {
		return out
	}

	ds := state.Dataset()
	out.Columns = ds.Columns()
	out.Load = &LoadView{
		Loaded:  true,
		Name:    ds.Name(),
		Rows:    ds.Rows(),
		Width:   ds.Width(),
		Header:  ds.Columns(),
		Preview: ds.Head(opts.previewRows()),
	}
	return out
}

func descriptionView(ds *dataset.Dataset) Output {
	return Output{
		Page:    PageDescription,
		Title:   "Data Description",
		Intro:   "Data information and statistics:",
		Columns: ds.Columns(),
		Description: &DescriptionView{
			Info:     ds.Info(),
			Describe: ds.Describe(),
		},
	}
}

func lineChartView(ds *dataset.Dataset, sel Selections) Output {
	x := resolve(ds, sel.X)
	y := resolve(ds, sel.Y)
	out := Output{
		Page:       PageLineChart,
		Title:      "Custom Line Chart",
		Intro:      "Select X and Y columns to create a line chart:",
		Columns:    ds.Columns(),
		Selections: Selections{X: x, Y: y},
	}
	view := &LineChartView{X: x, Y: y}
	out.LineChart = view

	spec := LineSpec(mustColumn(ds, x), mustColumn(ds, y))
	png, err := chart.Line(spec)
	if err != nil {
		view.Notice = chartNotice(err)
		return out
	}
	view.PNG = png
	return out
}

// LineSpec builds the chart spec for ycol plotted against xcol in row order.
// Rows with a missing value in either column are skipped. Numeric and
// timestamp values are plotted as-is. Any other x is plotted by row position
// and any other y by category, in order of first appearance; both use the
// values as tick labels.
func LineSpec(xcol, ycol *dataset.Column) chart.LineSpec {
	spec := chart.LineSpec{
		XLabel: xcol.Name,
		YLabel: ycol.Name,
		XTime:  xcol.Kind == dataset.KindTimestamp,
		YTime:  ycol.Kind == dataset.KindTimestamp,
	}
	categoricalX := isCategorical(xcol)
	categoricalY := isCategorical(ycol)

	var xLabels, yLabels []chart.Label
	yIndex := make(map[string]float64)
	for i := range ycol.Values {
		if xcol.Values[i] == nil || ycol.Values[i] == nil {
			continue
		}

		var xv, yv float64
		var ok bool
		if !categoricalX {
			if xv, ok = axisValue(xcol, i); !ok {
				continue
			}
		}
		if !categoricalY {
			if yv, ok = axisValue(ycol, i); !ok {
				continue
			}
		}

		if categoricalX {
			xv = float64(len(spec.Points))
			xLabels = append(xLabels, chart.Label{Value: xv, Text: dataset.FormatValue(xcol.Values[i])})
		}
		if categoricalY {
			text := dataset.FormatExact(ycol.Values[i])
			idx, seen := yIndex[text]
			if !seen {
				idx = float64(len(yIndex))
				yIndex[text] = idx
				yLabels = append(yLabels, chart.Label{Value: idx, Text: text})
			}
			yv = idx
		}
		spec.Points = append(spec.Points, plotter.XY{X: xv, Y: yv})
	}

	if categoricalX {
		spec.XTicks = thinLabels(xLabels, maxCategoryTicks)
	}
	if categoricalY {
		spec.YTicks = thinLabels(yLabels, maxCategoryTicks)
	}
	return spec
}

func isCategorical(col *dataset.Column) bool {
	return !col.Kind.Numeric() && col.Kind != dataset.KindTimestamp
}

// axisValue returns the plotted position of a numeric or timestamp cell.
func axisValue(col *dataset.Column, i int) (float64, bool) {
	if col.Kind == dataset.KindTimestamp {
		ts, ok := col.Values[i].(time.Time)
		if !ok {
			return 0, false
		}
		return float64(ts.Unix()), true
	}
	return col.Float(i)
}

func histogramView(ds *dataset.Dataset, sel Selections) Output {
	name := resolve(ds, sel.Column)
	out := Output{
		Page:       PageHistogram,
		Title:      "Histograms",
		Intro:      "Select a column to create a histogram:",
		Columns:    ds.Columns(),
		Selections: Selections{Column: name},
	}
	view := &HistogramView{Column: name}
	out.Histogram = view

	col := mustColumn(ds, name)
	var (
		png []byte
		err error
	)
	if col.Kind.Numeric() {
		values := col.Floats()
		view.Bins = chart.SturgesBins(len(values))
		png, err = chart.Histogram(name, values)
	} else {
		counts := col.ValueCounts()
		categories := make([]string, len(counts))
		heights := make([]float64, len(counts))
		for i, vc := range counts {
			categories[i] = vc.Value
			heights[i] = float64(vc.Count)
		}
		view.Bins = len(counts)
		png, err = chart.Bars(name, categories, heights)
	}
	if err != nil {
		view.Notice = chartNotice(err)
		return out
	}
	view.PNG = png
	return out
}

func columnCountView(ds *dataset.Dataset, sel Selections) Output {
	name := resolve(ds, sel.Column)
	counts := mustColumn(ds, name).ValueCounts()

	total := 0
	for _, vc := range counts {
		total += vc.Count
	}

	return Output{
		Page:       PageColumnCount,
		Title:      "Column Count",
		Intro:      "Select a column to count its values:",
		Columns:    ds.Columns(),
		Selections: Selections{Column: name},
		ColumnCount: &ColumnCountView{
			Column: name,
			Counts: counts,
			Total:  total,
		},
	}
}

func mapView(ds *dataset.Dataset, sel Selections) Output {
	lat := resolveHint(ds, sel.Lat, latHints)
	lon := resolveHint(ds, sel.Lon, lonHints)
	out := Output{
		Page:       PageMap,
		Title:      "Map Longitude and Latitude",
		Intro:      "Specify Longitude and Latitude columns to map:",
		Columns:    ds.Columns(),
		Selections: Selections{Lat: lat, Lon: lon},
	}

	points, dropped := MapPoints(mustColumn(ds, lat), mustColumn(ds, lon))
	view := &MapView{
		LatColumn: lat,
		LonColumn: lon,
		Zoom:      DefaultMapZoom,
		Points:    points,
		Dropped:   dropped,
	}
	out.Map = view

	if len(points) == 0 {
		view.Notice = "No rows have both a latitude and a longitude value."
		return out
	}
	view.Center = Center(points)
	return out
}

// MapPoints pairs the latitude and longitude of every row, dropping rows
// where either value is missing or not numeric.
func MapPoints(latCol, lonCol *dataset.Column) ([]Point, int) {
	var (
		points  []Point
		dropped int
	)
	for i := range latCol.Values {
		la, okLat := latCol.Float(i)
		lo, okLon := lonCol.Float(i)
		if !okLat || !okLon {
			dropped++
			continue
		}
		points = append(points, Point{Lat: la, Lon: lo})
	}
	return points, dropped
}

// Center returns the mean latitude and mean longitude of points.
func Center(points []Point) Point {
	lats := make([]float64, len(points))
	lons := make([]float64, len(points))
	for i, p := range points {
		lats[i], lons[i] = p.Lat, p.Lon
	}
	return Point{Lat: stat.Mean(lats, nil), Lon: stat.Mean(lons, nil)}
}

// resolveHint resolves name like resolve, but when name is empty it prefers a
// column whose name matches one of hints before falling back to the first column.
func resolveHint(ds *dataset.Dataset, name string, hints []string) string {
	if ds.HasColumn(name) {
		return name
	}
	if name == "" {
		for _, col := range ds.Columns() {
			for _, h := range hints {
				if strings.EqualFold(col, h) {
					return col
				}
			}
		}
	}
	return ds.Columns()[0]
}

// thinLabels keeps at most limit evenly spaced labels.
func thinLabels(labels []chart.Label, limit int) []chart.Label {
	if len(labels) <= limit {
		return labels
	}
	step := (len(labels) + limit - 1) / limit
	out := make([]chart.Label, 0, limit)
	for i := 0; i < len(labels); i += step {
		out = append(out, labels[i])
	}
	return out
}

func chartNotice(err error) string {
	if errors.Is(err, chart.ErrNoData) {
		return "The selected column has no values to plot."
	}
	return fmt.Sprintf("Could not draw the chart: %v", err)
}
