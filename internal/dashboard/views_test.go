package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/leapstack-labs/tabview/internal/chart"
	"github.com/leapstack-labs/tabview/internal/dataset"
)

func TestLineSpec_Numeric(t *testing.T) {
	x := &dataset.Column{Name: "t", Kind: dataset.KindFloat, Values: []any{0.5, 1.5, nil, 3.0}}
	y := &dataset.Column{Name: "v", Kind: dataset.KindInteger, Values: []any{int64(2), nil, int64(5), int64(7)}}

	spec := LineSpec(x, y)
	assert.Equal(t, "t", spec.XLabel)
	assert.Equal(t, "v", spec.YLabel)
	assert.Equal(t, plotter.XYs{{X: 0.5, Y: 2}, {X: 3, Y: 7}}, spec.Points)
	assert.Empty(t, spec.XTicks)
	assert.False(t, spec.XTime)
}

func TestLineSpec_Categorical(t *testing.T) {
	x := &dataset.Column{Name: "day", Kind: dataset.KindText, Values: []any{"mon", nil, "wed"}}
	y := &dataset.Column{Name: "v", Kind: dataset.KindFloat, Values: []any{1.0, 2.0, 3.0}}

	spec := LineSpec(x, y)
	assert.Equal(t, plotter.XYs{{X: 0, Y: 1}, {X: 1, Y: 3}}, spec.Points)
	assert.Equal(t, []chart.Label{{Value: 0, Text: "mon"}, {Value: 1, Text: "wed"}}, spec.XTicks)
}

func TestLineSpec_CategoricalY(t *testing.T) {
	x := &dataset.Column{Name: "n", Kind: dataset.KindInteger, Values: []any{int64(1), int64(2), int64(3), int64(4), nil}}
	y := &dataset.Column{Name: "level", Kind: dataset.KindText, Values: []any{"low", "high", nil, "low", "mid"}}

	spec := LineSpec(x, y)
	assert.Equal(t, plotter.XYs{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 4, Y: 0}}, spec.Points)
	assert.Equal(t, []chart.Label{{Value: 0, Text: "low"}, {Value: 1, Text: "high"}}, spec.YTicks)
	assert.Empty(t, spec.XTicks)
}

func TestLineSpec_CategoricalBothAxes(t *testing.T) {
	x := &dataset.Column{Name: "day", Kind: dataset.KindText, Values: []any{"mon", "tue", "wed"}}
	y := &dataset.Column{Name: "ok", Kind: dataset.KindBoolean, Values: []any{true, false, true}}

	spec := LineSpec(x, y)
	assert.Equal(t, plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, spec.Points)
	assert.Equal(t, []chart.Label{{Value: 0, Text: "true"}, {Value: 1, Text: "false"}}, spec.YTicks)
	assert.Len(t, spec.XTicks, 3)
}

func TestLineSpec_Timestamp(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	x := &dataset.Column{Name: "when", Kind: dataset.KindTimestamp, Values: []any{day}}
	y := &dataset.Column{Name: "v", Kind: dataset.KindFloat, Values: []any{4.0}}

	spec := LineSpec(x, y)
	assert.True(t, spec.XTime)
	require.Len(t, spec.Points, 1)
	assert.InDelta(t, float64(day.Unix()), spec.Points[0].X, 0)
}

func TestThinLabels(t *testing.T) {
	labels := make([]chart.Label, 45)
	for i := range labels {
		labels[i] = chart.Label{Value: float64(i)}
	}

	thinned := thinLabels(labels, 20)
	assert.LessOrEqual(t, len(thinned), 20)
	assert.Equal(t, 0.0, thinned[0].Value)
	assert.Equal(t, 3.0, thinned[1].Value)

	assert.Len(t, thinLabels(labels[:5], 20), 5)
}

func TestMapPointsAndCenter(t *testing.T) {
	lat := &dataset.Column{Name: "lat", Kind: dataset.KindFloat, Values: []any{1.0, nil, 3.0}}
	lon := &dataset.Column{Name: "lon", Kind: dataset.KindInteger, Values: []any{int64(10), int64(20), int64(30)}}

	points, dropped := MapPoints(lat, lon)
	assert.Equal(t, []Point{{Lat: 1, Lon: 10}, {Lat: 3, Lon: 30}}, points)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, Point{Lat: 2, Lon: 20}, Center(points))
}
