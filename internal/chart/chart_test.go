package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestLine(t *testing.T) {
	img, err := Line(LineSpec{
		XLabel: "x",
		YLabel: "y",
		Points: plotter.XYs{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 3}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestLine_CategoricalTicks(t *testing.T) {
	img, err := Line(LineSpec{
		XLabel: "day",
		YLabel: "sales",
		Points: plotter.XYs{{X: 0, Y: 1}, {X: 1, Y: 5}},
		XTicks: []Label{{Value: 0, Text: "mon"}, {Value: 1, Text: "tue"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestLine_CategoricalAndTimeY(t *testing.T) {
	tests := []struct {
		name string
		spec LineSpec
	}{
		{
			name: "category y",
			spec: LineSpec{
				Points: plotter.XYs{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 0}},
				YTicks: []Label{{Value: 0, Text: "low"}, {Value: 1, Text: "high"}},
			},
		},
		{
			name: "time y",
			spec: LineSpec{
				Points: plotter.XYs{{X: 1, Y: 1714521600}, {X: 2, Y: 1714608000}},
				YTime:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Line(tt.spec)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(img, pngMagic))
		})
	}
}

func TestLine_Deterministic(t *testing.T) {
	spec := LineSpec{XLabel: "x", YLabel: "y", Points: plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	a, err := Line(spec)
	require.NoError(t, err)
	b, err := Line(spec)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLine_NoData(t *testing.T) {
	_, err := Line(LineSpec{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHistogram(t *testing.T) {
	img, err := Histogram("value", []float64{1, 2, 2, 3, 3, 3, 4, 4, 5})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	_, err = Histogram("value", nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHistogram_ConstantValues(t *testing.T) {
	img, err := Histogram("value", []float64{7, 7, 7})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))
}

func TestBars(t *testing.T) {
	img, err := Bars("city", []string{"Oslo", "Rome"}, []float64{2, 1})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	_, err = Bars("city", []string{"Oslo"}, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSturgesBins(t *testing.T) {
	assert.Equal(t, 1, SturgesBins(0))
	assert.Equal(t, 1, SturgesBins(1))
	assert.Equal(t, 2, SturgesBins(2))
	assert.Equal(t, 5, SturgesBins(10))
	assert.Equal(t, 11, SturgesBins(1000))
}

func TestKDE(t *testing.T) {
	values := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}
	curve := KDE(values, 101)
	require.Len(t, curve, 101)

	// The density integrates to roughly one over the sampled range.
	var area float64
	for i := 1; i < len(curve); i++ {
		area += (curve[i].X - curve[i-1].X) * (curve[i].Y + curve[i-1].Y) / 2
	}
	assert.InDelta(t, 1.0, area, 0.02)

	assert.Nil(t, KDE([]float64{1}, 10))
	assert.Nil(t, KDE([]float64{2, 2, 2}, 10))
}
