package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabview/internal/dataset"
	"github.com/leapstack-labs/tabview/internal/session"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

// emptyState fails the test if a view tries to read the dataset.
type emptyState struct {
	t *testing.T
}

func (s emptyState) HasDataset() bool { return false }

func (s emptyState) Dataset() *dataset.Dataset {
	s.t.Fatal("Dataset called on a session without data")
	return nil
}

func mustDataset(t *testing.T, columns ...dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("test.csv", columns)
	require.NoError(t, err)
	return ds
}

func loadedState(t *testing.T, columns ...dataset.Column) *session.State {
	t.Helper()
	s := session.NewState()
	s.SetDataset(mustDataset(t, columns...))
	return s
}

func xyColumns() []dataset.Column {
	return []dataset.Column{
		{Name: "x", Kind: dataset.KindText, Values: []any{"a", "b", "a"}},
		{Name: "y", Kind: dataset.KindInteger, Values: []any{int64(1), int64(2), int64(3)}},
	}
}

// =============================================================================
// Gating
// =============================================================================

func TestRender_GatesDataPagesWithoutDataset(t *testing.T) {
	for _, page := range Pages() {
		if !page.NeedsData() {
			continue
		}
		t.Run(page.Slug(), func(t *testing.T) {
			out := Render(emptyState{t: t}, page, Selections{X: "x", Column: "x"}, Options{})

			assert.True(t, out.Gated())
			assert.Equal(t, MissingDataWarning, out.Warning)
			assert.Equal(t, page, out.Page)
			assert.Nil(t, out.Load)
			assert.Nil(t, out.Description)
			assert.Nil(t, out.LineChart)
			assert.Nil(t, out.Histogram)
			assert.Nil(t, out.ColumnCount)
			assert.Nil(t, out.Map)
			assert.Empty(t, out.Columns)
		})
	}
}

func TestRender_ScenarioA_HistogramBeforeUpload(t *testing.T) {
	out := Render(session.NewState(), ParsePage("Histograms"), Selections{}, Options{})
	assert.Equal(t, "Please load a CSV file first.", out.Warning)
}

func TestRender_LoadDataAlwaysRenders(t *testing.T) {
	out := Render(emptyState{t: t}, PageLoadData, Selections{}, Options{})
	assert.False(t, out.Gated())
	require.NotNil(t, out.Load)
	assert.False(t, out.Load.Loaded)
	assert.Nil(t, out.Load.Preview)

	state := loadedState(t, xyColumns()...)
	out = Render(state, PageLoadData, Selections{}, Options{PreviewRows: 2})
	require.NotNil(t, out.Load)
	assert.True(t, out.Load.Loaded)
	assert.Equal(t, "test.csv", out.Load.Name)
	assert.Equal(t, 3, out.Load.Rows)
	assert.Equal(t, 2, out.Load.Width)
	assert.Equal(t, []string{"x", "y"}, out.Load.Header)
	assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}}, out.Load.Preview)
}

// =============================================================================
// Views
// =============================================================================

func TestRender_ScenarioB_ColumnCount(t *testing.T) {
	state := loadedState(t, xyColumns()...)

	out := Render(state, ParsePage("Column Count"), Selections{Column: "x"}, Options{})
	require.NotNil(t, out.ColumnCount)
	assert.Equal(t, "x", out.ColumnCount.Column)
	assert.Equal(t, []dataset.ValueCount{{Value: "a", Count: 2}, {Value: "b", Count: 1}}, out.ColumnCount.Counts)
	assert.Equal(t, 3, out.ColumnCount.Total)
}

func TestRender_ScenarioC_MapDropsMissingBeforeCenter(t *testing.T) {
	state := loadedState(t,
		dataset.Column{Name: "name", Kind: dataset.KindText, Values: []any{"a", "b", "c", "d"}},
		dataset.Column{Name: "lat", Kind: dataset.KindFloat, Values: []any{10.0, nil, 20.0, 90.0}},
		dataset.Column{Name: "lon", Kind: dataset.KindFloat, Values: []any{1.0, 50.0, 3.0, nil}},
	)

	out := Render(state, PageMap, Selections{Lat: "lat", Lon: "lon"}, Options{})
	require.NotNil(t, out.Map)
	assert.Equal(t, []Point{{Lat: 10, Lon: 1}, {Lat: 20, Lon: 3}}, out.Map.Points)
	assert.Equal(t, 2, out.Map.Dropped)
	assert.InDelta(t, 15.0, out.Map.Center.Lat, 1e-9)
	assert.InDelta(t, 2.0, out.Map.Center.Lon, 1e-9)
	assert.Equal(t, DefaultMapZoom, out.Map.Zoom)
	assert.Empty(t, out.Map.Notice)
}

func TestRender_MapGuessesCoordinateColumns(t *testing.T) {
	state := loadedState(t,
		dataset.Column{Name: "city", Kind: dataset.KindText, Values: []any{"Oslo"}},
		dataset.Column{Name: "Longitude", Kind: dataset.KindFloat, Values: []any{10.75}},
		dataset.Column{Name: "Latitude", Kind: dataset.KindFloat, Values: []any{59.91}},
	)

	out := Render(state, PageMap, Selections{}, Options{})
	assert.Equal(t, Selections{Lat: "Latitude", Lon: "Longitude"}, out.Selections)
}

func TestRender_MapWithoutUsableRows(t *testing.T) {
	state := loadedState(t,
		dataset.Column{Name: "lat", Kind: dataset.KindText, Values: []any{"north", nil}},
		dataset.Column{Name: "lon", Kind: dataset.KindFloat, Values: []any{1.0, 2.0}},
	)

	out := Render(state, PageMap, Selections{Lat: "lat", Lon: "lon"}, Options{})
	require.NotNil(t, out.Map)
	assert.Empty(t, out.Map.Points)
	assert.NotEmpty(t, out.Map.Notice)
}

func TestRender_Description(t *testing.T) {
	state := loadedState(t, xyColumns()...)

	out := Render(state, PageDescription, Selections{}, Options{})
	require.NotNil(t, out.Description)
	assert.Equal(t, 3, out.Description.Info.Rows)
	require.Len(t, out.Description.Describe.Numeric, 1)
	assert.Equal(t, "y", out.Description.Describe.Numeric[0].Column)
}

func TestRender_LineChart(t *testing.T) {
	state := loadedState(t, xyColumns()...)

	out := Render(state, PageLineChart, Selections{X: "x", Y: "y"}, Options{})
	require.NotNil(t, out.LineChart)
	assert.Empty(t, out.LineChart.Notice)
	assert.True(t, bytes.HasPrefix(out.LineChart.PNG, []byte("\x89PNG")))
}

func TestRender_LineChartTextY(t *testing.T) {
	state := loadedState(t, xyColumns()...)

	out := Render(state, PageLineChart, Selections{X: "y", Y: "x"}, Options{})
	require.NotNil(t, out.LineChart)
	assert.Empty(t, out.LineChart.Notice)
	assert.True(t, bytes.HasPrefix(out.LineChart.PNG, []byte("\x89PNG")))
}

func TestRender_Histogram(t *testing.T) {
	state := loadedState(t, xyColumns()...)

	numeric := Render(state, PageHistogram, Selections{Column: "y"}, Options{})
	require.NotNil(t, numeric.Histogram)
	assert.NotEmpty(t, numeric.Histogram.PNG)
	assert.Equal(t, 3, numeric.Histogram.Bins)

	categorical := Render(state, PageHistogram, Selections{Column: "x"}, Options{})
	require.NotNil(t, categorical.Histogram)
	assert.NotEmpty(t, categorical.Histogram.PNG)
	assert.Equal(t, 2, categorical.Histogram.Bins)
}

func TestRender_UnknownSelectionFallsBackToFirstColumn(t *testing.T) {
	state := loadedState(t, xyColumns()...)

	out := Render(state, PageColumnCount, Selections{Column: "missing"}, Options{})
	assert.Equal(t, "x", out.Selections.Column)
	assert.Equal(t, "x", out.ColumnCount.Column)
}

// =============================================================================
// Laws
// =============================================================================

func TestRender_Idempotent(t *testing.T) {
	state := loadedState(t, xyColumns()...)

	for _, page := range Pages() {
		t.Run(page.Slug(), func(t *testing.T) {
			sel := Selections{X: "x", Y: "y", Column: "x", Lat: "y", Lon: "y"}
			first := Render(state, page, sel, Options{})
			second := Render(state, page, sel, Options{})
			assert.Equal(t, first, second)
		})
	}
}

func TestRender_OverwriteShowsLatestDataset(t *testing.T) {
	state := loadedState(t, xyColumns()...)
	state.SetDataset(mustDataset(t, dataset.Column{Name: "z", Kind: dataset.KindText, Values: []any{"q"}}))

	out := Render(state, PageColumnCount, Selections{Column: "x"}, Options{})
	assert.Equal(t, []string{"z"}, out.Columns)
	assert.Equal(t, []dataset.ValueCount{{Value: "q", Count: 1}}, out.ColumnCount.Counts)
}

// =============================================================================
// Pages
// =============================================================================

func TestParsePage(t *testing.T) {
	tests := []struct {
		input string
		want  Page
	}{
		{"Load Data", PageLoadData},
		{"load", PageLoadData},
		{"Data Description", PageDescription},
		{"line-chart", PageLineChart},
		{"Custom Line Chart", PageLineChart},
		{"HISTOGRAMS", PageHistogram},
		{"column-count", PageColumnCount},
		{"Map Longitude and Latitude", PageMap},
		{"map", PageMap},
		{"", PageLoadData},
		{"nonsense", PageLoadData},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePage(tt.input))
		})
	}
}

func TestPage_RoundTrip(t *testing.T) {
	for _, p := range Pages() {
		assert.Equal(t, p, ParsePage(p.Slug()))
		assert.Equal(t, p, ParsePage(p.Label()))
	}
	assert.False(t, PageLoadData.NeedsData())
	assert.True(t, PageMap.NeedsData())
}
