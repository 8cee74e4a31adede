package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dash "github.com/leapstack-labs/tabview/internal/dashboard"
	"github.com/leapstack-labs/tabview/internal/dataset"
	"github.com/leapstack-labs/tabview/internal/ui/features/dashboard/types"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestPage(t *testing.T) {
	tests := []struct {
		name       string
		data       types.PageData
		contains   []string
		notContain []string
	}{
		{
			name: "shell without data",
			data: types.PageData{
				Output: dash.Output{Page: dash.PageLoadData, Title: "Load CSV File", Load: &dash.LoadView{}},
			},
			contains: []string{
				`<!doctype html><html lang="en">`,
				`<title>Load CSV File - Tabview</title>`,
				`<link rel="stylesheet" href="/static/app.css">`,
				`data-signals="{&#34;page&#34;:&#34;load&#34;`,
				`data-init="@get('/updates')"`,
				`<option value="load" selected>Load Data</option>`,
				`<option value="map">Map Longitude and Latitude</option>`,
				`<p>No data loaded</p>`,
				`enctype="multipart/form-data"`,
				`name="file"`,
			},
			notContain: []string{"ui-badge"},
		},
		{
			name: "dev badge and loaded status",
			data: types.PageData{
				Output: dash.Output{Page: dash.PageMap, Title: "Map"},
				Status: types.StatusData{Loaded: true, Name: "cities.csv", Rows: 12, Width: 3},
				IsDev:  true,
			},
			contains: []string{
				`<h1>Tabview <small class="ui-badge">dev</small></h1>`,
				`<option value="map" selected>`,
				`<strong>cities.csv</strong>`,
				`12 rows &times; 3 columns`,
			},
			notContain: []string{"No data loaded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, Page(tt.data))
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tt.notContain {
				assert.NotContains(t, html, s)
			}
		})
	}
}

func TestView(t *testing.T) {
	tests := []struct {
		name       string
		out        dash.Output
		contains   []string
		notContain []string
	}{
		{
			name: "gated page shows only the warning",
			out: dash.Output{
				Page:    dash.PageHistogram,
				Title:   "Histograms",
				Intro:   "Pick a column",
				Warning: "Please load a dataset first.",
			},
			contains:   []string{`<section id="view"><h2>Histograms</h2>`, "notice--warning", "Please load a dataset first."},
			notContain: []string{"Pick a column"},
		},
		{
			name: "flash is shown above the view",
			out: dash.Output{
				Page:  dash.PageLoadData,
				Title: "Load CSV File",
				Flash: &dash.Flash{Kind: dash.FlashSuccess, Message: "File uploaded successfully!"},
				Load: &dash.LoadView{
					Loaded:  true,
					Name:    "xy.csv",
					Rows:    2,
					Width:   2,
					Header:  []string{"x", "y"},
					Preview: [][]string{{"a", "1"}, {"b", "2"}},
				},
			},
			contains: []string{
				`<div class="notice notice--success" role="status">File uploaded successfully!</div>`,
				"xy.csv: 2 rows &times; 2 columns",
				`<td>a</td><td>1</td>`,
			},
		},
		{
			name: "column count lists values and total",
			out: dash.Output{
				Page:    dash.PageColumnCount,
				Title:   "Column Count",
				Columns: []string{"x", "y"},
				ColumnCount: &dash.ColumnCountView{
					Column: "x",
					Counts: []dataset.ValueCount{{Value: "a", Count: 2}, {Value: "b", Count: 1}},
					Total:  3,
				},
			},
			contains: []string{
				`data-bind="column"`,
				`data-on:change="@get(&#39;/view&#39;)"`,
				`<option value="x" selected>x</option>`,
				`<th class="label">x</th><th>count</th>`,
				`<td class="label">a</td><td>2</td>`,
				"<p>3 values in total</p>",
			},
		},
		{
			name: "chart notice replaces the image",
			out: dash.Output{
				Page:      dash.PageLineChart,
				Title:     "Line Chart",
				Columns:   []string{"x", "y"},
				LineChart: &dash.LineChartView{X: "x", Y: "y", Notice: "Nothing to plot."},
			},
			contains:   []string{"notice--info", "Nothing to plot."},
			notContain: []string{"<img"},
		},
		{
			name: "histogram image",
			out: dash.Output{
				Page:      dash.PageHistogram,
				Title:     "Histograms",
				Columns:   []string{"y"},
				Histogram: &dash.HistogramView{Column: "y", PNG: []byte("png")},
			},
			contains: []string{`<img class="chart" alt="Histogram of y" src="data:image/png;base64,cG5n">`},
		},
		{
			name: "map with skipped rows",
			out: dash.Output{
				Page:    dash.PageMap,
				Title:   "Map",
				Columns: []string{"lat", "lon"},
				Map: &dash.MapView{
					LatColumn: "lat",
					LonColumn: "lon",
					Center:    dash.Point{Lat: 40.7127837, Lon: -74.0059413},
					Zoom:      4,
					Points:    []dash.Point{{Lat: 40.7127837, Lon: -74.0059413}},
					Dropped:   2,
				},
			},
			contains: []string{
				"2 rows without coordinates were skipped.",
				`data-lat="40.7127837"`,
				`data-lon="-74.0059413"`,
				`data-zoom="4"`,
				`data-points="[{&#34;lat&#34;:40.7127837,&#34;lon&#34;:-74.0059413}]"`,
				`data-init="tabviewMap(el)"`,
			},
		},
		{
			name: "map notice hides the map",
			out: dash.Output{
				Page:    dash.PageMap,
				Title:   "Map",
				Columns: []string{"lat", "lon"},
				Map:     &dash.MapView{LatColumn: "lat", LonColumn: "lon", Notice: "No rows have both a latitude and a longitude value."},
			},
			contains:   []string{"No rows have both a latitude and a longitude value."},
			notContain: []string{`id="map"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, View(tt.out))
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tt.notContain {
				assert.NotContains(t, html, s)
			}
		})
	}
}

func TestDescribeTable(t *testing.T) {
	t.Run("numeric columns", func(t *testing.T) {
		table := describeTable(dataset.Description{
			Numeric: []dataset.NumericSummary{{Column: "y", Count: 3, Mean: 2, Min: 1, Max: 3}},
		})
		assert.Equal(t, []string{"", "y"}, table.Header)
		require.Len(t, table.Rows, 8)
		assert.Equal(t, []string{"count", "3"}, table.Rows[0])
		assert.Equal(t, []string{"mean", "2"}, table.Rows[1])
		assert.Equal(t, 1, table.LabelColumns)
	})

	t.Run("categorical columns", func(t *testing.T) {
		table := describeTable(dataset.Description{
			Categories: []dataset.CategorySummary{{Column: "x", Count: 3, Unique: 2, Top: "a", Freq: 2}},
		})
		assert.Equal(t, [][]string{{"count", "3"}, {"unique", "2"}, {"top", "a"}, {"freq", "2"}}, table.Rows)
	})
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 << 20, "5.0 MB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, humanBytes(tt.n))
		})
	}
}
