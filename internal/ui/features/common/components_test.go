package common

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestNotice(t *testing.T) {
	html := render(t, Notice(NoticeError, "Could not load <x>.csv"))
	assert.Equal(t, `<div class="notice notice--error" role="status">Could not load &lt;x&gt;.csv</div>`, html)
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		data       SelectData
		contains   []string
		notContain []string
	}{
		{
			name: "labels and action",
			data: SelectData{
				Label:    "Select a page",
				Signal:   "page",
				Options:  []string{"load", "map"},
				Labels:   []string{"Load Data", "Map"},
				Selected: "map",
				Action:   "@get('/view')",
			},
			contains: []string{
				`<label>Select a page <select data-bind="page" data-on:change="@get(&#39;/view&#39;)" name="page">`,
				`<option value="load">Load Data</option>`,
				`<option value="map" selected>Map</option>`,
			},
		},
		{
			name: "values stand in for missing labels",
			data: SelectData{
				Label:   "Select column",
				Signal:  "column",
				Options: []string{"x", "y"},
				Labels:  []string{"First"},
			},
			contains: []string{
				`<option value="x">First</option>`,
				`<option value="y">y</option>`,
			},
			notContain: []string{"data-on:change", "selected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, Select(tt.data))
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tt.notContain {
				assert.NotContains(t, html, s)
			}
		})
	}
}

func TestTable(t *testing.T) {
	html := render(t, Table(TableData{
		Header:       []string{"", "y"},
		Rows:         [][]string{{"mean", "2"}, {"max", "<3"}},
		LabelColumns: 1,
	}))

	assert.Contains(t, html, `<thead><tr><th class="label"></th><th>y</th></tr></thead>`)
	assert.Contains(t, html, `<tr><td class="label">mean</td><td>2</td></tr>`)
	assert.Contains(t, html, `<td>&lt;3</td>`)
}
