package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_ResolvesAutoMode(t *testing.T) {
	var out, errOut bytes.Buffer

	assert.Equal(t, ModeMarkdown, NewRenderer(&out, &errOut, ModeAuto).Mode(), "non-terminal writers get markdown")
	assert.Equal(t, ModeMarkdown, NewRenderer(&out, &errOut, "").Mode())
	assert.Equal(t, ModeText, NewRenderer(&out, &errOut, ModeText).Mode())
	assert.Equal(t, ModeJSON, NewRenderer(&out, &errOut, ModeJSON).Mode())
}

func TestRenderer_Table(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		wantBody []string
	}{
		{
			name:     "text",
			mode:     ModeText,
			wantBody: []string{"┌", "VALUE", "COUNT", "│ a", "│ 2"},
		},
		{
			name:     "markdown",
			mode:     ModeMarkdown,
			wantBody: []string{"| Value | Count |", "| a | 2 |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := NewRenderer(&out, &out, tt.mode)
			r.Table([]string{"Value", "Count"}, [][]string{{"a", "2"}, {"b", "1"}})

			for _, want := range tt.wantBody {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestRenderer_HeadingIsPlainWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeText)
	r.Heading("Column Count")

	assert.Equal(t, "Column Count\n", out.String())
}

func TestRenderer_Number(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeText)
	assert.Equal(t, "1,234,567", r.Number(1234567))
	assert.Equal(t, "12", r.Number(12))
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"rows": 3}))
	assert.JSONEq(t, `{"rows": 3}`, out.String())
}
