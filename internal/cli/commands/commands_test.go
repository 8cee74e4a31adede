package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabview/internal/cli/output"
	"github.com/leapstack-labs/tabview/internal/cli/testutil"
	"github.com/leapstack-labs/tabview/internal/dataset"
)

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"port", "no-browser", "preview-rows", "max-upload-mb", "dev"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewDescribeCommand(t *testing.T) {
	cmd := NewDescribeCommand()

	assert.Equal(t, "describe <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.Error(t, cmd.Args(cmd, nil), "a file argument is required")
}

func TestNewCountsCommand(t *testing.T) {
	cmd := NewCountsCommand()

	assert.Equal(t, "counts <file>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("column"))
	assert.NotNil(t, cmd.Flags().ShorthandLookup("c"))
}

func TestDescribeCommand_Markdown(t *testing.T) {
	path := testutil.WriteCSV(t, "sales.csv", testutil.SalesCSV)

	out, _, err := testutil.ExecuteCommand(t, NewDescribeCommand(), path)
	require.NoError(t, err)

	assert.Contains(t, out, "## sales.csv: 4 rows × 5 columns")
	assert.Contains(t, out, "| 0 | region | 4 non-null | text |")
	assert.Contains(t, out, "| 3 | lat | 3 non-null | float |")
	assert.Contains(t, out, "| mean |")
	testutil.AssertNoANSI(t, out)
}

func TestDescribeCommand_MissingFile(t *testing.T) {
	_, _, err := testutil.ExecuteCommand(t, NewDescribeCommand(), "does-not-exist.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load does-not-exist.csv")
}

func TestRunCounts(t *testing.T) {
	ds, err := dataset.New("sales.csv", []dataset.Column{
		{Name: "region", Kind: dataset.KindText, Values: []any{"north", "south", "north", nil}},
		{Name: "units", Kind: dataset.KindInteger, Values: []any{int64(1), int64(2), int64(2), int64(2)}},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		column   string
		wantBody []string
		wantErr  error
	}{
		{
			name:     "defaults to first column",
			wantBody: []string{"## sales.csv: region", "| north | 2 |", "| south | 1 |", "3 values in total"},
		},
		{
			name:     "explicit column",
			column:   "units",
			wantBody: []string{"| 2 | 3 |", "| 1 | 1 |", "4 values in total"},
		},
		{
			name:    "unknown column",
			column:  "nope",
			wantErr: dataset.ErrUnknownColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := testutil.NewTestRenderer(output.ModeMarkdown)

			err := runCounts(tr.Renderer, ds, &CountsOptions{Column: tt.column})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantBody {
				assert.Contains(t, tr.Output(), want)
			}
		})
	}
}

func TestRenderDescription_JSON(t *testing.T) {
	ds, err := dataset.New("one.csv", []dataset.Column{
		{Name: "v", Kind: dataset.KindFloat, Values: []any{4.0}},
	})
	require.NoError(t, err)

	tr := testutil.NewTestRenderer(output.ModeJSON)
	require.NoError(t, renderDescription(tr.Renderer, ds))

	var got struct {
		File    string `json:"file"`
		Numeric []struct {
			Column string   `json:"column"`
			Mean   *float64 `json:"mean"`
			Std    *float64 `json:"std"`
		} `json:"numeric"`
	}
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &got))
	assert.Equal(t, "one.csv", got.File)
	require.Len(t, got.Numeric, 1)
	require.NotNil(t, got.Numeric[0].Mean)
	assert.InDelta(t, 4.0, *got.Numeric[0].Mean, 1e-9)
	assert.Nil(t, got.Numeric[0].Std, "std of a single value is encoded as null")
}
