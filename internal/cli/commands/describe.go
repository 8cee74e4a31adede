package commands

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabview/internal/cli/output"
	"github.com/leapstack-labs/tabview/internal/dataset"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file>",
		Short: "Show column info and summary statistics of a CSV file",
		Long: `Load a CSV file and print the same information as the dashboard's
Data Description page: every column with its non-null count and type,
followed by summary statistics of the numeric columns (or of all columns
when none is numeric).`,
		Example: `  # Describe a file
  tabview describe sales.csv

  # Machine-readable output
  tabview describe sales.csv -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			ds, err := cmdCtx.LoadDataset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderDescription(cmdCtx.Renderer, ds)
		},
	}
}

type descriptionJSON struct {
	File       string                    `json:"file"`
	Info       dataset.Info              `json:"info"`
	Numeric    []numericJSON             `json:"numeric,omitempty"`
	Categories []dataset.CategorySummary `json:"categories,omitempty"`
}

// numericJSON mirrors dataset.NumericSummary with NaN encoded as null.
type numericJSON struct {
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"25%"`
	Q50    *float64 `json:"50%"`
	Q75    *float64 `json:"75%"`
	Max    *float64 `json:"max"`
}

func toNumericJSON(s dataset.NumericSummary) numericJSON {
	return numericJSON{
		Column: s.Column,
		Count:  s.Count,
		Mean:   finite(s.Mean),
		Std:    finite(s.Std),
		Min:    finite(s.Min),
		Q25:    finite(s.Q25),
		Q50:    finite(s.Q50),
		Q75:    finite(s.Q75),
		Max:    finite(s.Max),
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func renderDescription(r *output.Renderer, ds *dataset.Dataset) error {
	info := ds.Info()
	desc := ds.Describe()

	if r.Mode() == output.ModeJSON {
		out := descriptionJSON{File: ds.Name(), Info: info, Categories: desc.Categories}
		for _, s := range desc.Numeric {
			out.Numeric = append(out.Numeric, toNumericJSON(s))
		}
		return r.JSON(out)
	}

	r.Heading(fmt.Sprintf("%s: %s rows × %d columns", ds.Name(), r.Number(ds.Rows()), ds.Width()))
	r.Println("")

	rows := make([][]string, len(info.Columns))
	for i, c := range info.Columns {
		rows[i] = []string{strconv.Itoa(i), c.Name, r.Number(c.NonNull) + " non-null", c.Kind.String()}
	}
	r.Table([]string{"#", "Column", "Non-Null Count", "Dtype"}, rows)
	r.Println("")

	header, stats := describeRows(desc)
	r.Table(header, stats)
	return nil
}

// describeRows lays the summaries out with one column per dataset column.
func describeRows(d dataset.Description) ([]string, [][]string) {
	header := []string{""}
	if len(d.Numeric) > 0 {
		names := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
		rows := make([][]string, len(names))
		for i, n := range names {
			rows[i] = []string{n}
		}
		for _, s := range d.Numeric {
			header = append(header, s.Column)
			for i, v := range []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max} {
				rows[i] = append(rows[i], dataset.FormatFloat(v))
			}
		}
		return header, rows
	}

	rows := [][]string{{"count"}, {"unique"}, {"top"}, {"freq"}}
	for _, s := range d.Categories {
		header = append(header, s.Column)
		rows[0] = append(rows[0], strconv.Itoa(s.Count))
		rows[1] = append(rows[1], strconv.Itoa(s.Unique))
		rows[2] = append(rows[2], s.Top)
		rows[3] = append(rows[3], strconv.Itoa(s.Freq))
	}
	return header, rows
}
