package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabview/internal/cli/output"
	"github.com/leapstack-labs/tabview/internal/dataset"
)

// CountsOptions holds options for the counts command.
type CountsOptions struct {
	Column string
}

// NewCountsCommand creates the counts command.
func NewCountsCommand() *cobra.Command {
	opts := &CountsOptions{}

	cmd := &cobra.Command{
		Use:   "counts <file>",
		Short: "Count the distinct values of a column",
		Long: `Load a CSV file and print how often each distinct value of a column
occurs, most frequent first. Missing values are not counted.`,
		Example: `  # Count the values of the first column
  tabview counts sales.csv

  # Count a specific column
  tabview counts sales.csv --column region`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			ds, err := cmdCtx.LoadDataset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return runCounts(cmdCtx.Renderer, ds, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Column, "column", "c", "", "Column to count (default: first column)")

	return cmd
}

type countsJSON struct {
	Column string               `json:"column"`
	Total  int                  `json:"total"`
	Counts []dataset.ValueCount `json:"counts"`
}

func runCounts(r *output.Renderer, ds *dataset.Dataset, opts *CountsOptions) error {
	name := opts.Column
	if name == "" {
		name = ds.Columns()[0]
	}
	col, err := ds.Column(name)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, ds.Columns())
	}

	counts := col.ValueCounts()
	total := 0
	rows := make([][]string, len(counts))
	for i, vc := range counts {
		total += vc.Count
		rows[i] = []string{vc.Value, strconv.Itoa(vc.Count)}
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(countsJSON{Column: name, Total: total, Counts: counts})
	}

	r.Heading(fmt.Sprintf("%s: %s", ds.Name(), name))
	r.Println("")
	r.Table([]string{name, "count"}, rows)
	r.Printf("%s values in total\n", r.Number(total))
	return nil
}
