package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabview/internal/cli/config"
	"github.com/leapstack-labs/tabview/internal/cli/output"
	"github.com/leapstack-labs/tabview/internal/dataset"
	"github.com/leapstack-labs/tabview/internal/dataset/duckdb"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context and flags.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	mode, _ := cmd.Flags().GetString("output")
	return &CommandContext{
		Cfg:      config.FromContext(cmd.Context()),
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(mode)),
	}
}

// LoadDataset reads the CSV file at path through a short-lived DuckDB reader.
func (c *CommandContext) LoadDataset(ctx context.Context, path string) (*dataset.Dataset, error) {
	reader, err := duckdb.Open(ctx, c.Cfg.Database, c.Logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	ds, err := reader.ReadCSV(ctx, path, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ds, nil
}
