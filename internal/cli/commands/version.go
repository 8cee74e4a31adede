package commands

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabview/internal/cli/output"
	"github.com/leapstack-labs/tabview/internal/dataset/duckdb"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	DuckDB    string `json:"duckdb"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the tabview version, build metadata and the versions of the Go
runtime and the DuckDB library used to parse CSV files.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			info.GoVersion = runtime.Version()
			info.DuckDB = duckdbVersion(cmd.Context(), cmdCtx)
			return runVersion(cmdCtx.Renderer, info)
		},
	}
}

// duckdbVersion reports the DuckDB library version, or "unknown" when no
// in-memory database can be opened.
func duckdbVersion(ctx context.Context, cmdCtx *CommandContext) string {
	reader, err := duckdb.Open(ctx, ":memory:", cmdCtx.Logger)
	if err != nil {
		cmdCtx.Logger.Debug("duckdb unavailable", "error", err)
		return "unknown"
	}
	defer func() { _ = reader.Close() }()

	version, err := reader.EngineVersion(ctx)
	if err != nil {
		cmdCtx.Logger.Debug("duckdb version query failed", "error", err)
		return "unknown"
	}
	return version
}

func runVersion(r *output.Renderer, info BuildInfo) error {
	if r.Mode() == output.ModeJSON {
		return r.JSON(info)
	}

	r.Printf("tabview v%s\n", info.Version)
	r.Printf("  commit:  %s\n", info.GitCommit)
	r.Printf("  built:   %s\n", info.BuildDate)
	r.Printf("  go:      %s\n", info.GoVersion)
	r.Printf("  duckdb:  %s\n", info.DuckDB)
	return nil
}
