package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tabview/internal/dataset/duckdb"
	"github.com/leapstack-labs/tabview/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port        int
	NoBrowser   bool
	PreviewRows int
	MaxUploadMB int
	Dev         bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		Long: `Start a local web server providing the CSV dashboard.

The dashboard provides:
- CSV upload with a data preview
- Column info and summary statistics
- Line charts and histograms
- Value counts per column
- A marker map from latitude and longitude columns`,
		Example: `  # Start on the default port
  tabview serve

  # Start on a custom port without opening a browser
  tabview serve --port 3000 --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().IntVar(&opts.PreviewRows, "preview-rows", 0, "Rows shown in the upload preview (default: 50)")
	cmd.Flags().IntVar(&opts.MaxUploadMB, "max-upload-mb", 0, "Largest accepted upload in MB (default: 200)")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Enable the hot reload endpoints")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	// Flags are already merged into cfg; --no-browser has no config key.
	autoOpen := cfg.UI.AutoOpen && !opts.NoBrowser

	if cfg.UsesDefaultSecret() {
		cmdCtx.Renderer.Warnf("Warning: using the built-in session secret; set session.secret or TABVIEW_SESSION__SECRET")
	}

	reader, err := duckdb.Open(cmd.Context(), cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = reader.Close() }()

	server := ui.NewServer(ui.Config{
		Reader:         reader,
		Port:           cfg.UI.Port,
		SessionSecret:  cfg.Session.Secret,
		SessionMaxAge:  int(cfg.Session.MaxAge.Seconds()),
		IdleTimeout:    cfg.Session.IdleTimeout,
		PreviewRows:    cfg.UI.PreviewRows,
		MaxUploadBytes: cfg.UI.MaxUploadBytes(),
		Dev:            opts.Dev,
		Logger:         logger,
	})

	url := fmt.Sprintf("http://localhost:%d", cfg.UI.Port)
	if autoOpen {
		go openBrowser(url)
	}

	cmdCtx.Renderer.Printf("Starting dashboard on %s\n", url)
	cmdCtx.Renderer.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
