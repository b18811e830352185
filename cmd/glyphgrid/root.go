package main

import (
	"fmt"
	"os"

	"github.com/aretw0/glyphgrid/internal/cli"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "glyphgrid",
	Short:         "glyphgrid edits glyph-and-color grid documents",
	Long:          `glyphgrid keeps layered glyph documents in sessions with full undo/redo history, and serves them over HTTP or MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Project directory (holds glyphgrid.yaml and .glyphgrid/)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default <dir>/glyphgrid.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
}

// openApp builds the App from the global flags. reg enables metrics.
func openApp(cmd *cobra.Command, reg prometheus.Registerer) (*cli.App, error) {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return cli.Open(cli.Options{
		Dir:        dir,
		ConfigPath: configPath,
		Verbose:    verbose,
		Stderr:     cmd.ErrOrStderr(),
		Registerer: reg,
	})
}

// withApp opens the App, runs fn and closes it.
func withApp(cmd *cobra.Command, fn func(app *cli.App) error) error {
	app, err := openApp(cmd, nil)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}
