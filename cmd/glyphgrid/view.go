package main

import (
	"time"

	"github.com/aretw0/glyphgrid/internal/cli"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <session-id>",
	Short: "Draw a scene in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sceneID, _ := cmd.Flags().GetString("scene")
		return withApp(cmd, func(app *cli.App) error {
			out := cmd.OutOrStdout()
			return app.Render(cmd.Context(), out, args[0], sceneID, cli.ProfileFor(out))
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "List the revisions of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		return withApp(cmd, func(app *cli.App) error {
			out := cmd.OutOrStdout()
			return app.History(cmd.Context(), out, args[0], mermaid, cli.IsTerminal(out))
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Write the current document to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return withApp(cmd, func(app *cli.App) error {
			return app.Export(cmd.Context(), cmd.OutOrStdout(), args[0], format)
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <session-id> <file>",
	Short: "Replace a session with a JSON or YAML document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			state, err := app.Import(cmd.Context(), args[0], args[1], time.Now())
			if err != nil {
				return err
			}
			cmd.Println(cli.Summary(args[0], state))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(renderCmd, historyCmd, exportCmd, importCmd)
	renderCmd.Flags().String("scene", "", "Scene id (default: current scene)")
	historyCmd.Flags().Bool("mermaid", false, "Print a Mermaid diagram instead of a table")
	exportCmd.Flags().StringP("format", "f", cli.FormatJSON, "Output format: json or yaml")
}
