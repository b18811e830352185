package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/glyphgrid/internal/cli"
	"github.com/aretw0/glyphgrid/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [session-id]",
	Short: "Create a session holding an empty document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			var id string
			if len(args) > 0 {
				id = args[0]
			}
			out := cmd.OutOrStdout()
			if cli.IsTerminal(out) {
				tui.PrintBanner(out, cli.ProfileFor(out))
			}
			id, state, err := app.NewSession(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cli.Summary(id, state))
			return nil
		})
	},
}

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <session-id> [file|-]",
	Short: "Apply actions from a JSON or YAML file (or stdin)",
	Long: `Reads one action, a JSON array of actions, or a YAML list of actions and
applies them in order as a single transition.

Example:
  echo '{"type":"document/set-name","name":"poster"}' | glyphgrid dispatch art -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if len(args) == 2 && args[1] != "-" {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		return withApp(cmd, func(app *cli.App) error {
			state, err := app.DispatchScript(cmd.Context(), args[0], r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.Summary(args[0], state))
			return nil
		})
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo <session-id>",
	Short: "Step back in the session history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return withApp(cmd, func(app *cli.App) error {
			state, err := app.Undo(cmd.Context(), args[0], steps)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.Summary(args[0], state))
			return nil
		})
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo <session-id>",
	Short: "Step forward in the session history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		return withApp(cmd, func(app *cli.App) error {
			state, err := app.Redo(cmd.Context(), args[0], steps)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.Summary(args[0], state))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(newCmd, dispatchCmd, undoCmd, redoCmd)
	undoCmd.Flags().IntP("steps", "n", 1, "Number of revisions to step")
	redoCmd.Flags().IntP("steps", "n", 1, "Number of revisions to step")
}
