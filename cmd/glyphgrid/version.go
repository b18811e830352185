package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/glyphgrid"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of glyphgrid",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "glyphgrid version %s\n", strings.TrimSpace(glyphgrid.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
