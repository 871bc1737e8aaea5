package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omarluq/bundlecfg/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version, git commit, and build date.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "bundlecfg %s\n", version.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
