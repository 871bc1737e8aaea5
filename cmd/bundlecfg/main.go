// Package main is the entry point for bundlecfg.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/omarluq/bundlecfg/internal/version"
)

const (
	configFlag   = "config"
	envFileFlag  = "env-file"
	logLevelFlag = "log-level"
	debugFlag    = "debug"
)

var rootCmd = &cobra.Command{
	Use:   "bundlecfg",
	Short: "Bundler configuration descriptor builder",
	Long: `bundlecfg builds the configuration descriptor handed to the JavaScript bundler:
project context, entry points, output naming, plugin directives, and the location
of the records file that keeps module and chunk ids stable between builds.

On CI (JOB_NAME set) the records file lives in a shared per-job directory;
locally it lives in the home directory, named after the project directory.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(configFlag, "",
		"settings file (default: ./bundlecfg.yaml, ./bundlecfg.yml or ./bundlecfg.toml if present)")
	flags.StringArray(envFileFlag, nil, "dotenv file to read variables from (repeatable, process env wins)")
	flags.String(logLevelFlag, "", "log level override (debug, info, warn, error)")
	flags.Bool(debugFlag, false, "shorthand for --log-level debug")
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion(version.Version),
		fang.WithCommit(version.Commit),
	); err != nil {
		os.Exit(1)
	}
}
