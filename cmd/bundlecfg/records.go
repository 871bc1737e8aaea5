package main

import (
	"fmt"
	"io"

	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/omarluq/bundlecfg/internal/di"
	"github.com/omarluq/bundlecfg/internal/records"
)

const (
	jobFlag  = "job"
	fileFlag = "file"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Records file commands",
}

var recordsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the records file path",
	Long: `Print the absolute path of the records file for the current environment.

With a job identifier (from the configured variable, JOB_NAME by default, or --job)
the path is in the CI records directory. Otherwise it is in the home directory.`,
	Args: cobra.NoArgs,
	RunE: runRecordsPath,
}

var recordsInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize an existing records file",
	Long:  `Read a records file written by the bundler and summarize its modules and chunks. The file is never modified.`,
	Args:  cobra.NoArgs,
	RunE:  runRecordsInspect,
}

func init() {
	recordsPathCmd.Flags().String(jobFlag, "", "job identifier to use instead of the environment")
	recordsInspectCmd.Flags().String(fileFlag, "", "records file to read (default: the computed records path)")

	recordsCmd.AddCommand(recordsPathCmd, recordsInspectCmd)
	rootCmd.AddCommand(recordsCmd)
}

// jobOverride returns the --job value when the flag was given.
func jobOverride(cmd *cobra.Command) mo.Option[string] {
	flag := cmd.Flags().Lookup(jobFlag)
	if flag == nil || !flag.Changed {
		return mo.None[string]()
	}
	return mo.Some(flag.Value.String())
}

func runRecordsPath(cmd *cobra.Command, _ []string) error {
	return withContainer(cmd, func(c *di.Container) error {
		svc, err := di.Invoke[*di.RecordsService](c)
		if err != nil {
			return err
		}

		path, err := svc.Path(jobOverride(cmd))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	})
}

func runRecordsInspect(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString(fileFlag)
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}

	return withContainer(cmd, func(c *di.Container) error {
		if path == "" {
			svc, err := di.Invoke[*di.RecordsService](c)
			if err != nil {
				return err
			}
			if path, err = svc.Path(mo.None[string]()); err != nil {
				return err
			}
		}

		summary, err := records.Inspect(path)
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), summary)
	})
}

func printSummary(w io.Writer, s *records.Summary) error {
	if _, err := fmt.Fprintf(w, "Records: %s\n", s.Path); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Modules: %d (used ids: %d, max id: %d)\n",
		s.Modules, s.UsedModuleIDs, s.MaxModuleID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Chunks:  %d (used ids: %d)\n", len(s.Chunks), s.UsedChunkIDs); err != nil {
		return err
	}
	for _, chunk := range s.Chunks {
		if _, err := fmt.Fprintf(w, "  %4d  %s\n", chunk.ID, chunk.Name); err != nil {
			return err
		}
	}
	return nil
}
