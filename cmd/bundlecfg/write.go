package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/omarluq/bundlecfg/internal/descriptor"
	"github.com/omarluq/bundlecfg/internal/di"
)

const (
	outputFlag      = "output"
	forceFlag       = "force"
	descriptorStem  = "webpack.descriptor"
	descriptorPerms = 0o644
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the bundler descriptor to a file",
	Long: `Build the bundler descriptor and write it to a file.
The default file is webpack.descriptor.<format> in the project context directory.`,
	Args: cobra.NoArgs,
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringP(outputFlag, "o", "", "output path (default: <context>/webpack.descriptor.<format>)")
	writeCmd.Flags().String(formatFlag, string(descriptor.FormatJSON), "output format (json, yaml, toml)")
	writeCmd.Flags().Bool(forceFlag, false, "overwrite an existing file")
	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, _ []string) error {
	output, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	force, err := cmd.Flags().GetBool(forceFlag)
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	return withContainer(cmd, func(c *di.Container) error {
		d, data, format, err := buildDescriptor(cmd, c)
		if err != nil {
			return err
		}

		if output == "" {
			output = filepath.Join(d.Context(), descriptorStem+"."+string(format))
		}

		if err := writeFile(output, data, force); err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ Descriptor written to %s\n", output)
		return err
	})
}

// writeFile creates parent directories and writes data, refusing to replace an
// existing file unless force is set.
func writeFile(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("file already exists at %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, descriptorPerms); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
