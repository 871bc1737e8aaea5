package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omarluq/bundlecfg/internal/config"
	"github.com/omarluq/bundlecfg/internal/di"
)

const settingsStem = "bundlecfg"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Settings file commands",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the settings file",
	Long: `Load and validate the settings file without building a descriptor.
Every problem found is reported, not only the first.`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default settings file",
	Long:  `Generate a bundlecfg settings file holding the built-in defaults (default: ./bundlecfg.yaml).`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().StringP(outputFlag, "o", "", "output path (default: ./bundlecfg.<format>)")
	configInitCmd.Flags().Bool(forceFlag, false, "overwrite existing settings file")
	configInitCmd.Flags().String(formatFlag, string(config.FormatYAML), "settings format (yaml, toml)")

	configCmd.AddCommand(configValidateCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	return withContainer(cmd, func(c *di.Container) error {
		out := cmd.OutOrStdout()

		svc, err := di.Invoke[*di.ConfigService](c)
		if err != nil {
			// do wraps provider errors; the original message is what users need.
			var verr *config.ValidationError
			if errors.As(err, &verr) {
				err = verr
			}
			fmt.Fprintf(out, "✗ Config validation failed: %s\n", err)
			return err
		}

		if svc.Path == "" {
			_, err = fmt.Fprintln(out, "✓ no settings file found, built-in defaults are valid")
			return err
		}
		_, err = fmt.Fprintf(out, "✓ %s is valid\n", svc.Path)
		return err
	})
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	output, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	force, err := cmd.Flags().GetBool(forceFlag)
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	name, err := cmd.Flags().GetString(formatFlag)
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	format := config.Format(strings.ToLower(name))
	data, err := config.Template(format)
	if err != nil {
		return err
	}

	if output == "" {
		wd, err := envFrom(cmd).Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		output = filepath.Join(wd, settingsStem+"."+string(format))
	}

	if err := writeFile(output, data, force); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Settings file created at %s\n", output)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Edit entries and plugins for your project")
	fmt.Fprintln(out, "  2. Validate with: bundlecfg config validate")
	fmt.Fprintln(out, "  3. Write the descriptor: bundlecfg write")

	return nil
}
