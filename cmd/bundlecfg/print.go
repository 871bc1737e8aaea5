package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omarluq/bundlecfg/internal/descriptor"
	"github.com/omarluq/bundlecfg/internal/di"
)

const formatFlag = "format"

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the bundler descriptor",
	Long:  `Build the bundler descriptor for the current environment and write it to stdout.`,
	Args:  cobra.NoArgs,
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().String(formatFlag, string(descriptor.FormatJSON), "output format (json, yaml, toml)")
	rootCmd.AddCommand(printCmd)
}

// buildDescriptor builds and encodes the descriptor in the format named by --format.
func buildDescriptor(cmd *cobra.Command, c *di.Container) (*descriptor.Descriptor, []byte, descriptor.Format, error) {
	name, err := cmd.Flags().GetString(formatFlag)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := descriptor.ParseFormat(name)
	if err != nil {
		return nil, nil, "", err
	}

	svc, err := di.Invoke[*di.DescriptorService](c)
	if err != nil {
		return nil, nil, "", err
	}
	d, err := svc.Build()
	if err != nil {
		return nil, nil, "", err
	}

	data, err := descriptor.Encode(d, format)
	if err != nil {
		return nil, nil, "", err
	}
	return d, data, format, nil
}

func runPrint(cmd *cobra.Command, _ []string) error {
	return withContainer(cmd, func(c *di.Container) error {
		_, data, _, err := buildDescriptor(cmd, c)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	})
}
