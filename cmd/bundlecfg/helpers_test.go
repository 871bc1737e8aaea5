package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/bundlecfg/internal/descriptor"
	"github.com/omarluq/bundlecfg/internal/environ"
)

// newMockCmd creates a command carrying the global flags and every command flag,
// reading from view and writing to the returned buffer.
func newMockCmd(t *testing.T, view environ.View, set map[string]string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	flags := cmd.Flags()
	flags.String(configFlag, "", "")
	flags.StringArray(envFileFlag, nil, "")
	flags.String(logLevelFlag, "", "")
	flags.Bool(debugFlag, false, "")
	flags.String(jobFlag, "", "")
	flags.String(fileFlag, "", "")
	flags.StringP(outputFlag, "o", "", "")
	flags.Bool(forceFlag, false, "")
	flags.String(formatFlag, string(descriptor.FormatJSON), "")

	for name, value := range set {
		require.NoError(t, flags.Set(name, value))
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(withEnv(context.Background(), view))
	return cmd, &out
}

// projectView returns an environment rooted at a fresh project directory.
func projectView(t *testing.T) (*environ.Static, string) {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "shop")
	require.NoError(t, os.Mkdir(dir, 0o750))
	return &environ.Static{Env: map[string]string{}, Wd: dir, Home: filepath.Join(root, "home")}, dir
}

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
