package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/omarluq/bundlecfg/internal/config"
	"github.com/omarluq/bundlecfg/internal/di"
	"github.com/omarluq/bundlecfg/internal/environ"
)

// shutdownTimeout bounds service cleanup after a command finishes.
const shutdownTimeout = 5 * time.Second

type envKey struct{}

// withEnv makes commands read from view instead of the process environment.
func withEnv(ctx context.Context, view environ.View) context.Context {
	return context.WithValue(ctx, envKey{}, view)
}

func envFrom(cmd *cobra.Command) environ.View {
	if ctx := cmd.Context(); ctx != nil {
		if view, ok := ctx.Value(envKey{}).(environ.View); ok {
			return view
		}
	}
	return environ.OS()
}

// containerOptions collects the global flags. Missing flags are treated as unset
// so commands can be exercised without the root command.
func containerOptions(cmd *cobra.Command) di.Options {
	flags := cmd.Flags()

	path, _ := flags.GetString(configFlag)
	files, _ := flags.GetStringArray(envFileFlag)
	level, _ := flags.GetString(logLevelFlag)
	if debug, _ := flags.GetBool(debugFlag); debug {
		level = config.LevelDebug
	}

	return di.Options{
		Env:        envFrom(cmd),
		ConfigPath: path,
		EnvFiles:   files,
		LogLevel:   level,
	}
}

// withContainer runs fn against a container built from cmd's flags and shuts it
// down afterwards, within shutdownTimeout of the command context.
func withContainer(cmd *cobra.Command, fn func(*di.Container) error) (err error) {
	container, err := di.NewContainer(containerOptions(cmd))
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}
	defer func() {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		// Cleanup still runs when the command itself was canceled.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if shutdownErr := container.ShutdownWithContext(ctx); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	return fn(container)
}
