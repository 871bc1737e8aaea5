// Package di provides dependency injection using samber/do v2.
// It creates and configures the DI container with all service providers.
package di

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/omarluq/bundlecfg/internal/environ"
)

// Named values provided to the container.
const (
	// ConfigPathKey holds the settings file path. Empty means discover.
	ConfigPathKey = "config.path"
	// EnvFilesKey holds the dotenv files layered under the base environment.
	EnvFilesKey = "env.files"
	// LogLevelKey holds a log level that overrides the settings file. Empty means none.
	LogLevelKey = "log.level"
	// BaseEnvKey holds the environment view before dotenv overlays.
	BaseEnvKey = "env.base"
)

// Options configures a Container.
type Options struct {
	// Env is the base environment view. Nil means the process environment.
	Env        environ.View
	ConfigPath string
	LogLevel   string
	EnvFiles   []string
}

// Container wraps the do.Injector with bundlecfg specific configuration.
type Container struct {
	injector *do.RootScope
}

// NewContainer creates and configures the DI container.
// All service providers are registered during container creation; nothing is
// resolved until first use.
func NewContainer(opts Options) (*Container, error) {
	injector := do.New()

	env := opts.Env
	if env == nil {
		env = environ.OS()
	}

	do.ProvideNamedValue(injector, ConfigPathKey, opts.ConfigPath)
	do.ProvideNamedValue(injector, EnvFilesKey, append([]string(nil), opts.EnvFiles...))
	do.ProvideNamedValue(injector, LogLevelKey, opts.LogLevel)
	do.ProvideNamedValue(injector, BaseEnvKey, env)

	RegisterSingletons(injector)

	return &Container{injector: injector}, nil
}

// Injector returns the underlying do.Injector for service resolution.
func (c *Container) Injector() *do.RootScope {
	return c.injector
}

// Invoke resolves a service from the container.
// Returns an error if the service is not registered or fails to initialize.
func Invoke[T any](c *Container) (T, error) {
	return do.Invoke[T](c.injector)
}

// MustInvoke resolves a service from the container or panics.
func MustInvoke[T any](c *Container) T {
	return do.MustInvoke[T](c.injector)
}

// InvokeNamed resolves a named service from the container.
func InvokeNamed[T any](c *Container, name string) (T, error) {
	return do.InvokeNamed[T](c.injector, name)
}

// Shutdown shuts down all services in reverse order of initialization.
func (c *Container) Shutdown() error {
	report := c.injector.Shutdown()
	if report != nil && !report.Succeed {
		return fmt.Errorf("shutdown failed: %s", report.Error())
	}
	return nil
}

// ShutdownWithContext shuts down with context for timeout control.
func (c *Container) ShutdownWithContext(ctx context.Context) error {
	done := make(chan *do.ShutdownReport, 1)
	go func() {
		done <- c.injector.ShutdownWithContext(ctx)
	}()

	select {
	case report := <-done:
		if report != nil && !report.Succeed {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("shutdown timed out: %s: %w", report.Error(), ctxErr)
			}
			return fmt.Errorf("shutdown failed: %s", report.Error())
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// HealthCheck resolves the settings and logger eagerly so invalid settings
// surface before any command runs.
func (c *Container) HealthCheck() error {
	if _, err := do.Invoke[*ConfigService](c.injector); err != nil {
		return fmt.Errorf("config service unhealthy: %w", err)
	}
	if _, err := do.Invoke[*LoggerService](c.injector); err != nil {
		return fmt.Errorf("logger service unhealthy: %w", err)
	}
	return nil
}
