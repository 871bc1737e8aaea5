package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/omarluq/bundlecfg/internal/config"
)

// ConfigService holds the validated settings for one invocation.
type ConfigService struct {
	Config *config.Config
	// Path is the settings file that was loaded, empty when defaults are used.
	Path string
}

// NewConfig loads, overrides, and validates the settings.
func NewConfig(i do.Injector) (*ConfigService, error) {
	path := do.MustInvokeNamed[string](i, ConfigPathKey)
	level := do.MustInvokeNamed[string](i, LogLevelKey)
	envSvc, err := do.Invoke[*EnvService](i)
	if err != nil {
		return nil, err
	}

	cfg, used, err := config.Resolve(path, envSvc.View)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level != "" {
		cfg.Logging.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ConfigService{Config: cfg, Path: used}, nil
}
