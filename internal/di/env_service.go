package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/omarluq/bundlecfg/internal/environ"
)

// EnvService holds the environment view every other service reads from.
type EnvService struct {
	View environ.View
}

// NewEnv layers the configured dotenv files under the base view.
func NewEnv(i do.Injector) (*EnvService, error) {
	base := do.MustInvokeNamed[environ.View](i, BaseEnvKey)
	files := do.MustInvokeNamed[[]string](i, EnvFilesKey)

	view, err := environ.WithDotenv(base, files...)
	if err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}
	return &EnvService{View: view}, nil
}
