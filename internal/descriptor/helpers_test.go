package descriptor_test

import "github.com/omarluq/bundlecfg/internal/config"

// makeTestConfig returns the built-in settings rooted at /work/app.
func makeTestConfig() *config.Config {
	cfg := config.Default()
	cfg.BaseDir = "/work/app"
	cfg.Logging.Format = "json"
	return cfg
}
