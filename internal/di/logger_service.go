package di

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"github.com/omarluq/bundlecfg/internal/logging"
)

// LoggerService wraps the zerolog logger for DI.
type LoggerService struct {
	closer io.Closer
	Logger zerolog.Logger
}

// NewLogger creates the zerolog logger from configuration.
func NewLogger(i do.Injector) (*LoggerService, error) {
	cfgSvc, err := do.Invoke[*ConfigService](i)
	if err != nil {
		return nil, err
	}

	// A relative log file sits next to the settings file.
	logCfg := cfgSvc.Config.Logging.ResolveOutput(cfgSvc.Config.BaseDir)
	logger, closer, err := logging.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfgSvc.Path != "" {
		logger.Debug().Str("path", cfgSvc.Path).Msg("settings loaded")
	} else {
		logger.Debug().Msg("no settings file found, using defaults")
	}

	return &LoggerService{Logger: logger, closer: closer}, nil
}

// Shutdown implements do.Shutdowner and releases a file-backed log output.
func (l *LoggerService) Shutdown() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
