package di

import (
	"github.com/rs/zerolog"
	"github.com/samber/do/v2"
	"github.com/samber/mo"

	"github.com/omarluq/bundlecfg/internal/environ"
	"github.com/omarluq/bundlecfg/internal/records"
)

// RecordsService computes records paths with the configured locations.
type RecordsService struct {
	env      environ.View
	logger   zerolog.Logger
	Resolver records.Resolver
	JobEnv   string
}

// NewRecords creates the records service from settings.
func NewRecords(i do.Injector) (*RecordsService, error) {
	cfgSvc, err := do.Invoke[*ConfigService](i)
	if err != nil {
		return nil, err
	}
	logSvc, err := do.Invoke[*LoggerService](i)
	if err != nil {
		return nil, err
	}
	envSvc := do.MustInvoke[*EnvService](i)

	return &RecordsService{
		env:      envSvc.View,
		logger:   logSvc.Logger,
		Resolver: cfgSvc.Config.Records.Resolver(),
		JobEnv:   cfgSvc.Config.Records.JobEnv,
	}, nil
}

// Job returns the job identifier from the configured variable.
func (s *RecordsService) Job() mo.Option[string] {
	return environ.Job(s.env, s.JobEnv)
}

// Path computes the records path. A present override replaces the job
// identifier read from the environment.
func (s *RecordsService) Path(override mo.Option[string]) (string, error) {
	job := mo.EmptyableToOption(override.OrElse(s.Job().OrEmpty()))

	path, err := s.Resolver.Path(job, s.env)
	if err != nil {
		return "", err
	}

	if records.HasEmptyStem(job) {
		s.logger.Warn().
			Str("env", s.JobEnv).
			Str("job", job.OrEmpty()).
			Str("records_path", path).
			Msg("job identifier has no word characters, records file name is empty")
	}
	return path, nil
}
