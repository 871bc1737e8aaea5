package descriptor

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/omarluq/bundlecfg/internal/config"
	"github.com/omarluq/bundlecfg/internal/environ"
	"github.com/omarluq/bundlecfg/internal/records"
)

// Builder assembles descriptors from settings.
type Builder struct {
	settings *config.Config
	logger   zerolog.Logger
	resolver records.Resolver
}

// NewBuilder returns a Builder for the given settings.
// The settings are expected to have passed Validate.
func NewBuilder(settings *config.Config, logger zerolog.Logger) *Builder {
	return &Builder{
		settings: settings,
		logger:   logger,
		resolver: settings.Records.Resolver(),
	}
}

// Build assembles the descriptor for env.
//
// The records path is computed exactly once. It is the only field that depends
// on the job identifier.
func (b *Builder) Build(env environ.View) (*Descriptor, error) {
	context, err := b.context(env)
	if err != nil {
		return nil, err
	}

	job := environ.Job(env, b.settings.Records.JobEnv)
	recordsPath, err := b.resolver.Path(job, env)
	if err != nil {
		return nil, fmt.Errorf("failed to compute records path: %w", err)
	}

	if id, ok := job.Get(); ok {
		if records.HasEmptyStem(job) {
			b.logger.Warn().
				Str("env", b.settings.Records.JobEnv).
				Str("job", id).
				Str("records_path", recordsPath).
				Msg("job identifier has no word characters, records file name is empty")
		} else {
			b.logger.Debug().Str("job", id).Str("records_path", recordsPath).Msg("using CI records path")
		}
	} else {
		b.logger.Debug().Str("records_path", recordsPath).Msg("using home records path")
	}

	out := b.settings.Project.Output
	return &Descriptor{
		context:     context,
		recordsPath: recordsPath,
		output: Output{
			Filename:      out.Filename,
			ChunkFilename: out.ChunkFilename,
			Path:          resolveAgainst(context, out.Path),
			PublicPath:    out.PublicPath,
		},
		entries: entriesFrom(b.settings.Project.Entries),
		plugins: directivesFrom(b.settings.Project.Plugins),
	}, nil
}

// context returns the absolute project context.
// A relative context is taken from the settings base directory, which
// defaults to the working directory.
func (b *Builder) context(env environ.View) (string, error) {
	base := b.settings.BaseDir
	if base == "" {
		wd, err := env.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve project context: %w",
				&records.EnvironmentError{Op: records.OpGetwd, Err: err})
		}
		base = wd
	}

	return resolveAgainst(base, b.settings.Project.GetContextOption().OrElse(".")), nil
}

func resolveAgainst(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// Build assembles the descriptor from the built-in settings.
func Build(env environ.View) (*Descriptor, error) {
	return NewBuilder(config.Default(), zerolog.Nop()).Build(env)
}
