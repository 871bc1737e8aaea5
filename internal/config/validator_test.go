package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarluq/bundlecfg/internal/config"
)

func validationErrors(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)

	var verr *config.ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	return verr.Errors
}

func TestValidateValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.MakeTestConfig().Validate())
}

func TestValidateEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []config.EntryConfig
		want    string
	}{
		{
			name:    "no entries",
			entries: []config.EntryConfig{},
			want:    "project.entries must define at least one entry",
		},
		{
			name:    "missing name",
			entries: []config.EntryConfig{{Name: " ", Modules: []string{"./a.js"}}},
			want:    "project.entries[0].name is required",
		},
		{
			name:    "no modules",
			entries: []config.EntryConfig{{Name: "a"}},
			want:    "project.entries[0] (a) must list at least one module",
		},
		{
			name:    "empty module",
			entries: []config.EntryConfig{{Name: "a", Modules: []string{"./a.js", ""}}},
			want:    "project.entries[0].modules[1] is empty",
		},
		{
			name: "duplicate name",
			entries: []config.EntryConfig{
				{Name: "page", Modules: []string{"./a.js"}},
				{Name: "page", Modules: []string{"./b.js"}},
			},
			want: `project.entries: duplicate entry name "page"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.MakeTestConfig()
			cfg.Project.Entries = tt.entries

			assert.Contains(t, validationErrors(t, cfg.Validate()), tt.want)
		})
	}
}

func TestValidateRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mutate func(*config.RecordsConfig)
		name   string
		want   string
	}{
		{
			name:   "job env with dash",
			mutate: func(r *config.RecordsConfig) { r.JobEnv = "JOB-NAME" },
			want:   `records.job_env must be a valid environment variable name (got "JOB-NAME")`,
		},
		{
			name:   "relative ci dir",
			mutate: func(r *config.RecordsConfig) { r.CIDir = "records/" },
			want:   `records.ci_dir must be an absolute path (got "records/")`,
		},
		{
			name:   "ci dir without trailing slash",
			mutate: func(r *config.RecordsConfig) { r.CIDir = "/jenkins/records" },
			want:   `records.ci_dir must end with a slash (got "/jenkins/records")`,
		},
		{
			name:   "empty ci dir",
			mutate: func(r *config.RecordsConfig) { r.CIDir = "" },
			want:   "records.ci_dir is required",
		},
		{
			name:   "home suffix with separator",
			mutate: func(r *config.RecordsConfig) { r.HomeSuffix = "/records.json" },
			want:   `records.home_suffix must be a file name suffix, not a path (got "/records.json")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.MakeTestConfig()
			tt.mutate(&cfg.Records)

			assert.Contains(t, validationErrors(t, cfg.Validate()), tt.want)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := config.MakeTestConfig()
	cfg.Project.Output.Filename = ""
	cfg.Project.Plugins = []config.PluginConfig{{Name: ""}}
	cfg.Logging.Level = "verbose"
	cfg.Logging.Format = "xml"

	errs := validationErrors(t, cfg.Validate())
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "project.output.filename is required")
	assert.Contains(t, errs, "project.plugins[0].name is required")

	err := cfg.Validate()
	assert.Contains(t, err.Error(), "settings validation failed with 4 errors")
}

func TestValidationErrorMessages(t *testing.T) {
	t.Parallel()

	empty := &config.ValidationError{}
	assert.NoError(t, empty.ToError())
	assert.Equal(t, "settings validation failed", empty.Error())

	single := &config.ValidationError{}
	single.Addf("field %s is bad", "x")
	assert.Equal(t, "settings validation failed: field x is bad", single.Error())
}
