package config

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Valid logging levels.
var validLogLevels = map[string]bool{
	"":      true, // Empty defaults to info
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Valid logging formats.
var validLogFormats = map[string]bool{
	"":        true, // Empty auto-detects
	"json":    true,
	"console": true,
	"text":    true, // Alias for console
	"pretty":  true,
}

var envVarName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the settings for errors.
// Returns a ValidationError containing all errors found, or nil if valid.
func (c *Config) Validate() error {
	errs := &ValidationError{}

	validateEntries(c, errs)
	validateOutput(c, errs)
	validatePlugins(c, errs)
	validateRecords(c, errs)
	validateLogging(c, errs)

	return errs.ToError()
}

// validateEntries validates the project.entries section.
func validateEntries(c *Config, errs *ValidationError) {
	if len(c.Project.Entries) == 0 {
		errs.Add("project.entries must define at least one entry")
		return
	}

	for i := range c.Project.Entries {
		e := &c.Project.Entries[i]
		if strings.TrimSpace(e.Name) == "" {
			errs.Addf("project.entries[%d].name is required", i)
		}
		if len(e.Modules) == 0 {
			errs.Addf("project.entries[%d] (%s) must list at least one module", i, e.Name)
		}
		for j, m := range e.Modules {
			if strings.TrimSpace(m) == "" {
				errs.Addf("project.entries[%d].modules[%d] is empty", i, j)
			}
		}
	}

	names := lo.Filter(c.Project.EntryNames(), func(n string, _ int) bool { return n != "" })
	for _, dup := range lo.FindDuplicates(names) {
		errs.Addf("project.entries: duplicate entry name %q", dup)
	}
}

// validateOutput validates the project.output section.
func validateOutput(c *Config, errs *ValidationError) {
	out := &c.Project.Output
	if out.Filename == "" {
		errs.Add("project.output.filename is required")
	}
	if out.ChunkFilename == "" {
		errs.Add("project.output.chunk_filename is required")
	}
	if out.Path == "" {
		errs.Add("project.output.path is required")
	}
}

// validatePlugins validates the project.plugins section.
// Options are opaque and not inspected.
func validatePlugins(c *Config, errs *ValidationError) {
	for i := range c.Project.Plugins {
		if strings.TrimSpace(c.Project.Plugins[i].Name) == "" {
			errs.Addf("project.plugins[%d].name is required", i)
		}
	}
}

// validateRecords validates the records section.
func validateRecords(c *Config, errs *ValidationError) {
	r := &c.Records

	if !envVarName.MatchString(r.JobEnv) {
		errs.Addf("records.job_env must be a valid environment variable name (got %q)", r.JobEnv)
	}

	switch {
	case r.CIDir == "":
		errs.Add("records.ci_dir is required")
	case !filepath.IsAbs(r.CIDir):
		errs.Addf("records.ci_dir must be an absolute path (got %q)", r.CIDir)
	case !strings.HasSuffix(r.CIDir, "/"):
		errs.Addf("records.ci_dir must end with a slash (got %q)", r.CIDir)
	}

	if r.HomeSuffix == "" {
		errs.Add("records.home_suffix is required")
	} else if strings.ContainsAny(r.HomeSuffix, `/\`) {
		errs.Addf("records.home_suffix must be a file name suffix, not a path (got %q)", r.HomeSuffix)
	}
}

// validateLogging validates the logging configuration section.
func validateLogging(c *Config, errs *ValidationError) {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs.Addf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}

	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		errs.Addf("logging.format must be one of json, console, text, pretty (got %q)", c.Logging.Format)
	}
}
