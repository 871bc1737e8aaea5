// Package records derives the location of the bundler's records file.
//
// The records file keeps module and chunk ids stable between builds. The bundler
// owns its contents; this package only computes where it lives and, for
// diagnostics, reads it back.
package records

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/mo"

	"github.com/omarluq/bundlecfg/internal/environ"
)

const (
	// DefaultCIDir is where CI jobs keep their records files.
	DefaultCIDir = "/jenkins/webpack.records/"
	// DefaultHomeSuffix completes the per-project filename in the home directory.
	DefaultHomeSuffix = ".webpack.records.json"
	// DefaultJobEnv names the variable that carries the CI job identifier.
	DefaultJobEnv = "JOB_NAME"
)

var nonWord = regexp.MustCompile(`\W+`)

// Sanitize removes every run of non-word characters from id and trims the result.
// Word characters are ASCII letters, digits and underscore.
func Sanitize(id string) string {
	return strings.TrimSpace(nonWord.ReplaceAllString(id, ""))
}

// Resolver computes records paths.
type Resolver struct {
	// CIDir is the directory used when a job identifier is present.
	// It is joined to the filename by plain concatenation.
	CIDir string
	// HomeSuffix follows ".<basename>" in the home directory filename.
	HomeSuffix string
}

// NewResolver returns a Resolver with the default locations.
func NewResolver() Resolver {
	return Resolver{
		CIDir:      DefaultCIDir,
		HomeSuffix: DefaultHomeSuffix,
	}
}

// Path returns the records path for job.
//
// With a job identifier the path is <CIDir><sanitized>.json and no environment
// query is made. Without one the file is named after the working directory and
// placed in the user's home directory. The result is always absolute.
func (r Resolver) Path(job mo.Option[string], env environ.View) (string, error) {
	if id, ok := job.Get(); ok && id != "" {
		return r.ciPath(id), nil
	}
	return r.homePath(env)
}

func (r Resolver) ciPath(id string) string {
	return r.CIDir + Sanitize(id) + ".json"
}

func (r Resolver) homePath(env environ.View) (string, error) {
	wd, err := env.Getwd()
	if err != nil {
		return "", &EnvironmentError{Op: OpGetwd, Err: err}
	}

	home, err := env.UserHomeDir()
	if err != nil {
		return "", &EnvironmentError{Op: OpHomeDir, Err: err}
	}

	if !filepath.IsAbs(home) {
		home = filepath.Join(wd, home)
	}

	return filepath.Join(home, "."+baseName(wd)+r.HomeSuffix), nil
}

// baseName is filepath.Base except that the root directory has an empty name.
func baseName(dir string) string {
	base := filepath.Base(dir)
	if base == string(filepath.Separator) || base == "." {
		return ""
	}
	return base
}

// Path computes the records path with the default Resolver.
func Path(job mo.Option[string], env environ.View) (string, error) {
	return NewResolver().Path(job, env)
}

// HasEmptyStem reports whether job is present but sanitizes to an empty file name,
// which puts the records file at <ci-dir>/.json.
func HasEmptyStem(job mo.Option[string]) bool {
	id, ok := job.Get()
	return ok && Sanitize(id) == ""
}
