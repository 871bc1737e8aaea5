// Package config provides settings loading, parsing, and validation for bundlecfg.
package config

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/omarluq/bundlecfg/internal/records"
)

// Log level constants.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Output defaults. Placeholder tokens are resolved by the bundler, not here.
const (
	DefaultFilename      = "[name].[chunkhash:8].js"
	DefaultChunkFilename = "[name].[chunkhash:8].js"
	DefaultOutputPath    = "./dist"
	DefaultPublicPath    = "/dist"
	DefaultLogOutput     = "stderr"
)

// Infinity is how an unbounded numeric plugin option is spelled in settings and output.
const Infinity = "Infinity"

// Config represents a complete bundlecfg settings file.
type Config struct {
	// BaseDir is the directory relative paths are resolved against.
	// Load sets it to the settings file's directory; it is never read from the file.
	BaseDir string        `yaml:"-" toml:"-"`
	Project ProjectConfig `yaml:"project" toml:"project"`
	Records RecordsConfig `yaml:"records" toml:"records"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ProjectConfig describes what the bundler should build.
type ProjectConfig struct {
	// Context is the base directory the bundler resolves entry modules from.
	// Empty means BaseDir.
	Context string         `yaml:"context" toml:"context"`
	Output  OutputConfig   `yaml:"output" toml:"output"`
	Entries []EntryConfig  `yaml:"entries" toml:"entries"`
	Plugins []PluginConfig `yaml:"plugins" toml:"plugins"`
}

// EntryConfig is one named entry point and the modules it starts from.
type EntryConfig struct {
	Name    string   `yaml:"name" toml:"name"`
	Modules []string `yaml:"modules" toml:"modules"`
}

// OutputConfig holds the bundler's output naming.
type OutputConfig struct {
	Filename      string `yaml:"filename" toml:"filename"`
	ChunkFilename string `yaml:"chunk_filename" toml:"chunk_filename"`
	// Path is resolved against the project context when relative.
	Path       string `yaml:"path" toml:"path"`
	PublicPath string `yaml:"public_path" toml:"public_path"`
}

// PluginConfig is an opaque plugin directive passed to the bundler verbatim.
type PluginConfig struct {
	Options map[string]any `yaml:"options" toml:"options"`
	Name    string         `yaml:"name" toml:"name"`
}

// RecordsConfig controls where the records file is placed.
type RecordsConfig struct {
	// JobEnv names the environment variable holding the CI job identifier.
	JobEnv string `yaml:"job_env" toml:"job_env"`
	// CIDir is used when a job identifier is present. Must be absolute and end with "/".
	CIDir string `yaml:"ci_dir" toml:"ci_dir"`
	// HomeSuffix completes ".<project>" for the home directory records file.
	HomeSuffix string `yaml:"home_suffix" toml:"home_suffix"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // json, console, pretty
	Output string `yaml:"output" toml:"output"` // stdout, stderr, or file path
	Pretty bool   `yaml:"pretty" toml:"pretty"` // force colored console output
}

// Default returns the settings used when no settings file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// DefaultEntries returns the built-in entry points: a vendor bundle and one page entry.
func DefaultEntries() []EntryConfig {
	return []EntryConfig{
		{Name: "vendor", Modules: []string{"react", "react-dom"}},
		{Name: "entryA", Modules: []string{"./src/entry-a.js"}},
	}
}

// DefaultPlugins returns the built-in plugin directives. The commons chunk
// directive pulls the runtime into its own chunk so vendor hashes stay stable.
func DefaultPlugins() []PluginConfig {
	return []PluginConfig{
		{
			Name: "CommonsChunkPlugin",
			Options: map[string]any{
				"name":      []any{"vendor", "runtime"},
				"minChunks": Infinity,
			},
		},
	}
}

// ApplyDefaults fills every unset field.
// Omitted entries and plugins get the built-in set; an explicit empty list is kept.
func (c *Config) ApplyDefaults() {
	if c.Project.Entries == nil {
		c.Project.Entries = DefaultEntries()
	}
	if c.Project.Plugins == nil {
		c.Project.Plugins = DefaultPlugins()
	}

	out := &c.Project.Output
	out.Filename = lo.CoalesceOrEmpty(out.Filename, DefaultFilename)
	out.ChunkFilename = lo.CoalesceOrEmpty(out.ChunkFilename, DefaultChunkFilename)
	out.Path = lo.CoalesceOrEmpty(out.Path, DefaultOutputPath)
	out.PublicPath = lo.CoalesceOrEmpty(out.PublicPath, DefaultPublicPath)

	c.Records.JobEnv = lo.CoalesceOrEmpty(c.Records.JobEnv, records.DefaultJobEnv)
	c.Records.CIDir = lo.CoalesceOrEmpty(c.Records.CIDir, records.DefaultCIDir)
	c.Records.HomeSuffix = lo.CoalesceOrEmpty(c.Records.HomeSuffix, records.DefaultHomeSuffix)

	c.Logging.Level = lo.CoalesceOrEmpty(c.Logging.Level, LevelInfo)
	c.Logging.Output = lo.CoalesceOrEmpty(c.Logging.Output, DefaultLogOutput)
}

// Resolver returns the records resolver described by the records section.
func (r *RecordsConfig) Resolver() records.Resolver {
	return records.Resolver{CIDir: r.CIDir, HomeSuffix: r.HomeSuffix}
}

// GetContextOption returns the explicit project context, if any.
func (p *ProjectConfig) GetContextOption() mo.Option[string] {
	if p.Context == "" {
		return mo.None[string]()
	}
	return mo.Some(p.Context)
}

// EntryNames returns the entry names in declaration order.
func (p *ProjectConfig) EntryNames() []string {
	return lo.Map(p.Entries, func(e EntryConfig, _ int) string { return e.Name })
}

// Clone returns a deep copy of the plugin directive.
func (p PluginConfig) Clone() PluginConfig {
	return PluginConfig{Name: p.Name, Options: cloneOptions(p.Options)}
}

func cloneOptions(opts map[string]any) map[string]any {
	if opts == nil {
		return nil
	}
	out := make(map[string]any, len(opts))
	for k, v := range opts {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneOptions(val)
	case []any:
		return lo.Map(val, func(item any, _ int) any { return cloneValue(item) })
	case []string:
		return slices.Clone(val)
	case map[string]string:
		return maps.Clone(val)
	default:
		return v
	}
}

// ResolveOutput returns a copy whose file output, when relative, is taken from base.
// stdout, stderr and absolute paths are returned unchanged.
func (l LoggingConfig) ResolveOutput(base string) LoggingConfig {
	switch l.Output {
	case "", "stdout", "stderr":
		return l
	}
	if !filepath.IsAbs(l.Output) && base != "" {
		l.Output = filepath.Join(base, l.Output)
	}
	return l
}

// ParseLevel converts a string log level to zerolog.Level.
// Returns zerolog.InfoLevel if the level string is invalid.
func (l *LoggingConfig) ParseLevel() zerolog.Level {
	switch strings.ToLower(l.Level) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
