package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/omarluq/bundlecfg/internal/environ"
)

// Format is a settings file syntax.
type Format string

// Supported settings formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DefaultFileNames are searched in the working directory, in order, when no
// settings path is given.
var DefaultFileNames = []string{"bundlecfg.yaml", "bundlecfg.yml", "bundlecfg.toml"}

// detectFormat picks the settings syntax from the file extension.
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Load reads and parses a settings file from the given path.
// Environment variables in the format ${VAR_NAME} are expanded from env before
// parsing. A relative path is taken from env's working directory. BaseDir is set
// to the file's directory and defaults are applied.
func Load(path string, env environ.View) (cfg *Config, err error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	if !filepath.IsAbs(path) {
		wd, err := env.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
		}
		path = filepath.Join(wd, path)
	}
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", cerr)
		}
	}()

	cfg, err = LoadFromReader(file, format, env)
	if err != nil {
		return nil, err
	}

	cfg.BaseDir = filepath.Dir(path)

	return cfg, nil
}

// LoadFromReader reads and parses settings in the given format from an io.Reader.
// Environment variables in the format ${VAR_NAME} are expanded before parsing.
// BaseDir is left empty.
func LoadFromReader(r io.Reader, format Format, env environ.View) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := []byte(environ.Expand(env, string(content)))

	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(expanded))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Discover returns the first default settings file present in the working
// directory. The second result is false when none exists.
func Discover(env environ.View) (string, bool, error) {
	wd, err := env.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("failed to get working directory: %w", err)
	}

	for _, name := range DefaultFileNames {
		candidate := filepath.Join(wd, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		}
	}

	return "", false, nil
}

// Resolve loads the settings at path, or discovers them when path is empty.
// Without any settings file the defaults are returned with BaseDir set to the
// working directory. The returned path is empty in that case.
func Resolve(path string, env environ.View) (*Config, string, error) {
	if path == "" {
		found, ok, err := Discover(env)
		if err != nil {
			return nil, "", err
		}
		if !ok {
			wd, err := env.Getwd()
			if err != nil {
				return nil, "", fmt.Errorf("failed to get working directory: %w", err)
			}
			cfg := Default()
			cfg.BaseDir = wd
			return cfg, "", nil
		}
		path = found
	}

	cfg, err := Load(path, env)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
