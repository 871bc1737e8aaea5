// Package descriptor builds the configuration value handed to the external bundler.
//
// A Descriptor is assembled once per invocation from settings and an environment
// view and is read-only afterwards: every accessor returns a copy.
package descriptor

import (
	"slices"

	"github.com/samber/lo"

	"github.com/omarluq/bundlecfg/internal/config"
)

// Entry is a named entry point and the module specifiers it starts from.
type Entry struct {
	Name    string
	Modules []string
}

// Output holds the bundler's output naming. Filename patterns are opaque.
type Output struct {
	Filename      string
	ChunkFilename string
	Path          string
	PublicPath    string
}

// Directive is an opaque plugin configuration record.
type Directive struct {
	Options map[string]any
	Plugin  string
}

// Descriptor is the complete bundler configuration.
type Descriptor struct {
	context     string
	recordsPath string
	output      Output
	entries     []Entry
	plugins     []Directive
}

// Context returns the directory the bundler resolves entries from.
func (d *Descriptor) Context() string { return d.context }

// RecordsPath returns the absolute path of the bundler's records file.
func (d *Descriptor) RecordsPath() string { return d.recordsPath }

// Output returns the output naming.
func (d *Descriptor) Output() Output { return d.output }

// Entries returns the entry points in declaration order.
func (d *Descriptor) Entries() []Entry {
	return lo.Map(d.entries, func(e Entry, _ int) Entry { return e.clone() })
}

// Plugins returns the plugin directives in declaration order.
func (d *Descriptor) Plugins() []Directive {
	return lo.Map(d.plugins, func(p Directive, _ int) Directive { return p.clone() })
}

func (e Entry) clone() Entry {
	return Entry{Name: e.Name, Modules: slices.Clone(e.Modules)}
}

func (p Directive) clone() Directive {
	c := config.PluginConfig{Name: p.Plugin, Options: p.Options}.Clone()
	return Directive{Plugin: c.Name, Options: c.Options}
}

func entriesFrom(cfgs []config.EntryConfig) []Entry {
	return lo.Map(cfgs, func(e config.EntryConfig, _ int) Entry {
		return Entry{Name: e.Name, Modules: slices.Clone(e.Modules)}
	})
}

func directivesFrom(cfgs []config.PluginConfig) []Directive {
	return lo.Map(cfgs, func(p config.PluginConfig, _ int) Directive {
		c := p.Clone()
		return Directive{Plugin: c.Name, Options: c.Options}
	})
}
