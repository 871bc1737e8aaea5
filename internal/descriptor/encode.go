package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/omarluq/bundlecfg/internal/config"
)

// Format is an output encoding for descriptors.
type Format string

// Supported descriptor encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !lo.Contains(Formats, f) {
		return "", fmt.Errorf("unsupported descriptor format %q (want json, yaml or toml)", s)
	}
	return f, nil
}

// Top-level keys, in emission order. These names are what the bundler reads.
const (
	keyContext     = "context"
	keyEntry       = "entry"
	keyOutput      = "output"
	keyRecordsPath = "recordsPath"
	keyPlugins     = "plugins"
)

// Encode renders d in the given format.
func Encode(d *Descriptor, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return encodeJSON(d)
	case FormatYAML:
		return encodeYAML(d)
	case FormatTOML:
		return encodeTOML(d)
	default:
		return nil, fmt.Errorf("unsupported descriptor format %q", format)
	}
}

// entryValue is a single specifier for one-module entries and a list otherwise,
// the two shapes the bundler accepts.
func entryValue(e Entry) any {
	if len(e.Modules) == 1 {
		return e.Modules[0]
	}
	return e.Modules
}

type directiveDoc struct {
	Plugin  string         `json:"plugin" yaml:"plugin" toml:"plugin"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

func directiveDocs(ds []Directive) []directiveDoc {
	return lo.Map(ds, func(d Directive, _ int) directiveDoc {
		return directiveDoc{Plugin: d.Plugin, Options: d.Options}
	})
}

func encodeJSON(d *Descriptor) ([]byte, error) {
	plugins, err := json.Marshal(jsonSafe(directiveDocs(d.plugins)))
	if err != nil {
		return nil, fmt.Errorf("failed to encode plugin directives: %w", err)
	}

	w := &jsonWriter{doc: []byte(`{}`)}
	w.set(keyContext, d.context)
	w.setRaw(keyEntry, `{}`)
	for _, e := range d.entries {
		w.set(keyEntry+"."+escapeKey(e.Name), entryValue(e))
	}
	w.set(keyOutput+".filename", d.output.Filename)
	w.set(keyOutput+".chunkFilename", d.output.ChunkFilename)
	w.set(keyOutput+".path", d.output.Path)
	w.set(keyOutput+".publicPath", d.output.PublicPath)
	w.set(keyRecordsPath, d.recordsPath)
	w.setRaw(keyPlugins, string(plugins))
	if w.err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", w.err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, w.doc, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent descriptor: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// jsonWriter appends keys in call order and keeps the first error.
type jsonWriter struct {
	err error
	doc []byte
}

func (w *jsonWriter) set(path string, value any) {
	if w.err == nil {
		w.doc, w.err = sjson.SetBytes(w.doc, path, value)
	}
}

func (w *jsonWriter) setRaw(path, raw string) {
	if w.err == nil {
		w.doc, w.err = sjson.SetRawBytes(w.doc, path, []byte(raw))
	}
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
	`*`, `\*`,
	`?`, `\?`,
	`:`, `\:`,
)

// escapeKey makes an entry name usable as a single sjson path component.
func escapeKey(key string) string {
	return pathEscaper.Replace(key)
}

// jsonSafe replaces non-finite floats, which JSON cannot represent, with their
// JavaScript spellings. Everything else is returned unchanged.
func jsonSafe(docs []directiveDoc) []directiveDoc {
	return lo.Map(docs, func(doc directiveDoc, _ int) directiveDoc {
		if doc.Options == nil {
			return doc
		}
		opts := make(map[string]any, len(doc.Options))
		for k, v := range doc.Options {
			opts[k] = finite(v)
		}
		return directiveDoc{Plugin: doc.Plugin, Options: opts}
	})
}

func finite(v any) any {
	switch val := v.(type) {
	case float64:
		switch {
		case math.IsInf(val, 1):
			return config.Infinity
		case math.IsInf(val, -1):
			return "-" + config.Infinity
		case math.IsNaN(val):
			return "NaN"
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = finite(item)
		}
		return out
	case []any:
		return lo.Map(val, func(item any, _ int) any { return finite(item) })
	default:
		return v
	}
}

func encodeYAML(d *Descriptor) ([]byte, error) {
	entries := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range d.entries {
		value := &yaml.Node{}
		if err := value.Encode(entryValue(e)); err != nil {
			return nil, fmt.Errorf("failed to encode entry %s: %w", e.Name, err)
		}
		entries.Content = append(entries.Content, scalar(e.Name), value)
	}

	output := mapping(
		"filename", scalar(d.output.Filename),
		"chunkFilename", scalar(d.output.ChunkFilename),
		"path", scalar(d.output.Path),
		"publicPath", scalar(d.output.PublicPath),
	)

	plugins := &yaml.Node{}
	if err := plugins.Encode(directiveDocs(d.plugins)); err != nil {
		return nil, fmt.Errorf("failed to encode plugin directives: %w", err)
	}

	root := mapping(
		keyContext, scalar(d.context),
		keyEntry, entries,
		keyOutput, output,
		keyRecordsPath, scalar(d.recordsPath),
		keyPlugins, plugins,
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode descriptor YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode descriptor YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// mapping builds an ordered mapping node from alternating key, value arguments.
func mapping(pairs ...any) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		value, _ := pairs[i+1].(*yaml.Node)
		node.Content = append(node.Content, scalar(key), value)
	}
	return node
}

type tomlOutput struct {
	Filename      string `toml:"filename"`
	ChunkFilename string `toml:"chunkFilename"`
	Path          string `toml:"path"`
	PublicPath    string `toml:"publicPath"`
}

type tomlDoc struct {
	Entry       map[string]any `toml:"entry"`
	Context     string         `toml:"context"`
	RecordsPath string         `toml:"recordsPath"`
	Output      tomlOutput     `toml:"output"`
	Plugins     []directiveDoc `toml:"plugins"`
}

// encodeTOML renders d as TOML. Entry order follows TOML table key order,
// which go-toml sorts.
func encodeTOML(d *Descriptor) ([]byte, error) {
	doc := tomlDoc{
		Context: d.context,
		Entry: lo.SliceToMap(d.entries, func(e Entry) (string, any) {
			return e.Name, entryValue(e)
		}),
		Output: tomlOutput{
			Filename:      d.output.Filename,
			ChunkFilename: d.output.ChunkFilename,
			Path:          d.output.Path,
			PublicPath:    d.output.PublicPath,
		},
		RecordsPath: d.recordsPath,
		Plugins:     directiveDocs(d.plugins),
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode descriptor TOML: %w", err)
	}
	return data, nil
}
