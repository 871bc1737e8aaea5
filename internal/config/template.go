package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// defaultYAMLTemplate is written by `bundlecfg config init`. Loading it yields Default().
const defaultYAMLTemplate = `# bundlecfg settings
project:
  # context defaults to the directory holding this file.
  # context: .
  entries:
    - name: vendor
      modules: [react, react-dom]
    - name: entryA
      modules: [./src/entry-a.js]
  output:
    filename: "[name].[chunkhash:8].js"
    chunk_filename: "[name].[chunkhash:8].js"
    path: ./dist
    public_path: /dist
  plugins:
    # Listing runtime last moves the bundler runtime into its own chunk,
    # so the vendor hash only changes when vendor modules do.
    - name: CommonsChunkPlugin
      options:
        name: [vendor, runtime]
        minChunks: Infinity

records:
  job_env: JOB_NAME
  ci_dir: /jenkins/webpack.records/
  home_suffix: .webpack.records.json

logging:
  level: info
  output: stderr
`

// Template returns the default settings file in the requested format.
func Template(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return []byte(defaultYAMLTemplate), nil
	case FormatTOML:
		data, err := toml.Marshal(Default())
		if err != nil {
			return nil, fmt.Errorf("failed to render TOML template: %w", err)
		}
		return append([]byte("# bundlecfg settings\n"), data...), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}
