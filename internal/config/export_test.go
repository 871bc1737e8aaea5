package config

// DetectFormat exports detectFormat for testing.
var DetectFormat = detectFormat

// Test helpers with all fields initialized for exhaustruct compliance.

// MakeTestConfig returns a valid Config with every field set.
func MakeTestConfig() *Config {
	return &Config{
		BaseDir: "/work/app",
		Project: MakeTestProjectConfig(),
		Records: MakeTestRecordsConfig(),
		Logging: MakeTestLoggingConfig(),
	}
}

// MakeTestProjectConfig returns a ProjectConfig with every field set.
func MakeTestProjectConfig() ProjectConfig {
	return ProjectConfig{
		Context: "",
		Output: OutputConfig{
			Filename:      DefaultFilename,
			ChunkFilename: DefaultChunkFilename,
			Path:          DefaultOutputPath,
			PublicPath:    DefaultPublicPath,
		},
		Entries: DefaultEntries(),
		Plugins: DefaultPlugins(),
	}
}

// MakeTestRecordsConfig returns a RecordsConfig with the default locations.
func MakeTestRecordsConfig() RecordsConfig {
	return RecordsConfig{
		JobEnv:     "JOB_NAME",
		CIDir:      "/jenkins/webpack.records/",
		HomeSuffix: ".webpack.records.json",
	}
}

// MakeTestLoggingConfig returns a LoggingConfig with every field set.
func MakeTestLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  LevelInfo,
		Format: "json",
		Output: DefaultLogOutput,
		Pretty: false,
	}
}
