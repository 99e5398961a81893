package config

// Package config provides structures and utilities for loading the
// application configuration from embedded YAML and environment variables.

// EmbeddedConfig holds the content of the configuration file, typically
// passed from main.go via go:embed.
type EmbeddedConfig []byte

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // Level is the minimum level emitted (DEBUG, INFO, WARN, ERROR, FATAL).
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	Timezone string        `yaml:"timezone"`
	Logging  LoggingConfig `yaml:"logging"`
}

// SourceConfig holds the settings of the batch source feeding the pipeline.
type SourceConfig struct {
	Path      string `yaml:"path"`       // Path is the input file read by the source.
	BatchSize int    `yaml:"batch_size"` // BatchSize is the maximum records per batch.
}

// PipelineConfig is the root of the pipeline configuration. Destination and
// ErrorSink are kept as raw maps and bound to their concrete stage
// configuration structs by the wiring layer, so this package stays agnostic
// of individual stage types.
type PipelineConfig struct {
	Name        string                 `yaml:"name"`
	System      SystemConfig           `yaml:"system"`
	Source      SourceConfig           `yaml:"source"`
	Destination map[string]interface{} `yaml:"destination"`
	ErrorSink   map[string]interface{} `yaml:"error_sink"`
}

// Config is the top-level application configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Name: "pipeline",
			System: SystemConfig{
				Timezone: "UTC",
				Logging:  LoggingConfig{Level: "INFO"},
			},
			Source: SourceConfig{BatchSize: 1000},
		},
	}
}
