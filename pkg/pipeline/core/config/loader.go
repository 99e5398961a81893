package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go.uber.org/fx"

	"github.com/blank-1/datacollector/pkg/pipeline/support/util/exception"
	"github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
)

const moduleName = "config"

// ConfigParams defines the dependencies for NewConfigProvider.
type ConfigParams struct {
	fx.In
	EmbeddedConfig EmbeddedConfig // EmbeddedConfig contains the raw bytes of the configuration file.
	EnvFilePath    string         `name:"envFilePath" optional:"true"` // EnvFilePath is the path to the .env file, if any.
}

// loadConfig loads configuration from the embedded file and environment
// variables. Defaults are applied first, the YAML overrides them, and
// environment variables override both.
//
// Parameters:
//   envFilePath: The path to the .env file.
//   embeddedConfig: The embedded configuration bytes.
// Returns:
//   A pointer to the loaded Config and an error if loading fails.
func loadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Warnf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			logger.Debugf(".env file not found or could not be loaded: %v", err)
		}
	}

	cfg := NewConfig()

	expanded, err := NewOsEnvironmentExpander().Expand(embeddedConfig)
	if err != nil {
		return nil, exception.NewStageError(moduleName, "CONFIG_00", "failed to expand embedded config", err)
	}

	var yamlConfig Config
	if err := yaml.Unmarshal(expanded, &yamlConfig); err != nil {
		return nil, exception.NewStageError(moduleName, "CONFIG_00", "failed to unmarshal embedded config", err)
	}
	mergeConfig(cfg, &yamlConfig)

	if err := loadStructFromEnv(reflect.ValueOf(cfg).Elem(), ""); err != nil {
		return nil, exception.NewStageError(moduleName, "CONFIG_01", "failed to load config from environment variables", err)
	}
	return cfg, nil
}

// NewConfigProvider is an Fx provider that loads and provides *Config.
// It also sets the global logger level from the loaded configuration.
//
// Parameters:
//   params: ConfigParams containing the embedded config and env file path.
// Returns:
//   A pointer to the initialized Config and an error if loading fails.
func NewConfigProvider(params ConfigParams) (*Config, error) {
	cfg, err := loadConfig(params.EnvFilePath, params.EmbeddedConfig)
	if err != nil {
		return nil, err
	}

	logger.SetLogLevel(cfg.Pipeline.System.Logging.Level)
	logger.Infof("Log level set to: %s", cfg.Pipeline.System.Logging.Level)

	return cfg, nil
}

// LoadConfig loads configuration from the embedded file and environment
// variables. Exposed for callers outside the Fx graph (tests, tools).
func LoadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	return loadConfig(envFilePath, embeddedConfig)
}

// mergeConfig merges non-zero values of source into dest.
func mergeConfig(dest, source *Config) {
	if source.Pipeline.Name != "" {
		dest.Pipeline.Name = source.Pipeline.Name
	}
	if source.Pipeline.System.Timezone != "" {
		dest.Pipeline.System.Timezone = source.Pipeline.System.Timezone
	}
	if source.Pipeline.System.Logging.Level != "" {
		dest.Pipeline.System.Logging.Level = source.Pipeline.System.Logging.Level
	}
	if source.Pipeline.Source.Path != "" {
		dest.Pipeline.Source.Path = source.Pipeline.Source.Path
	}
	if source.Pipeline.Source.BatchSize != 0 {
		dest.Pipeline.Source.BatchSize = source.Pipeline.Source.BatchSize
	}
	if source.Pipeline.Destination != nil {
		dest.Pipeline.Destination = source.Pipeline.Destination
	}
	if source.Pipeline.ErrorSink != nil {
		dest.Pipeline.ErrorSink = source.Pipeline.ErrorSink
	}
}

// loadStructFromEnv recursively loads configuration values into a struct
// from environment variables, using the "yaml" tag for the variable name.
// Map-typed fields are left to the YAML layer.
//
// Parameters:
//   val: The reflect.Value of the struct to populate.
//   prefix: The prefix for environment variable names (e.g., "PIPELINE_").
func loadStructFromEnv(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		yamlTag := fieldType.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		envVarName := strings.ToUpper(prefix + yamlTag)

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field, envVarName+"_"); err != nil {
				return err
			}
			continue
		}

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			continue
		}
		if err := setField(field, envValue); err != nil {
			return fmt.Errorf("failed to set field '%s' from env var '%s': %w", fieldType.Name, envVarName, err)
		}
	}
	return nil
}

// setField sets the value of a reflect.Value field based on its kind.
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)
	case reflect.Float64, reflect.Float32:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolValue)
	}
	return nil
}
