package main

import (
	"context"

	"go.uber.org/fx"

	source "github.com/blank-1/datacollector/internal/source"
	collector "github.com/blank-1/datacollector/pkg/pipeline/core/collector"
	config "github.com/blank-1/datacollector/pkg/pipeline/core/config"
	deadletter "github.com/blank-1/datacollector/pkg/pipeline/infrastructure/collector/deadletter"
	kafka "github.com/blank-1/datacollector/pkg/pipeline/infrastructure/collector/kafka"
	inframetrics "github.com/blank-1/datacollector/pkg/pipeline/infrastructure/metrics"
	configbinder "github.com/blank-1/datacollector/pkg/pipeline/support/util/configbinder"
	logger "github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
	searchindex "github.com/blank-1/datacollector/pkg/stage/destination/searchindex"
)

// newDestinationConfig binds the raw destination section of the pipeline
// configuration onto the search index stage configuration.
func newDestinationConfig(cfg *config.Config) (searchindex.Config, error) {
	var dc searchindex.Config
	if err := configbinder.BindProperties(cfg.Pipeline.Destination, &dc); err != nil {
		return searchindex.Config{}, err
	}
	dc.ApplyDefaults()
	return dc, nil
}

// newErrorCollector selects the error record sink from configuration.
// Supported types are "deadletter", "kafka" and the default "log".
func newErrorCollector(ctx context.Context, cfg *config.Config) (collector.ErrorCollector, error) {
	sink := cfg.Pipeline.ErrorSink
	sinkType, _ := sink["type"].(string)

	switch sinkType {
	case "deadletter":
		var dlc deadletter.Config
		if err := configbinder.BindProperties(subSection(sink, "deadletter"), &dlc); err != nil {
			return nil, err
		}
		return deadletter.New(dlc)
	case "kafka":
		var kc kafka.Config
		if err := configbinder.BindProperties(subSection(sink, "kafka"), &kc); err != nil {
			return nil, err
		}
		return kafka.New(ctx, kc)
	default:
		return collector.NewLoggingCollector(), nil
	}
}

// subSection extracts a nested configuration map, tolerating the
// map[interface{}]interface{} shape older YAML decoders produce.
func subSection(section map[string]interface{}, key string) map[string]interface{} {
	switch sub := section[key].(type) {
	case map[string]interface{}:
		return sub
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(sub))
		for k, v := range sub {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}
		return out
	default:
		return map[string]interface{}{}
	}
}

// newSource builds the batch source feeding the destination stage.
func newSource(cfg *config.Config) *source.JSONLSource {
	return source.New(cfg.Pipeline.Source)
}

// GetApplicationOptions builds the uber-fx options for the application.
func GetApplicationOptions(appCtx context.Context, envFilePath string, embeddedConfig config.EmbeddedConfig) []fx.Option {
	cfg, err := config.LoadConfig(envFilePath, embeddedConfig)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetLogLevel(cfg.Pipeline.System.Logging.Level)
	logger.Infof("Log level set to: %s", cfg.Pipeline.System.Logging.Level)

	var options []fx.Option

	options = append(options, fx.Supply(
		embeddedConfig,
		fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
		fx.Annotate(appCtx, fx.As(new(context.Context))),
	))
	options = append(options, logger.Module)
	options = append(options, config.Module)
	options = append(options, inframetrics.Module)
	options = append(options, fx.Provide(newDestinationConfig))
	options = append(options, fx.Provide(newErrorCollector))
	options = append(options, fx.Provide(newSource))
	options = append(options, searchindex.Module)
	options = append(options, fx.Invoke(startPipeline))

	return options
}
