package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	_ "embed"

	"go.uber.org/fx"

	source "github.com/blank-1/datacollector/internal/source"
	logger "github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
	searchindex "github.com/blank-1/datacollector/pkg/stage/destination/searchindex"
)

// embeddedConfig holds the application's YAML configuration file.
//
//go:embed resources/application.yaml
var embeddedConfig []byte

// startPipeline is an Fx hook that runs the pipeline on application start:
// it initializes the destination, streams batches from the source into it
// and requests shutdown when the input is exhausted or a fatal error occurs.
func startPipeline(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	target *searchindex.Target,
	src *source.JSONLSource,
	appCtx context.Context,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Errorf("Panic recovered in pipeline execution: %v", r)
					}
					if err := shutdowner.Shutdown(); err != nil {
						logger.Errorf("Failed to shutdown application: %v", err)
					}
				}()
				if err := runPipeline(appCtx, target, src); err != nil {
					logger.Errorf("Pipeline failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Infof("Application is shutting down.")
			return target.Destroy()
		},
	})
}

// runPipeline drives batches from the source through the destination until
// the input is exhausted, the context is cancelled, or the stage raises a
// fatal error.
func runPipeline(ctx context.Context, target *searchindex.Target, src *source.JSONLSource) error {
	if err := target.Init(ctx); err != nil {
		return err
	}
	if err := src.Open(); err != nil {
		return err
	}
	defer src.Close()

	var batches, records int
	for {
		if err := ctx.Err(); err != nil {
			logger.Warnf("Pipeline cancelled after %d batch(es).", batches)
			return err
		}

		batch, err := src.NextBatch()
		if err != nil {
			return err
		}
		if batch == nil {
			break
		}

		if err := target.Write(ctx, batch); err != nil {
			return err
		}
		batches++
		records += batch.Len()
	}

	logger.Infof("Pipeline finished: %d batch(es), %d record(s).", batches, records)
	return nil
}

// main is the application entry point.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Warnf("Received signal '%v'. Stopping the pipeline...", sig)
		cancel()
	}()

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	fxApp := fx.New(GetApplicationOptions(ctx, envFilePath, embeddedConfig)...)
	fxApp.Run()
	if err := fxApp.Err(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Application run failed: %v", err)
	}
}
