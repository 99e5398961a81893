package collector

import (
	"go.uber.org/fx"
)

// Module is an Fx module that provides the default error record sink.
// Infrastructure-layer collectors (dead letter table, Kafka) take priority
// when provided.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewLoggingCollector,
		fx.As(new(ErrorCollector)),
		fx.ResultTags(`optional:"true"`),
	)),
)
