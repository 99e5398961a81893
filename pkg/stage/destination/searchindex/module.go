package searchindex

import (
	"go.uber.org/fx"
)

// Module is an Fx module that provides the search index destination stage
// and its index client, built from the stage configuration.
var Module = fx.Options(
	fx.Provide(NewIndexClient),
	fx.Provide(NewTarget),
)
