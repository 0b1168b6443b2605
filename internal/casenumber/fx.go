package casenumber

import "go.uber.org/fx"

var Module = fx.Module("casenumber",
	fx.Provide(NewGormStore),
	fx.Provide(NewGormCaseLookup),
	fx.Provide(NewGormMetadata),
	fx.Provide(NewAllocator),
)
