//go:build wireinject
// +build wireinject

package di

import (
	"ddp/internal"
	"ddp/internal/controllers"
	"ddp/internal/export"
	"ddp/internal/pipeline"
	"ddp/internal/providers"
	"ddp/internal/services"
	"ddp/internal/structures"

	wire "github.com/google/wire"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	export.NewZstdCompressor,
	export.NewFileManager,
	pipeline.NewDriver,
	pipeline.NewClassifier,
	services.NewDonationService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		providers.NewInstrumentedCacheProvider,

		export.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitToolkit(cfg *structures.CliFlags) (*Toolkit, error) {

	wire.Build(
		coreSet,
		wire.Struct(new(Toolkit), "*"),
	)

	return nil, nil
}
