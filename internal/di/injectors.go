//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"pad/internal"
	"pad/internal/controllers"
	"pad/internal/providers"
	"pad/internal/report"
	"pad/internal/services"
	"pad/internal/structures"
	"pad/internal/tracking"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewQuartzClock,
		providers.NewClockProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		services.NewActivityService,
		tracking.NewZstdCompressor,
		tracking.NewFileManager,
		report.NewRenderer,
		tracking.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
