//go:build wireinject
// +build wireinject

package di

import (
	"KisanSense/pkg/config"
	"KisanSense/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideCache,

		// Repositories
		ProvidePriceStore,
		ProvidePublisher,
		ProvideMarketSource,

		// External services
		ProvideAdvisor,
		ProvideWeather,
		ProvideTranslator,

		// Intelligence
		ProvideEngine,

		// Use cases
		ProvideSyncProcessor,
		ProvidePriceSync,
		ProvideIngestPipeline,
		ProvideKafkaPricesHandler,
		ProvideRecommender,
		ProvideDashboard,

		// HTTP and scheduling
		ProvideHTTPHandler,
		ProvideScheduler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
