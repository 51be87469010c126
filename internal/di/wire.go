//go:build wireinject
// +build wireinject

package di

import (
	"github.com/ciphernom/rektcast/pkg/config"
	"github.com/ciphernom/rektcast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideTickStorage,
		ProvideTickPublisher,
		ProvidePriceStore,
		ProvideHeadlineStore,
		ProvideFinnhubStream,

		// Use cases
		ProvideTickProcessor,
		ProvideTickCollector,
		ProvideForecastOrchestrator,
		ProvideKafkaHandlers,

		// API and background services
		ProvideForecastHandler,
		ProvideNewsfeedPoller,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
