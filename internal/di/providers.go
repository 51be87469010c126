package di

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/repository"
	"github.com/ciphernom/rektcast/internal/handler/api"
	mid "github.com/ciphernom/rektcast/internal/middleware"
	internalrepo "github.com/ciphernom/rektcast/internal/repository"
	"github.com/ciphernom/rektcast/internal/service/finnhub"
	"github.com/ciphernom/rektcast/internal/service/newsfeed"
	"github.com/ciphernom/rektcast/internal/services/markov"
	"github.com/ciphernom/rektcast/internal/services/sentiment"
	"github.com/ciphernom/rektcast/internal/usecase"
	pkgcache "github.com/ciphernom/rektcast/pkg/cache"
	pkgch "github.com/ciphernom/rektcast/pkg/clickhouse"
	"github.com/ciphernom/rektcast/pkg/config"
	pkgkafka "github.com/ciphernom/rektcast/pkg/kafka"
	applogger "github.com/ciphernom/rektcast/pkg/logger"
	"github.com/ciphernom/rektcast/pkg/metrics"
	"github.com/ciphernom/rektcast/pkg/queue"
	"github.com/ciphernom/rektcast/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) *applogger.Logger {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	l, err := applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
	if err != nil {
		l, _ = applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	}
	return l
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS rektcast",
		`CREATE TABLE IF NOT EXISTS rektcast.btc_ticks (
            ts DateTime64(3), symbol String, price Float64, volume Float64,
            source String, event_id String, seq UInt64
        ) ENGINE=MergeTree ORDER BY (symbol, ts)`,
		`CREATE TABLE IF NOT EXISTS rektcast.btc_daily (
            day Date, price Float64, mvrv Float64, nvt Float64,
            active_addrs Float64, supply_active Float64, has_onchain UInt8
        ) ENGINE=ReplacingMergeTree ORDER BY day`,
		`CREATE TABLE IF NOT EXISTS rektcast.headlines (
            ts DateTime, title String, source String, url String
        ) ENGINE=MergeTree ORDER BY ts`,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideTickStorage creates ClickHouse tick storage.
func ProvideTickStorage(chClient *pkgch.Client, cfg *config.Config) repository.TickStorage {
	return internalrepo.NewClickHouseTickStorage(chClient.DB(), cfg.ClickHouse.Database+".btc_ticks")
}

// ProvideTickPublisher creates the Kafka tick publisher.
func ProvideTickPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvidePriceStore creates the daily price history store. A configured
// history CSV takes precedence for offline runs and backtests.
func ProvidePriceStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.PriceStore {
	if cfg.Model.HistoryCSV != "" {
		if store, err := internalrepo.NewCSVPriceStore(cfg.Model.HistoryCSV); err == nil {
			l.Info("price history loaded from csv", applogger.String("path", cfg.Model.HistoryCSV))
			return store
		} else {
			l.Warn("history csv unreadable, falling back to clickhouse", applogger.Error(err))
		}
	}
	store := internalrepo.NewCHPriceStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideHeadlineStore creates the headline store.
func ProvideHeadlineStore(chClient *pkgch.Client) repository.HeadlineStore {
	return internalrepo.NewCHHeadlineStore(chClient)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaHandlers builds the message handlers for consumed topics.
func ProvideKafkaHandlers(
	store repository.TickStorage,
	headlines repository.HeadlineStore,
	m repository.Metrics,
	cfg *config.Config,
) []pkgkafka.MessageHandler {
	handlers := []pkgkafka.MessageHandler{
		usecase.NewKafkaTicksHandler(cfg.Kafka.Topic, store, m),
	}
	if cfg.Kafka.HeadlinesTopic != "" {
		handlers = append(handlers, usecase.NewKafkaHeadlinesHandler(cfg.Kafka.HeadlinesTopic, headlines, m))
	}
	return handlers
}

// ProvideFinnhubStream creates the Finnhub WebSocket stream.
func ProvideFinnhubStream(cfg *config.Config) repository.MarketStream {
	return finnhub.New(
		cfg.Finnhub.APIKey,
		cfg.Finnhub.WebSocketURL,
		cfg.Finnhub.Symbols,
		cfg.Finnhub.ReconnectDelay,
		cfg.Finnhub.PingInterval,
	)
}

// ProvideTickProcessor creates the tick processor use case.
func ProvideTickProcessor(
	pub repository.Publisher,
	store repository.TickStorage,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.TickProcessor {
	return usecase.NewTickProcessor(
		pub,
		store,
		m,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideTickCollector creates the tick collector use case.
func ProvideTickCollector(
	stream repository.MarketStream,
	processor *usecase.TickProcessor,
	m repository.Metrics,
) *usecase.TickCollector {
	pipe := mid.NewRealtimePipeline(processor, m,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewTickCollector(stream, processor, m, pipe)
}

// ProvideForecastOrchestrator wires the trained models over the stores.
func ProvideForecastOrchestrator(
	prices repository.PriceStore,
	headlines repository.HeadlineStore,
	m repository.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.ForecastOrchestrator {
	mcfg := markov.DefaultConfig()
	if cfg.Model.Seed != 0 {
		mcfg.Seed = cfg.Model.Seed
	}
	if cfg.Model.DefaultPaths > 0 {
		mcfg.DefaultPaths = cfg.Model.DefaultPaths
	}
	if cfg.Model.MaxPaths > 0 {
		mcfg.MaxPaths = cfg.Model.MaxPaths
	}

	scfg := sentiment.DefaultConfig()
	if cfg.Model.Seed != 0 {
		scfg.Seed = cfg.Model.Seed
	}

	orch := usecase.NewForecastOrchestrator(prices, headlines, m, mcfg, scfg, cfg.Model.RetrainTTL, l)
	if cfg.Model.LookbackDays > 0 {
		orch.SetTrainLookback(cfg.Model.LookbackDays)
	}
	return orch
}

// ProvideForecastHandler creates the Echo HTTP handler for the API surface.
func ProvideForecastHandler(
	orch *usecase.ForecastOrchestrator,
	prices repository.PriceStore,
	cfg *config.Config,
	l *applogger.Logger,
) *api.ForecastEchoHandler {
	h := api.NewForecastEchoHandler(l, orch, orch, orch, orch, usecase.NewHistoryUseCase(prices))
	h.SetCache(provideResponseCache(cfg, l))
	return h
}

func provideResponseCache(cfg *config.Config, l *applogger.Logger) pkgcache.Service {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache()
	}
	host, port := splitAddr(cfg.Redis.Addr)
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		l.Warn("redis cache unavailable, using memory cache", applogger.Error(err))
		return pkgcache.NewMemoryCache()
	}
	return pkgcache.NewLayeredCache(rc)
}

func splitAddr(addr string) (string, int) {
	host, portStr, found := strings.Cut(addr, ":")
	if !found {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 6379
	}
	return host, port
}

// ProvideNewsfeedPoller creates the headline poller when configured.
func ProvideNewsfeedPoller(headlines repository.HeadlineStore, cfg *config.Config, l *applogger.Logger) *newsfeed.Poller {
	if cfg.Newsfeed.URL == "" {
		return nil
	}
	return newsfeed.NewPoller(newsfeed.Config{
		URL:      cfg.Newsfeed.URL,
		APIKey:   cfg.Newsfeed.APIKey,
		Query:    cfg.Newsfeed.Query,
		Interval: cfg.Newsfeed.Interval,
		PageSize: cfg.Newsfeed.PageSize,
	}, headlines, l)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	handlers []pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	orch *usecase.ForecastOrchestrator,
	handler *api.ForecastEchoHandler,
	poller *newsfeed.Poller,
	l *applogger.Logger,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	app := server.New(cfg, collector, consumer, handlers, chClient)
	app.SetHTTPHandler(handler)
	if collector != nil {
		app.TickProc = collector.Processor()
	}
	if poller != nil {
		app.SetNewsfeedPoller(poller)
	}
	wireRetrainQueue(app, orch, cfg, l)
	return app
}

// wireRetrainQueue attaches the Redis retrain queue when Redis is enabled.
func wireRetrainQueue(app *server.App, orch *usecase.ForecastOrchestrator, cfg *config.Config, l *applogger.Logger) {
	if !cfg.Redis.Enabled {
		return
	}
	host, port := splitAddr(cfg.Redis.Addr)
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		l.Warn("redis unavailable, retrain queue disabled", applogger.Error(err))
		return
	}

	qcfg := &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}
	jobs := []queue.Job{usecase.NewRetrainJob(orch, l)}
	consumer := queue.NewRedisConsumer(l, qcfg, rc.Client(), jobs)
	app.SetJobQueue(consumer)

	publisher := queue.NewRedisPublisher(l, rc.Client())
	app.SetRetrainScheduler(usecase.NewRetrainScheduler(publisher, cfg.Queue.RetrainInterval, l))
}
