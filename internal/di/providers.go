package di

import (
	"context"
	"fmt"
	"time"

	"KisanSense/internal/domain/repository"
	dservice "KisanSense/internal/domain/service"
	"KisanSense/internal/handler/api"
	"KisanSense/internal/intelligence"
	mid "KisanSense/internal/middleware"
	internalrepo "KisanSense/internal/repository"
	"KisanSense/internal/scheduler"
	"KisanSense/internal/services/advisory"
	"KisanSense/internal/services/agmarknet"
	"KisanSense/internal/services/translate"
	"KisanSense/internal/services/weather"
	"KisanSense/internal/usecase"
	"KisanSense/pkg/cache"
	pkgch "KisanSense/pkg/clickhouse"
	"KisanSense/pkg/config"
	xhttp "KisanSense/pkg/http"
	pkgkafka "KisanSense/pkg/kafka"
	"KisanSense/pkg/logger"
	"KisanSense/pkg/metrics"
	"KisanSense/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates the ClickHouse client and ensures the
// database exists.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvidePriceStore creates the ClickHouse price store and its table.
func ProvidePriceStore(chClient *pkgch.Client, cfg *config.Config) (repository.PriceStore, error) {
	table := cfg.ClickHouse.Table
	if table == "" {
		table = cfg.ClickHouse.Database + ".mandi_prices"
	}
	store := internalrepo.NewClickHousePriceStore(chClient.DB(), table)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ProvideKafkaProducer creates a producer when the kafka backend is
// selected; otherwise nil.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatch(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the Kafka price publisher when a producer
// exists.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPricePublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates the consumer for the kafka backend;
// otherwise nil.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
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

// ProvideCache creates a Redis-backed cache when enabled, otherwise an
// in-process cache.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	redisCache, err := cache.NewRedisCache(ctx,
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideMarketSource creates the AGMARKNET client.
func ProvideMarketSource(cfg *config.Config) repository.MarketSource {
	return agmarknet.NewClient(
		agmarknet.WithBaseURL(cfg.Agmarknet.BaseURL),
		agmarknet.WithResourceID(cfg.Agmarknet.ResourceID),
		agmarknet.WithAPIKey(cfg.Agmarknet.APIKey),
		agmarknet.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(cfg.Agmarknet.Timeout))),
	)
}

// ProvideAdvisor creates the advisory client when credentials are
// configured; otherwise nil and the engine stays rule-based.
func ProvideAdvisor(cfg *config.Config) dservice.Advisor {
	if !cfg.AdvisoryConfigured() {
		return nil
	}
	return advisory.NewClient(
		advisory.WithBaseURL(cfg.Advisory.BaseURL),
		advisory.WithModel(cfg.Advisory.Model),
		advisory.WithAPIKey(cfg.Advisory.APIKey),
		advisory.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(cfg.Advisory.Timeout))),
	)
}

// ProvideWeather creates the weather client when configured.
func ProvideWeather(cfg *config.Config) dservice.WeatherProvider {
	if !cfg.WeatherConfigured() {
		return nil
	}
	return weather.NewClient(
		weather.WithBaseURL(cfg.Weather.BaseURL),
		weather.WithAPIKey(cfg.Weather.APIKey),
		weather.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(cfg.Weather.Timeout))),
	)
}

// ProvideTranslator creates the translator with its result cache.
func ProvideTranslator(cfg *config.Config, c cache.Service, log *logger.Logger) dservice.Translator {
	return translate.New(
		translate.WithBaseURL(cfg.Translator.BaseURL),
		translate.WithCache(c),
		translate.WithRetries(cfg.Translator.Retries, cfg.Translator.RetryDelay),
		translate.WithCallTimeout(cfg.Translator.CallTimeout),
		translate.WithCacheTTL(cfg.Translator.CacheTTL),
		translate.WithLogger(log),
	)
}

// ProvideEngine creates the recommendation engine.
func ProvideEngine(advisor dservice.Advisor, m repository.Metrics, log *logger.Logger, cfg *config.Config) *intelligence.Engine {
	return intelligence.NewEngine(
		intelligence.WithAdvisor(advisor),
		intelligence.WithAdvisoryTimeout(cfg.Advisory.Timeout),
		intelligence.WithLogger(log),
		intelligence.WithMetrics(m),
	)
}

// ProvideRecommender creates the recommendation use case.
func ProvideRecommender(
	store repository.PriceStore,
	engine *intelligence.Engine,
	w dservice.WeatherProvider,
	t dservice.Translator,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.Recommender {
	return usecase.NewRecommender(store, engine,
		usecase.WithRecommenderWeather(w),
		usecase.WithRecommenderTranslator(t),
		usecase.WithRecommenderHistoryDays(cfg.Intelligence.HistoryDays),
		usecase.WithRecommenderLogger(log),
	)
}

// ProvideDashboard creates the dashboard use case.
func ProvideDashboard(store repository.PriceStore, engine *intelligence.Engine, c cache.Service, cfg *config.Config) *usecase.Dashboard {
	return usecase.NewDashboard(store, engine, c, cfg.Intelligence.DashboardCacheTTL)
}

// ProvideSyncProcessor creates the processor used by the scheduled and
// manual syncs, routed by the configured backend.
func ProvideSyncProcessor(pub repository.Publisher, store repository.PriceStore, m repository.Metrics, cfg *config.Config) *usecase.PriceProcessor {
	return usecase.NewPriceProcessor(pub, store, m, cfg.Backend.Type)
}

// ProvidePriceSync creates the sync use case.
func ProvidePriceSync(source repository.MarketSource, processor *usecase.PriceProcessor, m repository.Metrics, log *logger.Logger, cfg *config.Config) *usecase.PriceSync {
	return usecase.NewPriceSync(source, processor, m, log, cfg.Agmarknet.PageLimit)
}

// ProvideIngestPipeline creates the consume-side pipeline: validation
// plus retry buffering in front of a ClickHouse-backed processor. Nil
// when the kafka backend is not in use.
func ProvideIngestPipeline(store repository.PriceStore, m repository.Metrics, cfg *config.Config) *mid.IngestPipeline {
	if cfg.Backend.Type != "kafka" {
		return nil
	}
	storeProc := usecase.NewPriceProcessor(nil, store, m, "clickhouse")
	return mid.NewIngestPipeline(storeProc, m, mid.WithBufferSize(2000))
}

// ProvideKafkaPricesHandler creates the consumer handler when the
// pipeline exists.
func ProvideKafkaPricesHandler(pipeline *mid.IngestPipeline, m repository.Metrics, cfg *config.Config) pkgkafka.MessageHandler {
	if pipeline == nil {
		return nil
	}
	return usecase.NewKafkaPricesHandler(cfg.Kafka.Topic, pipeline, m)
}

// ProvideScheduler creates the cron-driven sync scheduler.
func ProvideScheduler(sync *usecase.PriceSync, log *logger.Logger, cfg *config.Config) *scheduler.Scheduler {
	spec := cfg.Sync.Schedule
	if spec == "" {
		spec = "0 6 * * *" // daily, after mandis report morning prices
	}
	return scheduler.New(sync, log, spec, cfg.Sync.OnBoot)
}

// ProvideHTTPHandler creates the API handler.
func ProvideHTTPHandler(
	log *logger.Logger,
	dashboard *usecase.Dashboard,
	recommender *usecase.Recommender,
	w dservice.WeatherProvider,
	t dservice.Translator,
	sync *usecase.PriceSync,
) xhttp.Handler {
	return api.NewMarketHandler(log, dashboard, recommender, w, t, sync)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	sched *scheduler.Scheduler,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	pipeline *mid.IngestPipeline,
	chClient *pkgch.Client,
	pub repository.Publisher,
) *server.App {
	app := server.New(cfg, log, handler, sched, consumer, kh, pipeline, chClient)
	if pub != nil {
		app.AddCloser(pub.Close)
	}
	return app
}
