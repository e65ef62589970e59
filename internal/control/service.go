package control

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/walletlabs/zscore/internal/core/config"
	"github.com/walletlabs/zscore/internal/health"
	"github.com/walletlabs/zscore/internal/infra/kafka"
	redisclient "github.com/walletlabs/zscore/internal/infra/redis"
	"github.com/walletlabs/zscore/internal/infra/storage"
	"github.com/walletlabs/zscore/internal/infra/storage/postgres"
	"github.com/walletlabs/zscore/internal/processing"
	"github.com/walletlabs/zscore/internal/scoring"
)

// Service is the main application struct that owns the stream loop, the
// HTTP surface and the backing stores, and manages their lifecycle.
type Service struct {
	cfg          *config.AppConfig
	worker       *processing.Worker
	consumer     *kafka.Consumer
	publisher    *kafka.Publisher
	kafkaClient  *kafka.Client
	healthServer *health.Server
	db           *postgres.DB
	tokenCache   *redisclient.TokenCache
	log          *slog.Logger
}

// NewService creates a Service with all dependencies initialized. Any
// connection failure here is fatal; the process should not come up half
// wired.
func NewService(ctx context.Context, cfg *config.AppConfig) (*Service, error) {
	log := slog.Default()

	// 1. Metadata store
	var db *postgres.DB
	var tokens storage.TokenRepository
	var thresholds storage.ThresholdRepository
	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}
		if err := db.Migrate("migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}
		tokens = postgres.NewTokenRepo(db)
		thresholds = postgres.NewThresholdRepo(db)
		log.Info("Using PostgreSQL metadata store")
	} else {
		log.Warn("No database configured, metadata lookups disabled")
	}

	// 2. Token cache in front of the store
	var tokenCache *redisclient.TokenCache
	if cfg.Redis.URL != "" && tokens != nil {
		var err error
		tokenCache, err = redisclient.NewTokenCache(cfg.Redis, tokens, log)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		tokens = tokenCache
		log.Info("Token cache enabled")
	}

	// 3. Kafka client shared by the consumer and the producer
	kafkaClient, err := kafka.NewClient(cfg.Kafka)
	if err != nil {
		return nil, fmt.Errorf("failed to init kafka client: %w", err)
	}
	consumer, err := kafka.NewConsumer(kafkaClient, cfg.Kafka, log)
	if err != nil {
		kafkaClient.Close()
		return nil, fmt.Errorf("failed to init consumer: %w", err)
	}
	publisher, err := kafka.NewPublisher(kafkaClient, cfg.Kafka)
	if err != nil {
		consumer.Close()
		kafkaClient.Close()
		return nil, fmt.Errorf("failed to init publisher: %w", err)
	}

	// 4. Scoring pipeline
	model := scoring.NewModel()
	processor := processing.NewProcessor(model, log)
	stats := processing.NewRunningStats()
	worker := processing.NewWorker(processor, publisher, stats, log)

	// 5. HTTP surface
	checks := health.Checks{
		Kafka: kafkaClient.Healthy,
	}
	if db != nil {
		checks.Database = db.Health
	}
	if tokenCache != nil {
		checks.Cache = tokenCache.Health
	}
	healthServer := health.NewServer(cfg, stats, processor, checks, health.Metadata{
		Tokens:     tokens,
		Thresholds: thresholds,
	})

	return &Service{
		cfg:          cfg,
		worker:       worker,
		consumer:     consumer,
		publisher:    publisher,
		kafkaClient:  kafkaClient,
		healthServer: healthServer,
		db:           db,
		tokenCache:   tokenCache,
		log:          log,
	}, nil
}

// Start starts the HTTP server and the consume loop. It returns once both
// are running; the loop itself exits when ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	go func() {
		s.log.Info("HTTP server listening", "port", s.cfg.Server.Port)
		if err := s.healthServer.Start(); err != nil {
			s.log.Error("HTTP server failed", "error", err)
		}
	}()

	go func() {
		s.log.Info("Consuming wallet transactions",
			"topic", s.cfg.Kafka.InputTopic,
			"group", s.cfg.Kafka.ConsumerGroup)
		if err := s.consumer.Run(ctx, s.worker.Handle); err != nil {
			s.log.Error("Consumer loop failed", "error", err)
		}
	}()

	return nil
}

// Stop shuts the service down: the consumer stops taking messages, the
// producer flushes, then the stores and the HTTP server close.
func (s *Service) Stop(ctx context.Context) error {
	s.log.Info("Stopping service...")

	if err := s.consumer.Close(); err != nil {
		s.log.Warn("Failed to close consumer", "error", err)
	}
	if err := s.publisher.Close(); err != nil {
		s.log.Warn("Failed to close publisher", "error", err)
	}
	if err := s.kafkaClient.Close(); err != nil {
		s.log.Warn("Failed to close kafka client", "error", err)
	}
	if s.tokenCache != nil {
		if err := s.tokenCache.Close(); err != nil {
			s.log.Warn("Failed to close redis", "error", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Warn("Failed to close database", "error", err)
		}
	}

	return s.healthServer.Stop(ctx)
}
