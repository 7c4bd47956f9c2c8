package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"randevu/internal/api"
	"randevu/internal/catalog"
	"randevu/internal/config"
	"randevu/internal/credentials"
	"randevu/internal/domain"
	"randevu/internal/google"
	"randevu/internal/logging"
	"randevu/internal/metrics"
	"randevu/internal/schedule"
	"randevu/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	cat, err := catalog.New(cfg.Services)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	store := initCredentialStore(cfg, redisClient, &logger)

	authorizer, err := google.NewAuthorizer(
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.Server.BaseURL,
		store,
		&logger,
	)
	if err != nil {
		return fmt.Errorf("init authorizer: %w", err)
	}

	gateway := google.NewCalendarClient(authorizer, cfg.Google.CalendarID, cfg.Business.Timezone)

	clock := schedule.NewClock(cfg.Business.Timezone, cfg.Business.UTCOffset)
	window := cfg.Business.Window()
	closedDay, err := cfg.Business.ClosedDay()
	if err != nil {
		return err
	}

	availability := service.NewAvailabilityService(cat, gateway, authorizer, clock, window, closedDay, &logger)
	booking := service.NewBookingService(cat, gateway, authorizer, clock, window, closedDay, &logger)

	server := api.NewServer(cfg.Server, availability, booking, authorizer, cat, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, server, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := logging.Component(baseLogger, "server")

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	if err := credentials.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initCredentialStore wires the token storage: Redis primary with file
// fallback when Redis is configured, plain file store otherwise.
func initCredentialStore(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.CredentialStore {
	fileStore := credentials.NewFileStore(cfg.Google.TokenFile)
	if redisClient == nil {
		return fileStore
	}
	redisStore := credentials.NewRedisStore(redisClient, cfg.Google.TokenKey)
	return credentials.NewFailoverStore(redisStore, fileStore, logger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, server *api.Server, logger *zerolog.Logger) error {
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
