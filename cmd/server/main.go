// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appConfig "github.com/festy23/fantasy_roster/internal/config"
	dbConfig "github.com/festy23/fantasy_roster/internal/database/config"
	"github.com/festy23/fantasy_roster/internal/database/database"
	"github.com/festy23/fantasy_roster/internal/database/migrate"
	"github.com/festy23/fantasy_roster/internal/database/pool"
	"github.com/festy23/fantasy_roster/internal/events"
	"github.com/festy23/fantasy_roster/internal/health"
	leagueModel "github.com/festy23/fantasy_roster/internal/league/model"
	leagueRouter "github.com/festy23/fantasy_roster/internal/league/router"
	"github.com/festy23/fantasy_roster/internal/lock"
	"github.com/festy23/fantasy_roster/internal/metrics"
	"github.com/festy23/fantasy_roster/internal/middleware"
	playerRouter "github.com/festy23/fantasy_roster/internal/player/router"
	rosterRouter "github.com/festy23/fantasy_roster/internal/roster/router"
	statisticsRouter "github.com/festy23/fantasy_roster/internal/statistics/router"
	tradeRouter "github.com/festy23/fantasy_roster/internal/trade/router"
	"github.com/festy23/fantasy_roster/internal/txn"
	waiverRouter "github.com/festy23/fantasy_roster/internal/waiver/router"
	"github.com/festy23/fantasy_roster/pkg/logger"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg := appConfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatalw("server stopped with error", "error", err)
	}
}

func run(cfg appConfig.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg := dbConfig.LoadConfigFromEnv()
	if err := dbCfg.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}
	poolCfg := pool.LoadConfigFromEnv()
	if err := poolCfg.Validate(); err != nil {
		return fmt.Errorf("invalid pool configuration: %w", err)
	}

	db, err := database.Open(ctx, dbCfg, poolCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := metrics.RegisterDBStats(db); err != nil {
		logger.Warnw("failed to register database metrics", "error", err)
	}

	deps := make(map[string]health.Pinger)

	locker, closeLocker := newLocker(cfg.Redis, logger)
	defer closeLocker()
	if cfg.Redis.Enabled() {
		deps["redis"] = locker.(health.Pinger)
	}

	publisher, err := newPublisher(ctx, cfg.Broker, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warnw("failed to close event publisher", "error", err)
		}
	}()

	presets := leagueModel.DefaultPresets()
	if cfg.League.PresetsPath != "" {
		presets, err = leagueModel.LoadPresets(cfg.League.PresetsPath)
		if err != nil {
			return fmt.Errorf("failed to load league presets: %w", err)
		}
	}

	rt := txn.NewRuntime(db, locker, publisher, clockwork.NewRealClock(), cfg.League.Location(), logger)

	gin.SetMode(cfg.GinMode)
	r := newRouter(db, rt, leagueModel.Settings{
		Presets:           presets,
		DefaultWaiverDays: cfg.League.DefaultWaiverDays,
	}, deps, cfg.Logger.SlowRequest, logger)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("starting server", "address", srv.Addr, "timezone", cfg.League.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newRouter(db *gorm.DB, rt *txn.Runtime, settings leagueModel.Settings, deps map[string]health.Pinger, slowRequest time.Duration, logger *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.Logger(logger, slowRequest))
	r.Use(middleware.Recovery(logger))

	r.GET("/health", health.New(db, logger, deps).Check)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	leagueRouter.RegisterRoutes(r, db, settings, logger)
	playerRouter.RegisterRoutes(r, db, logger)
	rosterRouter.RegisterRoutes(r, rt, logger)
	tradeRouter.RegisterRoutes(r, rt, logger)
	waiverRouter.RegisterRoutes(r, rt, logger)
	statisticsRouter.RegisterRoutes(r, db, logger)

	return r
}

// redisLocker pairs the Redis locker with a ping for /health.
type redisLocker struct {
	*lock.Redis
	client *redis.Client
}

func (l redisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func newLocker(cfg appConfig.RedisConfig, logger *zap.SugaredLogger) (lock.Locker, func()) {
	if !cfg.Enabled() {
		logger.Infow("REDIS_ADDR not set, using in-process roster locks")
		return lock.NewLocal(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warnw("failed to close redis client", "error", err)
		}
	}
	return redisLocker{Redis: lock.NewRedis(client, cfg.LockTTL, cfg.LockWait, logger), client: client}, closeFn
}

func newPublisher(ctx context.Context, cfg appConfig.BrokerConfig, logger *zap.SugaredLogger) (events.Publisher, error) {
	if !cfg.Enabled() {
		logger.Infow("RABBITMQ_URL not set, transaction events are logged only")
		return events.NewLogPublisher(logger), nil
	}
	publisher, err := events.NewRabbitPublisher(ctx, cfg.URL, cfg.Exchange, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	return publisher, nil
}
