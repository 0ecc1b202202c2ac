package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/scoreline/score-sync/internal/api"
	"github.com/scoreline/score-sync/internal/auth"
	"github.com/scoreline/score-sync/internal/config"
	"github.com/scoreline/score-sync/internal/db"
	"github.com/scoreline/score-sync/internal/feed"
	"github.com/scoreline/score-sync/internal/metrics"
	"github.com/scoreline/score-sync/internal/ratelimiter"
	"github.com/scoreline/score-sync/internal/repository"
	"github.com/scoreline/score-sync/internal/service"
	"github.com/scoreline/score-sync/internal/worker"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, every authenticated route will answer 401")
	}

	// ---- database ----
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations applied")

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	matches := repository.NewPgMatchRepository(pool)
	favorites := repository.NewPgFavoriteRepository(pool)
	notifications := repository.NewPgNotificationRepository(pool)

	src, err := feed.New(cfg)
	if err != nil {
		logger.Fatal("failed to build live score feed", zap.Error(err))
	}

	syncSvc := service.NewScoreSyncService(matches, favorites, notifications, service.SyncOptions{
		Mode:   cfg.NotifyMode,
		Budget: cfg.SyncBudget,
		Hooks:  m.SyncHooks(),
	}, logger.Named("score_sync"))

	// ---- background scheduler ----
	// Context for all background goroutines; cancelled on shutdown signal.
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	var syncWorker *worker.SyncWorker
	if cfg.SyncInterval > 0 {
		syncWorker = worker.NewSyncWorker(syncSvc, src, cfg.SyncInterval, logger.Named("sync_worker"))
		syncWorker.Start(workerCtx)
	} else {
		logger.Info("sync worker disabled, relying on the HTTP trigger")
	}

	// ---- HTTP server ----
	router := api.NewRouter(api.Deps{
		Matches:            service.NewMatchService(matches),
		Favorites:          service.NewFavoriteService(favorites, logger),
		Notifications:      service.NewNotificationService(notifications),
		Sync:               syncSvc,
		Feed:               src,
		AcceptSnapshot:     cfg.SyncAcceptSnapshot,
		RequireServiceRole: cfg.SyncRequireServiceRole,
		Verifier:           auth.NewVerifier(cfg.JWTSecret),
		Limiters:           ratelimiter.New(cfg.RateLimit),
		DB:                 pool,
		Gatherer:           reg,
	}, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("feed_provider", cfg.FeedProvider),
			zap.String("notify_mode", string(syncSvc.Mode())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	// 1. Stop accepting new HTTP requests; in-flight job calls finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	// 2. Stop the scheduler and wait for a run in progress.
	cancelWorkers()
	if syncWorker != nil {
		syncWorker.Wait()
	}

	logger.Info("server stopped cleanly")
}
