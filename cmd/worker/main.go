package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"quizmaster_app/internal/config"
	"quizmaster_app/internal/logger"
	"quizmaster_app/internal/services"
	"quizmaster_app/internal/tasks"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Cancel on interrupt so an in-flight batch stops between tasks
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := services.InitDB(cfg.DatabaseURL, cfg.DB)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := services.AutoMigrate(db); err != nil {
		zlog.Fatal("failed to run database migrations", zap.Error(err))
	}

	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		if cache, err = services.NewRedisCache(ctx, cfg.RedisURL); err != nil {
			zlog.Warn("redis unavailable, running without cache", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	registry := tasks.NewRegistry()
	tasks.RegisterQuizTasks(registry, services.NewQuizService(db, cache))
	runner := tasks.NewRunner(db, registry, zlog)

	zlog.Info("worker started",
		zap.Duration("interval", cfg.Worker.Interval),
		zap.Strings("tasks", registry.Names()),
	)

	ticker := time.NewTicker(cfg.Worker.Interval)
	defer ticker.Stop()

	// Run once on start, then on every tick
	process(ctx, runner, zlog)
	for {
		select {
		case <-ticker.C:
			process(ctx, runner, zlog)
		case <-ctx.Done():
			zlog.Info("shutting down worker")
			return
		}
	}
}

func process(ctx context.Context, runner *tasks.Runner, zlog *zap.Logger) {
	n, err := runner.RunDue(ctx)
	if err != nil {
		zlog.Error("processing scheduled tasks", zap.Error(err), zap.Int("processed", n))
		return
	}
	if n == 0 {
		zlog.Debug("no pending tasks")
		return
	}
	zlog.Info("processed scheduled tasks", zap.Int("count", n))
}
