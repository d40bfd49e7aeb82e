package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/CamiloArboledaG/reviewHub/internal/config"
	"github.com/CamiloArboledaG/reviewHub/internal/workers"
	"github.com/CamiloArboledaG/reviewHub/pkg/cache"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/CamiloArboledaG/reviewHub/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting ReviewHub stats worker...")

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	reviewEventsConsumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.ReviewEvents, "stats-worker-group")

	statsWorker := workers.NewStatsWorker(redisClient, reviewEventsConsumer, &cfg.Feed, logger)

	go func() {
		if err := statsWorker.Start(ctx); err != nil {
			logger.WithError(err).Error("Stats worker stopped with error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")

	if err := statsWorker.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop stats worker")
	}

	logger.Info("Worker exited")
}
