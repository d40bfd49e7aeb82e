package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/CamiloArboledaG/reviewHub/internal/config"
	"github.com/CamiloArboledaG/reviewHub/pkg/cache"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/CamiloArboledaG/reviewHub/pkg/queue"
)

const itemStatsKeyPrefix = "item:stats:"

// StatsWorker consumes review events and maintains per-item rating
// aggregates in Redis so rating summaries never require a table scan.
type StatsWorker struct {
	cache    *cache.RedisClient
	consumer *queue.KafkaConsumer
	statsTTL time.Duration
	logger   *logger.Logger

	cancel context.CancelFunc
}

func NewStatsWorker(cache *cache.RedisClient, consumer *queue.KafkaConsumer, cfg *config.FeedConfig, logger *logger.Logger) *StatsWorker {
	return &StatsWorker{
		cache:    cache,
		consumer: consumer,
		statsTTL: cfg.StatsTTL,
		logger:   logger,
	}
}

func (w *StatsWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting stats worker...")

	ctx, w.cancel = context.WithCancel(ctx)

	return w.consumer.Subscribe(ctx, func(msg queue.Message) error {
		var event queue.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// Malformed payloads are dropped, not retried forever.
			w.logger.WithError(err).Warn("Skipping malformed event")
			return nil
		}

		switch event.Type {
		case queue.EventReviewCreated:
			return w.handleReviewCreated(ctx, event)
		default:
			return nil
		}
	})
}

func (w *StatsWorker) Stop() error {
	if w.cancel != nil {
		w.cancel()
	}
	return w.consumer.Close()
}

func (w *StatsWorker) handleReviewCreated(ctx context.Context, event queue.Event) error {
	var data queue.ReviewEventData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		w.logger.WithError(err).Warn("Skipping review event with bad data")
		return nil
	}

	key := itemStatsKeyPrefix + data.ItemID

	count, err := w.cache.HIncrBy(ctx, key, "count", 1)
	if err != nil {
		return fmt.Errorf("failed to bump review count: %w", err)
	}

	sum, err := w.cache.HIncrByFloat(ctx, key, "sum", data.Rating)
	if err != nil {
		return fmt.Errorf("failed to bump rating sum: %w", err)
	}

	average := sum / float64(count)
	if err := w.cache.HSet(ctx, key, "average", strconv.FormatFloat(average, 'f', 2, 64)); err != nil {
		return fmt.Errorf("failed to store rating average: %w", err)
	}

	if w.statsTTL > 0 {
		if err := w.cache.Expire(ctx, key, w.statsTTL); err != nil {
			w.logger.WithError(err).Warn("Failed to refresh stats TTL")
		}
	}

	w.logger.WithFields(map[string]interface{}{
		"item_id": data.ItemID,
		"count":   count,
		"average": average,
	}).Info("Updated item rating stats")

	return nil
}
