package store

import (
	"context"

	"settlement-quiz/internal/common/database"
	"settlement-quiz/internal/common/errors"
	"settlement-quiz/internal/common/logger"
	"settlement-quiz/internal/common/metrics"
)

// RedisStore backs the Store boundary with Redis. All failures degrade per the
// Store contract and are logged and counted, never propagated.
type RedisStore struct {
	client *database.RedisClient
	logger logger.Logger
}

func NewRedisStore(client *database.RedisClient, log logger.Logger) *RedisStore {
	return &RedisStore{client: client, logger: log}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, key)
	if err != nil {
		if !database.IsNotFound(err) {
			metrics.StorageFailures.WithLabelValues("get").Inc()
			r.logger.Warn("Answer store read degraded to empty", map[string]interface{}{
				"key":   key,
				"error": errors.NewStorageReadFailedError(key, err).Error(),
			})
		}
		return "", false
	}
	return value, true
}

func (r *RedisStore) Set(ctx context.Context, key, value string) {
	if err := r.client.Set(ctx, key, value, sessionTTL); err != nil {
		metrics.StorageFailures.WithLabelValues("set").Inc()
		r.logger.Warn("Answer store write dropped", map[string]interface{}{
			"key":   key,
			"error": errors.NewStorageWriteFailedError(key, err).Error(),
		})
	}
}

func (r *RedisStore) Remove(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key); err != nil {
		metrics.StorageFailures.WithLabelValues("remove").Inc()
		r.logger.Warn("Answer store delete dropped", map[string]interface{}{
			"key":   key,
			"error": errors.NewStorageWriteFailedError(key, err).Error(),
		})
	}
}
