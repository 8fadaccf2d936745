package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mwolters/athletesim/internal/errors"
)

const (
	// Key patterns
	resultKeyPrefix = "result:"
	batchResultsKey = "batch:%s:results"

	// TTL for stored results (30 days)
	resultTTL = 30 * 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client    redis.UniversalClient
	ResultTTL time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client    redis.UniversalClient
	resultTTL time.Duration
}

// NewRedisRepository creates a new Redis-backed results repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.ResultTTL
	if ttl == 0 {
		ttl = resultTTL
	}

	return &redisRepository{
		client:    cfg.Client,
		resultTTL: ttl,
	}
}

// Save persists a record and indexes it under its batch
func (r *redisRepository) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return errors.InvalidArgument("record cannot be nil")
	}
	if rec.ID == "" {
		return errors.InvalidArgument("record ID cannot be empty")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "failed to serialize record")
	}

	// Pipeline keeps the record and its batch index in step
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, resultKeyPrefix+rec.ID, string(data), r.resultTTL)
	if rec.BatchID != "" {
		batchKey := fmt.Sprintf(batchResultsKey, rec.BatchID)
		pipe.RPush(ctx, batchKey, rec.ID)
		pipe.Expire(ctx, batchKey, r.resultTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to save record")
	}
	return nil
}

// Get retrieves a record by race ID
func (r *redisRepository) Get(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, errors.InvalidArgument("record ID cannot be empty")
	}

	data, err := r.client.Get(ctx, resultKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, errors.NotFoundf("result %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get record")
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize record")
	}
	return &rec, nil
}

// ListByBatch returns the batch's records in save order
func (r *redisRepository) ListByBatch(ctx context.Context, batchID string) ([]*Record, error) {
	if batchID == "" {
		return nil, errors.InvalidArgument("batch ID cannot be empty")
	}

	ids, err := r.client.LRange(ctx, fmt.Sprintf(batchResultsKey, batchID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list batch")
	}

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		rec, err := r.Get(ctx, id)
		if errors.IsNotFound(err) {
			continue // expired out from under the index
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
