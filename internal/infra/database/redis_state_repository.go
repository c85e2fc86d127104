package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/state"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "homework_status_bot:checkpoint"

// RedisStateRepository keeps the checkpoint as a JSON value under one key.
type RedisStateRepository struct {
	client *redis.Client
	key    string
}

// NewRedisStateRepository connects using a redis:// or rediss:// URL.
func NewRedisStateRepository(ctx context.Context, url string) (*RedisStateRepository, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRedisStateRepositoryFromClient(client, defaultRedisKey), nil
}

func NewRedisStateRepositoryFromClient(client *redis.Client, key string) *RedisStateRepository {
	return &RedisStateRepository{client: client, key: key}
}

func (r *RedisStateRepository) Load(ctx context.Context) (*state.Checkpoint, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, state.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading checkpoint: %w", err)
	}
	var cp state.Checkpoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("error decoding checkpoint: %w", err)
	}
	return &cp, nil
}

func (r *RedisStateRepository) Save(ctx context.Context, cp *state.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("error encoding checkpoint: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("error saving checkpoint: %w", err)
	}
	return nil
}

func (r *RedisStateRepository) Close() error {
	return r.client.Close()
}
