package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rsalas72/away-team/pkg/world"
)

// RedisStorage implements the Storage interface using Redis for world
// saves. Saves expire after sessionTTL of inactivity.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

const sessionTTL = 24 * time.Hour

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	return &RedisStorage{
		client: redis.NewClient(opts),
		logger: logger,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

// SaveWorld persists the full world save under the session key
func (r *RedisStorage) SaveWorld(ctx context.Context, w *world.World) error {
	save := w.Export()

	data, err := json.Marshal(save)
	if err != nil {
		r.logger.Error("Failed to marshal world save", "session", save.SessionID, "error", err)
		return fmt.Errorf("failed to marshal world save: %w", err)
	}

	key := sessionKey(save.SessionID)
	if err := r.client.Set(ctx, key, string(data), sessionTTL).Err(); err != nil {
		r.logger.Error("Failed to save world", "session", save.SessionID, "error", err)
		return fmt.Errorf("failed to save world: %w", err)
	}

	return nil
}

// LoadWorld restores a world save from the session key
func (r *RedisStorage) LoadWorld(ctx context.Context, sessionID uuid.UUID) (*world.World, error) {
	key := sessionKey(sessionID)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			r.logger.Warn("World save not found", "session", sessionID)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load world", "session", sessionID, "error", err)
		return nil, fmt.Errorf("failed to load world: %w", err)
	}

	var save world.Save
	if err := json.Unmarshal([]byte(data), &save); err != nil {
		r.logger.Error("Failed to unmarshal world save", "session", sessionID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal world save: %w", err)
	}

	w, err := world.FromSave(&save)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct world: %w", err)
	}

	return w, nil
}

// DeleteWorld removes a session's save
func (r *RedisStorage) DeleteWorld(ctx context.Context, sessionID uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		r.logger.Error("Failed to delete world save", "session", sessionID, "error", err)
		return fmt.Errorf("failed to delete world save: %w", err)
	}
	return nil
}
