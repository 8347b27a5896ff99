package coreemail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// settingsKeyPrefix namespaces the override slot inside the shared Redis
// instance, mirroring the owning collaborator's plugin name.
const settingsKeyPrefix = "users-permissions:"

// RedisSettingsStore persists the core email overrides as a JSON blob in
// Redis.
type RedisSettingsStore struct {
	client *redis.Client
}

// NewRedisSettingsStore creates a settings store on the given Redis client.
func NewRedisSettingsStore(client *redis.Client) *RedisSettingsStore {
	return &RedisSettingsStore{client: client}
}

func (s *RedisSettingsStore) Get(ctx context.Context, key string) (map[string]Settings, error) {
	raw, err := s.client.Get(ctx, settingsKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]Settings{}, nil
		}
		return nil, fmt.Errorf("read settings %q: %w", key, err)
	}

	var out map[string]Settings
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode settings %q: %w", key, err)
	}
	return out, nil
}

func (s *RedisSettingsStore) Set(ctx context.Context, key string, value map[string]Settings) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode settings %q: %w", key, err)
	}
	if err := s.client.Set(ctx, settingsKeyPrefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("write settings %q: %w", key, err)
	}
	return nil
}
