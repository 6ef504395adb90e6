package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps options and user meta as plain string keys under a prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. prefix defaults to "erp:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "erp:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) optionKey(name string) string {
	return s.prefix + "option:" + name
}

func (s *RedisStore) metaKey(userID int, key string) string {
	return s.prefix + "usermeta:" + strconv.Itoa(userID) + ":" + key
}

func (s *RedisStore) get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) GetOption(ctx context.Context, name string) (string, bool, error) {
	return s.get(ctx, s.optionKey(name))
}

func (s *RedisStore) SetOption(ctx context.Context, name, value string) error {
	return s.set(ctx, s.optionKey(name), value)
}

func (s *RedisStore) GetUserMeta(ctx context.Context, userID int, key string) (string, bool, error) {
	return s.get(ctx, s.metaKey(userID, key))
}

func (s *RedisStore) SetUserMeta(ctx context.Context, userID int, key, value string) error {
	return s.set(ctx, s.metaKey(userID, key), value)
}
