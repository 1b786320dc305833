package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanCount is the COUNT hint passed to SCAN.
const scanCount = 100

var _ Cache = (*MyRedis)(nil)
var _ Cache = (*Memory)(nil)

// MyRedis implement Cache interface
type MyRedis struct {
	client *redis.Client
}

func NewRedis(opts *redis.Options) (*MyRedis, error) {
	c := redis.NewClient(opts)
	if cmd := c.Ping(context.Background()); cmd.Err() != nil {
		return nil, fmt.Errorf("err when connecting to redis %w", cmd.Err())
	}
	return &MyRedis{
		client: c,
	}, nil
}

func (r *MyRedis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	} else if err != nil {
		return "", fmt.Errorf("err when getting %s: %w", key, err)
	}
	return value, nil
}

func (r *MyRedis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("err when setting %s: %w", key, err)
	}
	return nil
}

func (r *MyRedis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("err when deleting %s: %w", key, err)
	}
	return nil
}

// Keys walks the keyspace with SCAN instead of KEYS so a large keyspace
// doesn't block the server.
func (r *MyRedis) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		result []string
		cursor uint64
	)
	match := escapePattern(prefix) + "*"
	for {
		keys, next, err := r.client.Scan(ctx, cursor, match, scanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("err when scanning %s: %w", match, err)
		}
		result = append(result, keys...)
		if next == 0 {
			break
		}
		cursor = next
	}
	return result, nil
}

func (r *MyRedis) FlushAll(ctx context.Context) error {
	if err := r.client.FlushAll(ctx).Err(); err != nil {
		return fmt.Errorf("err when flushing redis: %w", err)
	}
	return nil
}

func (r *MyRedis) Close(ctx context.Context) error {
	return r.client.Close()
}

// escapePattern quotes the glob metacharacters understood by MATCH so a
// user id like "a*" only matches itself.
func escapePattern(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
