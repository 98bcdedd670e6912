package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisCooldowns keeps command cooldowns in Redis so they survive restarts
// and are shared between bot processes.
type RedisCooldowns struct {
	client *redis.Client
}

// NewRedisClient parses a redis:// URL and verifies the server answers
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.WithField("addr", opt.Addr).Info("Connected to Redis")
	return client, nil
}

func NewRedisCooldowns(client *redis.Client) *RedisCooldowns {
	return &RedisCooldowns{client: client}
}

// Acquire sets key for window unless it already exists. When it does, the
// remaining lifetime of the existing key is returned.
func (r *RedisCooldowns) Acquire(ctx context.Context, key string, window time.Duration) (time.Duration, bool, error) {
	// A key can expire between SETNX and PTTL, so try twice before giving up.
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := r.client.SetNX(ctx, key, 1, window).Result()
		if err != nil {
			return 0, false, fmt.Errorf("failed to set cooldown %s: %w", key, err)
		}
		if ok {
			return 0, true, nil
		}

		ttl, err := r.client.PTTL(ctx, key).Result()
		if err != nil {
			return 0, false, fmt.Errorf("failed to read cooldown %s: %w", key, err)
		}
		if ttl > 0 {
			return ttl, false, nil
		}
	}

	// The key exists without a usable TTL, e.g. written with no expiry.
	// Overwrite it so the window still starts.
	if err := r.client.Set(ctx, key, 1, window).Err(); err != nil {
		return 0, false, fmt.Errorf("failed to reset cooldown %s: %w", key, err)
	}
	return 0, true, nil
}
