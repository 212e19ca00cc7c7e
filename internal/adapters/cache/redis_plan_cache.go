package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// RedisPlanCache is a Redis-backed cache of plan-route results.
// Keys are request fingerprints computed by the caller; values are JSON
// encoded TripPlans expiring after TTL (0 keeps them until evicted).
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{Client: client, TTL: ttl}
}

// Connect opens a Redis client and verifies it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %q: %w", addr, err)
	}

	return client, nil
}

// Fetch a cached plan. A miss is reported as (nil, false, nil).
func (r *RedisPlanCache) Get(ctx context.Context, key string) (_ *domain.TripPlan, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("plan cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	b, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(b, &plan); err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: decode: %w", key, err)
	}

	return &plan, true, nil
}

// Store a plan under key.
func (r *RedisPlanCache) Put(ctx context.Context, key string, plan *domain.TripPlan) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if r.Client == nil {
		return errors.New("plan cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert plan cache: key must not be empty")
	}
	if plan == nil {
		return errors.New("insert plan cache: plan must not be nil")
	}

	b, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert plan cache key=%q: encode: %w", key, err)
	}

	if err := r.Client.Set(ctx, key, b, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}

	return nil
}
