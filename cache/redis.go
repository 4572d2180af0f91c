package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func CreateRedisCache(config RedisConfig) (*RedisCache, error) {
	port := config.Port
	if port == 0 {
		port = 6379
	}
	addr := fmt.Sprintf("%s:%d", config.Host, port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := config.TTL
	if ttl == 0 {
		ttl = time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func statsKey(userID string) string {
	return "dashboard:stats:" + userID
}

// GetStats returns the cached dashboard stats for a user, if present. Cache
// errors read as misses.
func (c *RedisCache) GetStats(ctx context.Context, userID string) (*models.DashboardStats, bool) {
	data, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var stats models.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *RedisCache) SetStats(ctx context.Context, userID string, stats *models.DashboardStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	c.client.Set(ctx, statsKey(userID), data, c.ttl)
}

func (c *RedisCache) InvalidateStats(ctx context.Context, userID string) {
	c.client.Del(ctx, statsKey(userID))
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
