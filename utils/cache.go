package utils

import (
	"context"
	"log"
	"time"

	"slotwise/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient caches availability snapshots.
	CacheClient *redis.Client
	// RateLimitClient backs the fixed-window request limiter.
	RateLimitClient *redis.Client
)

// InitCache initializes the Redis client for availability snapshot caching.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the availability cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitRateLimitCache initializes the Redis client for request rate limiting.
func InitRateLimitCache() {
	RateLimitClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRateLimitDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := RateLimitClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Rate Limit): %v", err)
	}
}

// GetRateLimitClient returns the Redis client for request rate limiting.
func GetRateLimitClient() *redis.Client {
	if RateLimitClient == nil {
		InitRateLimitCache()
	}
	return RateLimitClient
}
