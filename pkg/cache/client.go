package cache

import (
	"context"
	"fmt"
	"time"

	"casavista-listings/pkg/config"
	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client
var setSearchResultScript *redis.Script
var invalidatePropertyCacheScript *redis.Script

// initialize the Redis client and load the cache maintenance scripts.
func InitRedis(cfg *config.Config) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err := RedisClient.Ping(ctx).Result()
	metrics.RedisOperationDuration.WithLabelValues("ping").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("ping").Inc()
		logger.GlobalLogger.Errorf("failed to connect to Redis: %v", err)
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	// Stores a list result and registers the list key in the key set of every
	// property it contains, so a property write can invalidate the lists
	// that mention it.
	setSearchResultScript = redis.NewScript(`
		local search_key = ARGV[1]
		local property_ids_json = ARGV[2]
		local search_expiration = tonumber(ARGV[3])
		redis.call('SET', search_key, property_ids_json)
		redis.call('EXPIRE', search_key, search_expiration)
		for i = 4, #ARGV do
			local property_id = ARGV[i]
			local set_key = 'property:keys:' .. property_id
			redis.call('SADD', set_key, search_key)
			redis.call('EXPIRE', set_key, 3600)
		end
		return 1
	`)

	invalidatePropertyCacheScript = redis.NewScript(`
		local set_key = 'property:keys:' .. ARGV[1]
		local cache_keys = redis.call('SMEMBERS', set_key)
		if #cache_keys > 0 then
			redis.call('DEL', unpack(cache_keys))
		end
		redis.call('DEL', set_key)
		return 1
	`)

	logger.GlobalLogger.Println("Redis connected successfully")
	return nil
}

// health-check ping against the client.
func Ping(ctx context.Context) error {
	if RedisClient == nil {
		return fmt.Errorf("redis not initialized")
	}
	return RedisClient.Ping(ctx).Err()
}

// close the Redis client connection.
func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.GlobalLogger.Errorf("error closing Redis: %v", err)
		} else {
			logger.GlobalLogger.Println("Redis connection closed")
		}
	}
}
