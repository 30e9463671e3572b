package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	start := time.Now()
	data, err := json.Marshal(value)
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set_marshal").Inc()
		logger.GlobalLogger.Errorf("failed to marshal value for key %s: %v", key, err)
		return fmt.Errorf("failed to marshal value: %v", err)
	}
	err = RedisClient.Set(ctx, key, data, expiration).Err()
	metrics.RedisOperationDuration.WithLabelValues("set").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set").Inc()
		logger.GlobalLogger.Errorf("failed to set key %s: %v", key, err)
		return err
	}
	return nil
}

func Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	val, err := RedisClient.Get(ctx, key).Result()
	metrics.RedisOperationDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	if err != nil {
		if err != redis.Nil {
			metrics.RedisErrorsTotal.WithLabelValues("get").Inc()
			logger.GlobalLogger.Errorf("failed to get key %s: %v", key, err)
		}
		return err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("get_unmarshal").Inc()
		logger.GlobalLogger.Errorf("failed to unmarshal value for key %s: %v", key, err)
		return fmt.Errorf("failed to unmarshal value: %v", err)
	}
	return nil
}

func Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := RedisClient.Del(ctx, key).Err()
	metrics.RedisOperationDuration.WithLabelValues("delete").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("delete").Inc()
		logger.GlobalLogger.Errorf("failed to delete key %s: %v", key, err)
		return err
	}
	return nil
}

func Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	count, err := RedisClient.Exists(ctx, key).Result()
	metrics.RedisOperationDuration.WithLabelValues("exists").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("exists").Inc()
		logger.GlobalLogger.Errorf("failed to check existence of key %s: %v", key, err)
		return false, err
	}
	return count > 0, nil
}

// store a list result and register its key against every contained property,
// so deactivating or updating any of them drops this entry too.
func SetSearchResult(ctx context.Context, key string, value interface{}, propertyIDs []string, expiration time.Duration) error {
	start := time.Now()
	payload, err := json.Marshal(value)
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set_search_marshal").Inc()
		logger.GlobalLogger.Errorf("failed to marshal search result for key %s: %v", key, err)
		return fmt.Errorf("failed to marshal search result: %v", err)
	}

	args := []interface{}{key, string(payload), strconv.Itoa(int(expiration.Seconds()))}
	for _, id := range propertyIDs {
		args = append(args, id)
	}

	_, err = setSearchResultScript.Run(ctx, RedisClient, []string{}, args...).Result()
	metrics.RedisOperationDuration.WithLabelValues("set_search_result").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set_search_result").Inc()
		logger.GlobalLogger.Errorf("failed to execute set search result script for key %s: %v", key, err)
		return fmt.Errorf("failed to execute set search result script: %v", err)
	}
	return nil
}

func GetSearchResult(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	val, err := RedisClient.Get(ctx, key).Result()
	metrics.RedisOperationDuration.WithLabelValues("get_search_result").Observe(time.Since(start).Seconds())
	if err != nil {
		if err != redis.Nil {
			metrics.RedisErrorsTotal.WithLabelValues("get_search_result").Inc()
			logger.GlobalLogger.Errorf("failed to get search result for key %s: %v", key, err)
		}
		return err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("get_search_unmarshal").Inc()
		logger.GlobalLogger.Errorf("failed to unmarshal search result for key %s: %v", key, err)
		return fmt.Errorf("failed to unmarshal search result: %v", err)
	}
	return nil
}

// register a cache key in the key set of the property it depends on.
func AddCacheKeyToPropertySet(ctx context.Context, propertyID, cacheKey string) error {
	start := time.Now()
	setKey := PropertyKeysSetKey(propertyID)
	_, err := RedisClient.SAdd(ctx, setKey, cacheKey).Result()
	metrics.RedisOperationDuration.WithLabelValues("sadd").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("sadd").Inc()
		logger.GlobalLogger.Errorf("failed to add cache key %s to set %s: %v", cacheKey, setKey, err)
		return fmt.Errorf("failed to add cache key %s to set %s: %v", cacheKey, setKey, err)
	}
	return nil
}

// drop every cache key registered for the property, then the set itself.
func InvalidatePropertyCacheKeys(ctx context.Context, propertyID string) error {
	start := time.Now()
	_, err := invalidatePropertyCacheScript.Run(ctx, RedisClient, []string{}, propertyID).Result()
	metrics.RedisOperationDuration.WithLabelValues("invalidate_cache").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("invalidate_cache").Inc()
		logger.GlobalLogger.Errorf("failed to execute invalidate property cache script for property %s: %v", propertyID, err)
		return fmt.Errorf("failed to execute invalidate property cache script: %v", err)
	}
	return nil
}
