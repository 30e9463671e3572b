package repositories

import (
	"context"
	"time"

	"casavista-listings/internal/models"
	"casavista-listings/pkg/cache"

	"github.com/go-redis/redis/v8"
)

type propertyCache struct{}

func NewPropertyCache() PropertyCache {
	return &propertyCache{}
}

func (c *propertyCache) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := cache.Get(ctx, cache.PropertyKey(id), &property)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *propertyCache) SetProperty(ctx context.Context, property *models.Property, expiration time.Duration) error {
	key := cache.PropertyKey(property.ID)
	if err := cache.Set(ctx, key, property, expiration); err != nil {
		return err
	}
	// registering the key makes single-property entries reachable from the
	// invalidation script alongside list keys
	return cache.AddCacheKeyToPropertySet(ctx, property.ID, key)
}

func (c *propertyCache) GetList(ctx context.Context, key string) (*CachedList, error) {
	var list CachedList
	err := cache.GetSearchResult(ctx, key, &list)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *propertyCache) SetList(ctx context.Context, key string, list *CachedList, expiration time.Duration) error {
	return cache.SetSearchResult(ctx, key, list, list.IDs, expiration)
}

func (c *propertyCache) InvalidateProperty(ctx context.Context, propertyID string) error {
	// direct delete first: covers an entry whose set registration failed
	_ = cache.Delete(ctx, cache.PropertyKey(propertyID))
	return cache.InvalidatePropertyCacheKeys(ctx, propertyID)
}
