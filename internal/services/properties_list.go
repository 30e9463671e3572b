package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/utils"
	"casavista-listings/pkg/cache"
	"casavista-listings/pkg/metrics"
)

// ListProperties serves the public catalog page. Pages are cached as id
// lists keyed by offset, limit and the normalized filters; the properties
// themselves are cached individually so pages can share them.
func (s *PropertyService) ListProperties(ctx context.Context, filters repositories.PropertyFilters, offset, limit int, baseURL string) (*models.PaginatedPropertiesResponse, error) {
	offset, limit = utils.ClampPageParams(offset, limit)
	params := filterValues(filters)
	listKey := cache.PropertyListKey(offset, limit, params)

	if cached, err := s.cache.GetList(ctx, listKey); err == nil && cached != nil {
		if properties, err := s.propertiesInOrder(ctx, cached.IDs); err == nil {
			metrics.CacheHitsTotal.Inc()
			return &models.PaginatedPropertiesResponse{
				Data: properties,
				Meta: utils.BuildPaginationMeta(cached.Total, offset, limit, baseURL, params),
			}, nil
		}
		// A cached id no longer resolves to an active property; rebuild the
		// page from the database.
	}
	metrics.CacheMissesTotal.Inc()

	properties, total, err := s.repo.FindActiveWithFilters(ctx, filters, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list properties", "offset", offset, "limit", limit)
	}

	ids := make([]string, len(properties))
	for i := range properties {
		ids[i] = properties[i].ID
		_ = s.cache.SetProperty(ctx, &properties[i], propertyCacheTTL)
	}
	_ = s.cache.SetList(ctx, listKey, &repositories.CachedList{IDs: ids, Total: total}, listCacheTTL)

	return &models.PaginatedPropertiesResponse{
		Data: properties,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, params),
	}, nil
}

// ListOwnProperties returns every listing of one owner, active or not.
// Owner views are never cached.
func (s *PropertyService) ListOwnProperties(ctx context.Context, ownerID string, offset, limit int, baseURL string) (*models.PaginatedPropertiesResponse, error) {
	offset, limit = utils.ClampPageParams(offset, limit)

	properties, total, err := s.repo.FindByOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list own properties", "owner_id", ownerID)
	}

	return &models.PaginatedPropertiesResponse{
		Data: properties,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, nil),
	}, nil
}

// propertiesInOrder resolves cached page ids back into properties, keeping
// the stored order. Ids missing from the cache are fetched in one query; an
// id that resolves nowhere (deactivated since the page was cached) fails
// the whole page so the caller falls back to the database.
func (s *PropertyService) propertiesInOrder(ctx context.Context, ids []string) ([]models.Property, error) {
	byID := make(map[string]models.Property, len(ids))
	var missing []string

	for _, id := range ids {
		if property, err := s.cache.GetProperty(ctx, id); err == nil && property != nil {
			byID[id] = *property
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		fromDB, err := s.repo.FindByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for i := range fromDB {
			byID[fromDB[i].ID] = fromDB[i]
			_ = s.cache.SetProperty(ctx, &fromDB[i], propertyCacheTTL)
		}
	}

	properties := make([]models.Property, 0, len(ids))
	for _, id := range ids {
		property, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("property %s missing from cache and storage", id)
		}
		properties = append(properties, property)
	}
	return properties, nil
}

// filterValues renders filters in query-string form, the shared currency of
// cache keys and pagination links.
func filterValues(f repositories.PropertyFilters) url.Values {
	params := url.Values{}
	if f.City != "" {
		params.Set("city", f.City)
	}
	if f.PropertyType != "" {
		params.Set("property_type", strings.ToUpper(f.PropertyType))
	}
	if f.SalesType != "" {
		params.Set("sales_type", strings.ToUpper(f.SalesType))
	}
	if f.MinValue != nil {
		params.Set("min_value", strconv.FormatFloat(*f.MinValue, 'f', -1, 64))
	}
	if f.MaxValue != nil {
		params.Set("max_value", strconv.FormatFloat(*f.MaxValue, 'f', -1, 64))
	}
	if f.MinSize != nil {
		params.Set("min_size", strconv.FormatFloat(*f.MinSize, 'f', -1, 64))
	}
	if f.MaxSize != nil {
		params.Set("max_size", strconv.FormatFloat(*f.MaxSize, 'f', -1, 64))
	}
	if f.IsPetAllowed != nil {
		params.Set("is_pet_allowed", strconv.FormatBool(*f.IsPetAllowed))
	}
	return params
}
