package services

import (
	"context"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/models"
	"casavista-listings/internal/utils"
	"casavista-listings/pkg/metrics"
)

// GetProperty returns one active listing, cache first. Deactivated
// properties are indistinguishable from absent ones here.
func (s *PropertyService) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	if property, err := s.cache.GetProperty(ctx, id); err == nil && property != nil && property.IsActive {
		metrics.CacheHitsTotal.Inc()
		return property, nil
	}
	metrics.CacheMissesTotal.Inc()

	property, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property", "property_id", id)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found or inactive", apperrors.MsgPropertyNotFound)
	}

	_ = s.cache.SetProperty(ctx, property, propertyCacheTTL)
	return property, nil
}

// GetOwnedProperty returns a property regardless of active state, but only
// to its owner. Owners keep read access to listings they have taken down.
func (s *PropertyService) GetOwnedProperty(ctx context.Context, ownerID, id string) (*models.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load owned property", "property_id", id)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found", apperrors.MsgPropertyNotFound)
	}
	if property.OwnerID != ownerID {
		return nil, apperrors.NewAuthorizationError("property belongs to another owner")
	}
	return property, nil
}
