package services

import (
	"context"
	"time"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/transformers"
	"casavista-listings/internal/utils"
	"casavista-listings/internal/validators"
)

// Cache lifetimes. Single properties live longer than listing pages because
// every write path invalidates them explicitly; list entries only have to
// survive until the next write or the TTL, whichever comes first.
const (
	propertyCacheTTL = 10 * time.Minute
	listCacheTTL     = 5 * time.Minute
)

type PropertyService struct {
	repo        repositories.PropertyRepository
	cache       repositories.PropertyCache
	transformer transformers.PropertyTransformer
	validator   validators.PropertyValidator
}

func NewPropertyService(
	repo repositories.PropertyRepository,
	cache repositories.PropertyCache,
	transformer transformers.PropertyTransformer,
	validator validators.PropertyValidator,
) *PropertyService {
	return &PropertyService{
		repo:        repo,
		cache:       cache,
		transformer: transformer,
		validator:   validator,
	}
}

func (s *PropertyService) CreateProperty(ctx context.Context, ownerID string, req *models.CreatePropertyRequest) (*models.Property, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
	}

	property := s.transformer.ToEntity(req, ownerID)
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, utils.LogAndMapError(err, "create property", "owner_id", ownerID)
	}

	// Warm the single-property entry. Listing pages that should now include
	// this property age out on their own TTL; no list key references a
	// property that did not exist when the page was cached.
	_ = s.cache.SetProperty(ctx, property, propertyCacheTTL)
	return property, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, ownerID, id string, req *models.UpdatePropertyRequest) (*models.Property, error) {
	if err := s.validator.ValidateUpdate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property for update", "property_id", id)
	}
	if property == nil || !property.IsActive {
		return nil, apperrors.NewNotFoundError("property not found or inactive", apperrors.MsgPropertyNotFound)
	}
	if property.OwnerID != ownerID {
		return nil, apperrors.NewAuthorizationError("property belongs to another owner")
	}

	s.transformer.ApplyUpdate(property, req)
	if err := s.repo.Update(ctx, property); err != nil {
		return nil, utils.LogAndMapError(err, "update property", "property_id", id)
	}

	// Invalidate before rewarming so the stale single entry and every list
	// page containing the property are gone before the fresh copy lands.
	_ = s.cache.InvalidateProperty(ctx, property.ID)
	_ = s.cache.SetProperty(ctx, property, propertyCacheTTL)
	return property, nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, ownerID, id string) error {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return utils.LogAndMapError(err, "load property for delete", "property_id", id)
	}
	if property == nil || !property.IsActive {
		return apperrors.NewNotFoundError("property not found or already inactive", apperrors.MsgPropertyNotFound)
	}
	if property.OwnerID != ownerID {
		return apperrors.NewAuthorizationError("property belongs to another owner")
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return utils.LogAndMapError(err, "deactivate property", "property_id", id)
	}

	_ = s.cache.InvalidateProperty(ctx, id)
	return nil
}
