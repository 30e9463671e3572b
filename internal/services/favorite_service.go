package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/utils"
)

type FavoriteService struct {
	favorites  repositories.FavoriteRepository
	properties repositories.PropertyRepository
}

func NewFavoriteService(favorites repositories.FavoriteRepository, properties repositories.PropertyRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, properties: properties}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID, propertyID string) (*models.Favorite, error) {
	property, err := s.properties.FindActiveByID(ctx, propertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property for favorite", "property_id", propertyID)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found or inactive", apperrors.MsgPropertyNotFound)
	}

	favorite := &models.Favorite{
		UserID:     userID,
		PropertyID: propertyID,
	}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		// The unique index on (user, property) makes re-favoriting a conflict
		// rather than a second row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflictError(
				"favorite already exists for user and property",
				"This property is already in your favorites.")
		}
		return nil, utils.LogAndMapError(err, "create favorite", "property_id", propertyID)
	}
	return favorite, nil
}

func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, propertyID string) error {
	err := s.favorites.Delete(ctx, userID, propertyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError("favorite not found", apperrors.MsgFavoriteNotFound)
	}
	if err != nil {
		return utils.LogAndMapError(err, "delete favorite", "property_id", propertyID)
	}
	return nil
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID string, offset, limit int, baseURL string) (*models.PaginatedFavoritesResponse, error) {
	offset, limit = utils.ClampPageParams(offset, limit)

	favorites, total, err := s.favorites.FindByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list favorites", "user_id", userID)
	}
	return &models.PaginatedFavoritesResponse{
		Data: favorites,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, nil),
	}, nil
}
