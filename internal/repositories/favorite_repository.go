package repositories

import (
	"context"
	"time"

	"casavista-listings/internal/models"
	"casavista-listings/internal/utils"

	"gorm.io/gorm"
)

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Omit("Property").Create(favorite).Error
	utils.RecordDBOperation("insert", "favorites", start)
	if err != nil {
		utils.RecordDBError("insert", "favorites")
		return err
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, propertyID string) error {
	start := time.Now()
	result := r.db.WithContext(ctx).
		Delete(&models.Favorite{}, "user_id = ? AND property_id = ?", userID, propertyID)
	utils.RecordDBOperation("delete", "favorites", start)
	if result.Error != nil {
		utils.RecordDBError("delete", "favorites")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) FindByUser(ctx context.Context, userID string, offset, limit int) ([]models.Favorite, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", userID)

	start := time.Now()
	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RecordDBOperation("count", "favorites", start)
		utils.RecordDBError("count", "favorites")
		return nil, 0, err
	}
	utils.RecordDBOperation("count", "favorites", start)

	start = time.Now()
	var favorites []models.Favorite
	err := query.Preload("Property").Preload("Property.Address").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&favorites).Error
	utils.RecordDBOperation("find", "favorites", start)
	if err != nil {
		utils.RecordDBError("find", "favorites")
		return nil, 0, err
	}
	return favorites, total, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	utils.RecordDBOperation("exists", "favorites", start)
	if err != nil {
		utils.RecordDBError("exists", "favorites")
		return false, err
	}
	return count > 0, nil
}
