package repositories

import (
	"context"
	"time"

	"casavista-listings/internal/models"
	"casavista-listings/internal/utils"

	"gorm.io/gorm"
)

// imageMetaColumns selects everything except the image bytes; metadata
// listings must not drag BYTEA payloads out of the database.
var imageMetaColumns = []string{
	"id", "property_id", "content_type", "file_name",
	"file_size", "display_order", "is_primary", "uploaded_at",
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.PropertyImage) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(image).Error
	utils.RecordDBOperation("insert", "property_images", start)
	if err != nil {
		utils.RecordDBError("insert", "property_images")
		return err
	}
	return nil
}

func (r *imageRepository) FindByID(ctx context.Context, propertyID, imageID string) (*models.PropertyImage, error) {
	start := time.Now()
	var image models.PropertyImage
	err := r.db.WithContext(ctx).
		First(&image, "id = ? AND property_id = ?", imageID, propertyID).Error
	utils.RecordDBOperation("find_one", "property_images", start)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		utils.RecordDBError("find_one", "property_images")
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) FindMetaByProperty(ctx context.Context, propertyID string) ([]models.PropertyImage, error) {
	start := time.Now()
	var images []models.PropertyImage
	err := r.db.WithContext(ctx).
		Select(imageMetaColumns).
		Where("property_id = ?", propertyID).
		Order("display_order ASC").
		Find(&images).Error
	utils.RecordDBOperation("find", "property_images", start)
	if err != nil {
		utils.RecordDBError("find", "property_images")
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) CountByProperty(ctx context.Context, propertyID string) (int64, error) {
	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error
	utils.RecordDBOperation("count", "property_images", start)
	if err != nil {
		utils.RecordDBError("count", "property_images")
		return 0, err
	}
	return count, nil
}

// NextDisplayOrder returns the next free slot, starting at 1.
func (r *imageRepository) NextDisplayOrder(ctx context.Context, propertyID string) (int, error) {
	start := time.Now()
	var next int
	err := r.db.WithContext(ctx).Model(&models.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Select("COALESCE(MAX(display_order), 0) + 1").
		Scan(&next).Error
	utils.RecordDBOperation("next_order", "property_images", start)
	if err != nil {
		utils.RecordDBError("next_order", "property_images")
		return 0, err
	}
	return next, nil
}

// SetPrimary promotes one image and demotes the rest in a single transaction.
func (r *imageRepository) SetPrimary(ctx context.Context, propertyID, imageID string) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PropertyImage{}).
			Where("property_id = ? AND is_primary = ?", propertyID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		result := tx.Model(&models.PropertyImage{}).
			Where("id = ? AND property_id = ?", imageID, propertyID).
			Update("is_primary", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	utils.RecordDBOperation("set_primary", "property_images", start)
	if err != nil && err != gorm.ErrRecordNotFound {
		utils.RecordDBError("set_primary", "property_images")
	}
	return err
}

func (r *imageRepository) Delete(ctx context.Context, propertyID, imageID string) error {
	start := time.Now()
	result := r.db.WithContext(ctx).
		Delete(&models.PropertyImage{}, "id = ? AND property_id = ?", imageID, propertyID)
	utils.RecordDBOperation("delete", "property_images", start)
	if result.Error != nil {
		utils.RecordDBError("delete", "property_images")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
