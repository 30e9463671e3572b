package repositories

import (
	"context"
	"time"

	"casavista-listings/internal/models"
	"casavista-listings/internal/utils"

	"gorm.io/gorm"
)

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(property).Error
	utils.RecordDBOperation("insert", "properties", start)
	if err != nil {
		utils.RecordDBError("insert", "properties")
		return err
	}
	return nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	start := time.Now()
	var property models.Property
	err := r.db.WithContext(ctx).Preload("Address").First(&property, "id = ?", id).Error
	utils.RecordDBOperation("find_one", "properties", start)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		utils.RecordDBError("find_one", "properties")
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) FindActiveByID(ctx context.Context, id string) (*models.Property, error) {
	start := time.Now()
	var property models.Property
	err := r.db.WithContext(ctx).Preload("Address").
		First(&property, "id = ? AND is_active = ?", id, true).Error
	utils.RecordDBOperation("find_one", "properties", start)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		utils.RecordDBError("find_one", "properties")
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) FindActiveWithFilters(ctx context.Context, filters PropertyFilters, offset, limit int) ([]models.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Property{}).
		Joins("JOIN addresses ON addresses.id = properties.address_id").
		Where("properties.is_active = ?", true)

	if filters.City != "" {
		query = query.Where("LOWER(addresses.city) = LOWER(?)", filters.City)
	}
	if filters.PropertyType != "" {
		query = query.Where("properties.property_type = ?", filters.PropertyType)
	}
	if filters.SalesType != "" {
		query = query.Where("properties.sales_type = ?", filters.SalesType)
	}
	if filters.MinValue != nil {
		query = query.Where("properties.property_value >= ?", *filters.MinValue)
	}
	if filters.MaxValue != nil {
		query = query.Where("properties.property_value <= ?", *filters.MaxValue)
	}
	if filters.MinSize != nil {
		query = query.Where("properties.property_size >= ?", *filters.MinSize)
	}
	if filters.MaxSize != nil {
		query = query.Where("properties.property_size <= ?", *filters.MaxSize)
	}
	if filters.IsPetAllowed != nil {
		query = query.Where("properties.is_pet_allowed = ?", *filters.IsPetAllowed)
	}

	start := time.Now()
	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RecordDBOperation("count", "properties", start)
		utils.RecordDBError("count", "properties")
		return nil, 0, err
	}
	utils.RecordDBOperation("count", "properties", start)

	start = time.Now()
	var properties []models.Property
	err := query.Preload("Address").
		Order("properties.publish_date DESC").
		Offset(offset).Limit(limit).
		Find(&properties).Error
	utils.RecordDBOperation("find", "properties", start)
	if err != nil {
		utils.RecordDBError("find", "properties")
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *propertyRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	start := time.Now()
	var properties []models.Property
	err := r.db.WithContext(ctx).Preload("Address").
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&properties).Error
	utils.RecordDBOperation("find", "properties", start)
	if err != nil {
		utils.RecordDBError("find", "properties")
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) FindByOwner(ctx context.Context, ownerID string, offset, limit int) ([]models.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Property{}).Where("owner_id = ?", ownerID)

	start := time.Now()
	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RecordDBOperation("count", "properties", start)
		utils.RecordDBError("count", "properties")
		return nil, 0, err
	}
	utils.RecordDBOperation("count", "properties", start)

	start = time.Now()
	var properties []models.Property
	err := query.Preload("Address").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&properties).Error
	utils.RecordDBOperation("find", "properties", start)
	if err != nil {
		utils.RecordDBError("find", "properties")
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *models.Property) error {
	start := time.Now()
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(property).Error
	utils.RecordDBOperation("update", "properties", start)
	if err != nil {
		utils.RecordDBError("update", "properties")
		return err
	}
	return nil
}

func (r *propertyRepository) Deactivate(ctx context.Context, id string) error {
	start := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Property{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	utils.RecordDBOperation("deactivate", "properties", start)
	if result.Error != nil {
		utils.RecordDBError("deactivate", "properties")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
