package repositories

import (
	"context"
	"time"

	"casavista-listings/internal/models"
	"casavista-listings/internal/utils"

	"gorm.io/gorm"
)

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(ctx context.Context, visit *models.Visit) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(visit).Error
	utils.RecordDBOperation("insert", "visits", start)
	if err != nil {
		utils.RecordDBError("insert", "visits")
		return err
	}
	return nil
}

func (r *visitRepository) FindByID(ctx context.Context, id string) (*models.Visit, error) {
	start := time.Now()
	var visit models.Visit
	err := r.db.WithContext(ctx).Preload("Property").First(&visit, "id = ?", id).Error
	utils.RecordDBOperation("find_one", "visits", start)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		utils.RecordDBError("find_one", "visits")
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) Update(ctx context.Context, visit *models.Visit) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Omit("Property").Save(visit).Error
	utils.RecordDBOperation("update", "visits", start)
	if err != nil {
		utils.RecordDBError("update", "visits")
		return err
	}
	return nil
}

func (r *visitRepository) FindByUser(ctx context.Context, userID string, includeCompleted, includeCancelled bool, offset, limit int) ([]models.Visit, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Visit{}).Where("user_id = ?", userID)
	if !includeCompleted {
		query = query.Where("is_visit_completed = ?", false)
	}
	if !includeCancelled {
		query = query.Where("cancelled = ?", false)
	}
	return r.page(query, "visit_date DESC", offset, limit)
}

func (r *visitRepository) FindUpcomingByUser(ctx context.Context, userID string, after time.Time, offset, limit int) ([]models.Visit, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Visit{}).
		Where("user_id = ? AND is_visit_completed = ? AND cancelled = ? AND visit_date > ?",
			userID, false, false, after)
	return r.page(query, "visit_date ASC", offset, limit)
}

func (r *visitRepository) FindByProperty(ctx context.Context, propertyID string, offset, limit int) ([]models.Visit, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Visit{}).Where("property_id = ?", propertyID)
	return r.page(query, "visit_date DESC", offset, limit)
}

func (r *visitRepository) FindByPropertyOwner(ctx context.Context, ownerID string, offset, limit int) ([]models.Visit, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Visit{}).
		Joins("JOIN properties ON properties.id = visits.property_id").
		Where("properties.owner_id = ?", ownerID)
	return r.page(query, "visits.visit_date DESC", offset, limit)
}

// ExistsPending reports whether the user already has an open visit on the
// property. One open visit per (user, property) at a time.
func (r *visitRepository) ExistsPending(ctx context.Context, userID, propertyID string) (bool, error) {
	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Visit{}).
		Where("user_id = ? AND property_id = ? AND is_visit_completed = ? AND cancelled = ?",
			userID, propertyID, false, false).
		Count(&count).Error
	utils.RecordDBOperation("exists_pending", "visits", start)
	if err != nil {
		utils.RecordDBError("exists_pending", "visits")
		return false, err
	}
	return count > 0, nil
}

// ExistsForUserAndOwner reports whether the user has any non-cancelled visit
// on any property of the owner. The property's active flag is irrelevant
// here: a relationship formed on a later-deactivated listing still counts.
func (r *visitRepository) ExistsForUserAndOwner(ctx context.Context, userID, ownerID string) (bool, error) {
	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Visit{}).
		Joins("JOIN properties ON properties.id = visits.property_id").
		Where("visits.user_id = ? AND properties.owner_id = ? AND visits.cancelled = ?",
			userID, ownerID, false).
		Count(&count).Error
	utils.RecordDBOperation("exists_relation", "visits", start)
	if err != nil {
		utils.RecordDBError("exists_relation", "visits")
		return false, err
	}
	return count > 0, nil
}

func (r *visitRepository) page(query *gorm.DB, order string, offset, limit int) ([]models.Visit, int64, error) {
	start := time.Now()
	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RecordDBOperation("count", "visits", start)
		utils.RecordDBError("count", "visits")
		return nil, 0, err
	}
	utils.RecordDBOperation("count", "visits", start)

	start = time.Now()
	var visits []models.Visit
	err := query.Preload("Property").Order(order).Offset(offset).Limit(limit).Find(&visits).Error
	utils.RecordDBOperation("find", "visits", start)
	if err != nil {
		utils.RecordDBError("find", "visits")
		return nil, 0, err
	}
	return visits, total, nil
}
