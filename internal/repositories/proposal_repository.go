package repositories

import (
	"context"
	"time"

	"casavista-listings/internal/models"
	"casavista-listings/internal/utils"

	"gorm.io/gorm"
)

type proposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(proposal).Error
	utils.RecordDBOperation("insert", "proposals", start)
	if err != nil {
		utils.RecordDBError("insert", "proposals")
		return err
	}
	return nil
}

func (r *proposalRepository) FindByID(ctx context.Context, id string) (*models.Proposal, error) {
	start := time.Now()
	var proposal models.Proposal
	err := r.db.WithContext(ctx).Preload("Property").First(&proposal, "id = ?", id).Error
	utils.RecordDBOperation("find_one", "proposals", start)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		utils.RecordDBError("find_one", "proposals")
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepository) Update(ctx context.Context, proposal *models.Proposal) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Omit("Property").Save(proposal).Error
	utils.RecordDBOperation("update", "proposals", start)
	if err != nil {
		utils.RecordDBError("update", "proposals")
		return err
	}
	return nil
}

func (r *proposalRepository) FindByUser(ctx context.Context, userID string, offset, limit int) ([]models.Proposal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Proposal{}).Where("user_id = ?", userID)
	return r.page(query, "created_at DESC", offset, limit)
}

func (r *proposalRepository) FindByProperty(ctx context.Context, propertyID string, offset, limit int) ([]models.Proposal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Proposal{}).Where("property_id = ?", propertyID)
	return r.page(query, "created_at DESC", offset, limit)
}

func (r *proposalRepository) FindByPropertyOwner(ctx context.Context, ownerID string, offset, limit int) ([]models.Proposal, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Proposal{}).
		Joins("JOIN properties ON properties.id = proposals.property_id").
		Where("properties.owner_id = ?", ownerID)
	return r.page(query, "proposals.created_at DESC", offset, limit)
}

func (r *proposalRepository) ExistsPending(ctx context.Context, userID, propertyID string) (bool, error) {
	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Proposal{}).
		Where("user_id = ? AND property_id = ? AND status = ?",
			userID, propertyID, models.ProposalStatusPending).
		Count(&count).Error
	utils.RecordDBOperation("exists_pending", "proposals", start)
	if err != nil {
		utils.RecordDBError("exists_pending", "proposals")
		return false, err
	}
	return count > 0, nil
}

// ExistsForUserAndOwner reports whether the user has any non-withdrawn
// proposal on any property of the owner. Accepted, rejected and pending all
// evidence a relationship; withdrawal is the proposal-side cancellation.
func (r *proposalRepository) ExistsForUserAndOwner(ctx context.Context, userID, ownerID string) (bool, error) {
	start := time.Now()
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Proposal{}).
		Joins("JOIN properties ON properties.id = proposals.property_id").
		Where("proposals.user_id = ? AND properties.owner_id = ? AND proposals.status <> ?",
			userID, ownerID, models.ProposalStatusWithdrawn).
		Count(&count).Error
	utils.RecordDBOperation("exists_relation", "proposals", start)
	if err != nil {
		utils.RecordDBError("exists_relation", "proposals")
		return false, err
	}
	return count > 0, nil
}

func (r *proposalRepository) page(query *gorm.DB, order string, offset, limit int) ([]models.Proposal, int64, error) {
	start := time.Now()
	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RecordDBOperation("count", "proposals", start)
		utils.RecordDBError("count", "proposals")
		return nil, 0, err
	}
	utils.RecordDBOperation("count", "proposals", start)

	start = time.Now()
	var proposals []models.Proposal
	err := query.Preload("Property").Order(order).Offset(offset).Limit(limit).Find(&proposals).Error
	utils.RecordDBOperation("find", "proposals", start)
	if err != nil {
		utils.RecordDBError("find", "proposals")
		return nil, 0, err
	}
	return proposals, total, nil
}
