package repositories

import (
	"context"
	"strings"
	"time"

	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/utils"

	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(account).Error
	utils.RecordDBOperation("insert", "accounts", start)
	if err != nil {
		utils.RecordDBError("insert", "accounts")
		return err
	}
	return nil
}

func (r *accountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *accountRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.Account, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	return r.findOne(ctx, "username = ? OR email = ?", identifier, identifier)
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return r.findOne(ctx, "username = ?", strings.ToLower(username))
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, "email = ?", strings.ToLower(email))
}

func (r *accountRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Account, error) {
	start := time.Now()
	var account models.Account
	err := r.db.WithContext(ctx).Where(query, args...).First(&account).Error
	utils.RecordDBOperation("find_one", "accounts", start)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		utils.RecordDBError("find_one", "accounts")
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) List(ctx context.Context, offset, limit int) ([]models.Account, int64, error) {
	start := time.Now()
	query := r.db.WithContext(ctx).Model(&models.Account{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RecordDBError("count", "accounts")
		return nil, 0, err
	}

	var accounts []models.Account
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&accounts).Error
	utils.RecordDBOperation("find_many", "accounts", start)
	if err != nil {
		utils.RecordDBError("find_many", "accounts")
		return nil, 0, err
	}
	return accounts, total, nil
}

func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Save(account).Error
	utils.RecordDBOperation("update", "accounts", start)
	if err != nil {
		utils.RecordDBError("update", "accounts")
		return err
	}
	return nil
}

func (r *accountRepository) Deactivate(ctx context.Context, id string) error {
	start := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Update("is_active", false)
	utils.RecordDBOperation("update", "accounts", start)
	if result.Error != nil {
		utils.RecordDBError("update", "accounts")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
