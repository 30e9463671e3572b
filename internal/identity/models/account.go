package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account roles. Registration accepts USER and PROPERTY_OWNER; ADMIN accounts
// are created by other admins.
const (
	RoleUser          = "USER"
	RolePropertyOwner = "PROPERTY_OWNER"
	RoleAdmin         = "ADMIN"
)

// Account is a stored identity. Username and email are persisted lowercase so
// uniqueness is case-insensitive. Password holds the bcrypt hash and never
// serializes.
type Account struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	FullName    string    `gorm:"type:varchar(100);not null" json:"fullName"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PhoneNumber string    `gorm:"type:varchar(20);not null" json:"phoneNumber"`
	Password    string    `gorm:"type:varchar(100);not null" json:"-"`
	Role        string    `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RolePropertyOwner, RoleAdmin:
		return true
	}
	return false
}
