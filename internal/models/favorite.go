package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite bookmarks a property for a user, at most once per pair.
type Favorite struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property" json:"userId"`
	PropertyID string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property" json:"propertyId"`
	Property   *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
