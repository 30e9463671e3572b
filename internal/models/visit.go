package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxVisitAdvance is how far ahead a visit may be scheduled.
const MaxVisitAdvance = 6 * 30 * 24 * time.Hour

// Visit is a scheduling relationship between a user and a property. UserID is
// an opaque identity-service reference. Visits are never hard-deleted by the
// lifecycle transitions; completion and cancellation are one-way.
type Visit struct {
	ID                 string    `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID         string    `gorm:"type:uuid;not null;index" json:"propertyId"`
	Property           *Property `gorm:"foreignKey:PropertyID" json:"-"`
	UserID             string    `gorm:"type:uuid;not null;index" json:"userId"`
	VisitDate          time.Time `gorm:"not null" json:"visitDate"`
	IsVisitCompleted   bool      `gorm:"not null;default:false" json:"isVisitCompleted"`
	Cancelled          bool      `gorm:"not null;default:false" json:"cancelled"`
	Notes              string    `gorm:"type:varchar(500)" json:"notes,omitempty"`
	CancellationReason string    `gorm:"type:varchar(200)" json:"cancellationReason,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Visit) TableName() string {
	return "visits"
}

func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Pending means neither completed nor cancelled.
func (v *Visit) IsPending() bool {
	return !v.IsVisitCompleted && !v.Cancelled
}

// a visit can be completed once its scheduled time has passed.
func (v *Visit) CanBeCompleted(now time.Time) bool {
	return v.IsPending() && !v.VisitDate.After(now)
}

func (v *Visit) CanBeCancelled() bool {
	return v.IsPending()
}

// reschedule and note edits are allowed only while pending.
func (v *Visit) CanBeUpdated() bool {
	return v.IsPending()
}
