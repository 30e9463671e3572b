package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProposalStatusPending   = "pending"
	ProposalStatusAccepted  = "accepted"
	ProposalStatusRejected  = "rejected"
	ProposalStatusWithdrawn = "withdrawn"

	MaxProposalValue = 99999999.99

	// proposals lapse a month after creation unless responded to.
	ProposalLifetime = 30 * 24 * time.Hour
)

// Proposal is a financial offer from a user on a property, the same opaque
// cross-service shape as Visit.
type Proposal struct {
	ID              string     `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID      string     `gorm:"type:uuid;not null;index" json:"propertyId"`
	Property        *Property  `gorm:"foreignKey:PropertyID" json:"-"`
	UserID          string     `gorm:"type:uuid;not null;index" json:"userId"`
	ProposalValue   float64    `gorm:"type:decimal(10,2);not null" json:"proposalValue"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message         string     `gorm:"type:varchar(1000)" json:"message,omitempty"`
	ResponseMessage string     `gorm:"type:varchar(500)" json:"responseMessage,omitempty"`
	ResponseDate    *time.Time `json:"responseDate,omitempty"`
	ExpiresAt       time.Time  `gorm:"not null" json:"expiresAt"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Proposal) TableName() string {
	return "proposals"
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ExpiresAt.IsZero() {
		p.ExpiresAt = time.Now().Add(ProposalLifetime)
	}
	return nil
}

func (p *Proposal) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// owner responses and proposer withdrawal are valid only while the proposal
// is pending and unexpired.
func (p *Proposal) CanTransition(now time.Time) bool {
	return p.Status == ProposalStatusPending && !p.IsExpired(now)
}
