package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PropertyTypeApartment = "APARTMENT"
	PropertyTypeHouse     = "HOUSE"

	SalesTypeRent = "RENT"
	SalesTypeSale = "SALE"
)

// Property is a listing owned by exactly one owner identity. OwnerID is an
// opaque reference into the identity service, not a local foreign key.
type Property struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        string    `gorm:"type:uuid;not null;index" json:"ownerId"`
	AddressID      string    `gorm:"type:uuid;not null" json:"-"`
	Address        Address   `gorm:"foreignKey:AddressID" json:"address"`
	PropertyType   string    `gorm:"type:varchar(20);not null" json:"propertyType"`
	SalesType      string    `gorm:"type:varchar(20);not null" json:"salesType"`
	PropertySize   float64   `gorm:"type:decimal(10,2);not null" json:"propertySize"`
	PropertyValue  float64   `gorm:"type:decimal(10,2);not null" json:"propertyValue"`
	Description    string    `gorm:"type:varchar(1000);not null" json:"description"`
	PublishDate    time.Time `gorm:"not null" json:"publishDate"`
	CondominiumFee float64   `gorm:"type:decimal(10,2);not null;default:0" json:"condominiumFee"`
	CommonArea     bool      `gorm:"not null;default:false" json:"commonArea"`
	Floor          *int      `json:"floor,omitempty"`
	IsPetAllowed   bool      `gorm:"not null;default:false" json:"isPetAllowed"`
	LandPrice      *float64  `gorm:"type:decimal(10,2)" json:"landPrice,omitempty"`
	IsSingleHouse  *bool     `json:"isSingleHouse,omitempty"`
	IsActive       bool      `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Property) TableName() string {
	return "properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Address belongs 1:1 to a property and is managed through it.
type Address struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"-"`
	Street     string    `gorm:"type:varchar(200);not null" json:"street"`
	Number     string    `gorm:"type:varchar(20);not null" json:"number"`
	City       string    `gorm:"type:varchar(100);not null;index" json:"city"`
	PostalCode string    `gorm:"type:varchar(8);not null" json:"postalCode"`
	Country    string    `gorm:"type:varchar(100);not null;default:'Brazil'" json:"country"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
