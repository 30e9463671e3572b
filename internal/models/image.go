package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// MaxImageSize is the upload ceiling for a single image.
	MaxImageSize = 5 * 1024 * 1024
	// MaxImagesPerProperty bounds the display_order range.
	MaxImagesPerProperty = 15
)

// AllowedImageTypes are the content types accepted for property images.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// PropertyImage stores the binary image alongside its metadata. Bytes are
// kept out of JSON; the raw-image endpoint serves them with ContentType.
type PropertyImage struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID   string    `gorm:"type:uuid;not null;index" json:"propertyId"`
	ImageData    []byte    `gorm:"type:bytea;not null" json:"-"`
	ContentType  string    `gorm:"type:varchar(30);not null" json:"contentType"`
	FileName     string    `gorm:"type:varchar(255)" json:"fileName"`
	FileSize     int64     `gorm:"not null" json:"fileSize"`
	DisplayOrder int       `gorm:"not null" json:"displayOrder"`
	IsPrimary    bool      `gorm:"not null;default:false" json:"isPrimary"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}

func (i *PropertyImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
