package services

import (
	"context"
	"fmt"
	"strings"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/utils"
)

type ImageService struct {
	images     repositories.ImageRepository
	properties repositories.PropertyRepository
}

func NewImageService(images repositories.ImageRepository, properties repositories.PropertyRepository) *ImageService {
	return &ImageService{images: images, properties: properties}
}

// UploadImage stores a new image for a property the caller owns. The first
// image of a property becomes its primary automatically.
func (s *ImageService) UploadImage(ctx context.Context, ownerID, propertyID, fileName, contentType string, data []byte) (*models.PropertyImage, error) {
	property, err := s.requireOwned(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !models.AllowedImageTypes[contentType] {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("unsupported image content type %q", contentType),
			"Only JPEG, PNG and WebP images are accepted.", nil)
	}
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("empty image upload", apperrors.MsgInvalidParameters, nil)
	}
	if len(data) > models.MaxImageSize {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("image of %d bytes exceeds the %d byte limit", len(data), models.MaxImageSize),
			"Images must be 5 MB or smaller.", nil)
	}

	count, err := s.images.CountByProperty(ctx, propertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "count property images", "property_id", propertyID)
	}
	if count >= models.MaxImagesPerProperty {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("property already has %d images", count),
			"This property already has the maximum number of images.")
	}

	order, err := s.images.NextDisplayOrder(ctx, propertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "compute image display order", "property_id", propertyID)
	}

	image := &models.PropertyImage{
		PropertyID:   property.ID,
		ImageData:    data,
		ContentType:  contentType,
		FileName:     fileName,
		FileSize:     int64(len(data)),
		DisplayOrder: order,
		IsPrimary:    count == 0,
	}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, utils.LogAndMapError(err, "store property image", "property_id", propertyID)
	}
	return image, nil
}

// ListImages returns image metadata for an active listing, display order
// ascending. Binary payloads stay in the database.
func (s *ImageService) ListImages(ctx context.Context, propertyID string) ([]models.PropertyImage, error) {
	property, err := s.properties.FindActiveByID(ctx, propertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property for image listing", "property_id", propertyID)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found or inactive", apperrors.MsgPropertyNotFound)
	}

	images, err := s.images.FindMetaByProperty(ctx, propertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list property images", "property_id", propertyID)
	}
	return images, nil
}

// GetImage returns one image with its payload, for serving raw bytes.
func (s *ImageService) GetImage(ctx context.Context, propertyID, imageID string) (*models.PropertyImage, error) {
	property, err := s.properties.FindActiveByID(ctx, propertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property for image", "property_id", propertyID)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found or inactive", apperrors.MsgPropertyNotFound)
	}

	image, err := s.images.FindByID(ctx, propertyID, imageID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property image", "image_id", imageID)
	}
	if image == nil {
		return nil, apperrors.NewNotFoundError("image not found", apperrors.MsgImageNotFound)
	}
	return image, nil
}

func (s *ImageService) SetPrimaryImage(ctx context.Context, ownerID, propertyID, imageID string) error {
	if _, err := s.requireOwned(ctx, ownerID, propertyID); err != nil {
		return err
	}
	if err := s.images.SetPrimary(ctx, propertyID, imageID); err != nil {
		return utils.LogAndMapError(err, "set primary image", "image_id", imageID)
	}
	return nil
}

// DeleteImage removes an image; when the primary goes, the lowest-ordered
// survivor inherits the flag.
func (s *ImageService) DeleteImage(ctx context.Context, ownerID, propertyID, imageID string) error {
	if _, err := s.requireOwned(ctx, ownerID, propertyID); err != nil {
		return err
	}

	image, err := s.images.FindByID(ctx, propertyID, imageID)
	if err != nil {
		return utils.LogAndMapError(err, "load image for delete", "image_id", imageID)
	}
	if image == nil {
		return apperrors.NewNotFoundError("image not found", apperrors.MsgImageNotFound)
	}

	if err := s.images.Delete(ctx, propertyID, imageID); err != nil {
		return utils.LogAndMapError(err, "delete property image", "image_id", imageID)
	}

	if image.IsPrimary {
		remaining, err := s.images.FindMetaByProperty(ctx, propertyID)
		if err != nil {
			return utils.LogAndMapError(err, "load surviving images", "property_id", propertyID)
		}
		if len(remaining) > 0 {
			if err := s.images.SetPrimary(ctx, propertyID, remaining[0].ID); err != nil {
				return utils.LogAndMapError(err, "promote primary image", "property_id", propertyID)
			}
		}
	}
	return nil
}

func (s *ImageService) requireOwned(ctx context.Context, ownerID, propertyID string) (*models.Property, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property for image change", "property_id", propertyID)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found", apperrors.MsgPropertyNotFound)
	}
	if property.OwnerID != ownerID {
		return nil, apperrors.NewAuthorizationError("property belongs to another owner")
	}
	return property, nil
}
