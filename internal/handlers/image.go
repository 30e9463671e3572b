package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/models"
	"casavista-listings/internal/services"
)

type ImageHandler struct {
	images *services.ImageService
}

func NewImageHandler(images *services.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// UploadImage godoc
// @Summary Upload a property image
// @Description Attach a JPEG, PNG or WebP image of up to 5 MB to a property the caller owns
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Property ID"
// @Param image formData file true "Image file"
// @Security BearerAuth
// @Success 201 {object} models.PropertyImage
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /properties/{id}/images [post]
func (h *ImageHandler) UploadImage(c *gin.Context) {
	propertyID, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.Error(apperrors.NewValidationError("missing image form field", apperrors.MsgInvalidParameters, err))
		return
	}
	// Size gate before the payload is pulled into memory.
	if fileHeader.Size > models.MaxImageSize {
		c.Error(apperrors.NewValidationError("image exceeds size limit", "Images must be 5 MB or smaller.", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(err)
		return
	}

	image, err := h.images.UploadImage(c.Request.Context(), c.GetString("user_id"), propertyID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, image)
}

// ListImages godoc
// @Summary List property images
// @Description Get image metadata for an active property, display order ascending
// @Tags Images
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {array} models.PropertyImage
// @Failure 404 {object} map[string]interface{}
// @Router /properties/{id}/images [get]
func (h *ImageHandler) ListImages(c *gin.Context) {
	propertyID, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	images, err := h.images.ListImages(c.Request.Context(), propertyID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, images)
}

// GetImage godoc
// @Summary Download a property image
// @Description Serve the raw image bytes with their stored content type
// @Tags Images
// @Produce image/jpeg
// @Param id path string true "Property ID"
// @Param imageId path string true "Image ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /properties/{id}/images/{imageId} [get]
func (h *ImageHandler) GetImage(c *gin.Context) {
	propertyID, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	imageID, err := uuidParam(c, "imageId")
	if err != nil {
		c.Error(err)
		return
	}

	image, err := h.images.GetImage(c.Request.Context(), propertyID, imageID)
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, image.ContentType, image.ImageData)
}

func (h *ImageHandler) SetPrimaryImage(c *gin.Context) {
	propertyID, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	imageID, err := uuidParam(c, "imageId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.images.SetPrimaryImage(c.Request.Context(), c.GetString("user_id"), propertyID, imageID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	propertyID, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	imageID, err := uuidParam(c, "imageId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.images.DeleteImage(c.Request.Context(), c.GetString("user_id"), propertyID, imageID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
