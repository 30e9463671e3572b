package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/services"
)

type PropertyHandler struct {
	properties *services.PropertyService
}

func NewPropertyHandler(properties *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// ListProperties godoc
// @Summary List active properties
// @Description Get a paginated list of active properties, optionally filtered
// @Tags Properties
// @Accept json
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(10)
// @Param city query string false "Filter by city"
// @Param property_type query string false "APARTMENT or HOUSE"
// @Param sales_type query string false "RENT or SALE"
// @Param min_value query number false "Minimum property value"
// @Param max_value query number false "Maximum property value"
// @Param min_size query number false "Minimum size in square meters"
// @Param max_size query number false "Maximum size in square meters"
// @Param is_pet_allowed query bool false "Filter pet-friendly properties"
// @Success 200 {object} models.PaginatedPropertiesResponse
// @Failure 500 {object} map[string]interface{}
// @Router /properties [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	offset, limit := pageParams(c)

	response, err := h.properties.ListProperties(c.Request.Context(), parsePropertyFilters(c), offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetProperty godoc
// @Summary Get property by ID
// @Description Get a single active property by its ID
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} map[string]interface{}
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	property, err := h.properties.GetProperty(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// CreateProperty godoc
// @Summary Create a new property
// @Description Create a new property listing owned by the authenticated owner
// @Tags Properties
// @Accept json
// @Produce json
// @Param property body models.CreatePropertyRequest true "Property data"
// @Security BearerAuth
// @Success 201 {object} models.Property
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req models.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	property, err := h.properties.CreateProperty(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty godoc
// @Summary Update a property
// @Description Replace the mutable fields of a property the caller owns
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param property body models.UpdatePropertyRequest true "Property data"
// @Security BearerAuth
// @Success 200 {object} models.Property
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req models.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	property, err := h.properties.UpdateProperty(c.Request.Context(), c.GetString("user_id"), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.properties.DeleteProperty(c.Request.Context(), c.GetString("user_id"), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListOwnProperties godoc
// @Summary List the caller's properties
// @Description Get the authenticated owner's properties, active and inactive
// @Tags Owner
// @Accept json
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(10)
// @Security BearerAuth
// @Success 200 {object} models.PaginatedPropertiesResponse
// @Failure 401 {object} map[string]interface{}
// @Router /my-properties [get]
func (h *PropertyHandler) ListOwnProperties(c *gin.Context) {
	offset, limit := pageParams(c)

	response, err := h.properties.ListOwnProperties(c.Request.Context(), c.GetString("user_id"), offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func parsePropertyFilters(c *gin.Context) repositories.PropertyFilters {
	filters := repositories.PropertyFilters{
		City:         c.Query("city"),
		PropertyType: c.Query("property_type"),
		SalesType:    c.Query("sales_type"),
	}
	if v, err := strconv.ParseFloat(c.Query("min_value"), 64); err == nil {
		filters.MinValue = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_value"), 64); err == nil {
		filters.MaxValue = &v
	}
	if v, err := strconv.ParseFloat(c.Query("min_size"), 64); err == nil {
		filters.MinSize = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_size"), 64); err == nil {
		filters.MaxSize = &v
	}
	if v, err := strconv.ParseBool(c.Query("is_pet_allowed")); err == nil {
		filters.IsPetAllowed = &v
	}
	return filters
}
