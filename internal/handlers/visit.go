package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"casavista-listings/internal/models"
	"casavista-listings/internal/services"
)

type VisitHandler struct {
	visits *services.VisitService
}

func NewVisitHandler(visits *services.VisitService) *VisitHandler {
	return &VisitHandler{visits: visits}
}

// CreateVisit godoc
// @Summary Schedule a visit
// @Description Book a visit to an active property owned by someone else
// @Tags Visits
// @Accept json
// @Produce json
// @Param visit body models.CreateVisitRequest true "Visit data"
// @Security BearerAuth
// @Success 201 {object} models.Visit
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /visits [post]
func (h *VisitHandler) CreateVisit(c *gin.Context) {
	var req models.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	visit, err := h.visits.CreateVisit(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, visit)
}

// ListOwnVisits godoc
// @Summary List the caller's visits
// @Description Get the caller's visits, pending by default; completed and cancelled on request
// @Tags Visits
// @Accept json
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(10)
// @Param include_completed query bool false "Include completed visits"
// @Param include_cancelled query bool false "Include cancelled visits"
// @Security BearerAuth
// @Success 200 {object} models.PaginatedVisitsResponse
// @Failure 401 {object} map[string]interface{}
// @Router /visits/my-visits [get]
func (h *VisitHandler) ListOwnVisits(c *gin.Context) {
	offset, limit := pageParams(c)
	includeCompleted, _ := strconv.ParseBool(c.DefaultQuery("include_completed", "false"))
	includeCancelled, _ := strconv.ParseBool(c.DefaultQuery("include_cancelled", "false"))

	response, err := h.visits.ListOwnVisits(c.Request.Context(), c.GetString("user_id"), includeCompleted, includeCancelled, offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// ListUpcomingVisits godoc
// @Summary List upcoming visits
// @Description Get the caller's pending future visits, soonest first
// @Tags Visits
// @Accept json
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(10)
// @Security BearerAuth
// @Success 200 {object} models.PaginatedVisitsResponse
// @Failure 401 {object} map[string]interface{}
// @Router /visits/upcoming [get]
func (h *VisitHandler) ListUpcomingVisits(c *gin.Context) {
	offset, limit := pageParams(c)

	response, err := h.visits.ListUpcomingVisits(c.Request.Context(), c.GetString("user_id"), offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *VisitHandler) GetVisit(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	visit, err := h.visits.GetVisit(c.Request.Context(), c.GetString("user_id"), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

// UpdateVisit godoc
// @Summary Reschedule a pending visit
// @Description Change the date or notes of a pending visit the caller booked
// @Tags Visits
// @Accept json
// @Produce json
// @Param id path string true "Visit ID"
// @Param visit body models.UpdateVisitRequest true "Fields to change"
// @Security BearerAuth
// @Success 200 {object} models.Visit
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /visits/{id} [put]
func (h *VisitHandler) UpdateVisit(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req models.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	visit, err := h.visits.UpdateVisit(c.Request.Context(), c.GetString("user_id"), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

// CompleteVisit godoc
// @Summary Mark a visit as completed
// @Description Property owner confirms a past pending visit took place
// @Tags Visits
// @Accept json
// @Produce json
// @Param id path string true "Visit ID"
// @Security BearerAuth
// @Success 200 {object} models.Visit
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /visits/{id}/complete [post]
func (h *VisitHandler) CompleteVisit(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	visit, err := h.visits.CompleteVisit(c.Request.Context(), c.GetString("user_id"), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

// CancelVisit godoc
// @Summary Cancel a pending visit
// @Description Either party calls off a pending visit, with an optional reason
// @Tags Visits
// @Accept json
// @Produce json
// @Param id path string true "Visit ID"
// @Param cancellation body models.CancelVisitRequest false "Cancellation reason"
// @Security BearerAuth
// @Success 200 {object} models.Visit
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /visits/{id}/cancel [post]
func (h *VisitHandler) CancelVisit(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req models.CancelVisitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(bindingError(err))
			return
		}
	}

	visit, err := h.visits.CancelVisit(c.Request.Context(), c.GetString("user_id"), id, req.CancellationReason)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, visit)
}

func (h *VisitHandler) ListPropertyVisits(c *gin.Context) {
	propertyID, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	offset, limit := pageParams(c)
	response, err := h.visits.ListPropertyVisits(c.Request.Context(), c.GetString("user_id"), propertyID, offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}
