package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casavista-listings/internal/services"
)

// OwnerHandler serves the property owner's dashboards, which lean on the
// identity service for visitor and proposer profiles.
type OwnerHandler struct {
	listings *services.OwnerListingService
}

func NewOwnerHandler(listings *services.OwnerListingService) *OwnerHandler {
	return &OwnerHandler{listings: listings}
}

// ListIncomingVisits godoc
// @Summary List visits across the caller's properties
// @Description Get every visit booked on the owner's properties, each with the visitor's profile when available
// @Tags Owner
// @Accept json
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(10)
// @Security BearerAuth
// @Success 200 {object} models.PaginatedOwnerVisitsResponse
// @Failure 401 {object} map[string]interface{}
// @Router /my-properties/visits [get]
func (h *OwnerHandler) ListIncomingVisits(c *gin.Context) {
	offset, limit := pageParams(c)

	response, err := h.listings.ListIncomingVisits(c.Request.Context(), c.GetString("user_id"), c.GetString("access_token"), offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// ListIncomingProposals godoc
// @Summary List proposals across the caller's properties
// @Description Get every proposal on the owner's properties, each with the proposer's profile when available
// @Tags Owner
// @Accept json
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(10)
// @Security BearerAuth
// @Success 200 {object} models.PaginatedOwnerProposalsResponse
// @Failure 401 {object} map[string]interface{}
// @Router /my-properties/proposals [get]
func (h *OwnerHandler) ListIncomingProposals(c *gin.Context) {
	offset, limit := pageParams(c)

	response, err := h.listings.ListIncomingProposals(c.Request.Context(), c.GetString("user_id"), c.GetString("access_token"), offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}
