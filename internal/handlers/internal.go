package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/services"
)

// InternalHandler hosts the service-to-service surface. Routes using it sit
// behind the shared-secret middleware, never behind user sessions.
type InternalHandler struct {
	relations *services.RelationService
}

func NewInternalHandler(relations *services.RelationService) *InternalHandler {
	return &InternalHandler{relations: relations}
}

// CheckUserPropertyRelation godoc
// @Summary Check a user-owner relationship
// @Description Report whether the user has a non-cancelled visit or non-withdrawn proposal on any of the owner's properties
// @Tags Internal
// @Accept json
// @Produce json
// @Param user_id query string true "User ID"
// @Param owner_id query string true "Owner ID"
// @Param X-Internal-Secret header string true "Shared service secret"
// @Success 200 {object} models.RelationCheckResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /internal/check-user-property-relation [get]
func (h *InternalHandler) CheckUserPropertyRelation(c *gin.Context) {
	userID := c.Query("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		c.Error(apperrors.NewValidationError("malformed user_id "+userID, apperrors.MsgInvalidParameters, err))
		return
	}
	ownerID := c.Query("owner_id")
	if _, err := uuid.Parse(ownerID); err != nil {
		c.Error(apperrors.NewValidationError("malformed owner_id "+ownerID, apperrors.MsgInvalidParameters, err))
		return
	}

	relation, err := h.relations.ComputeRelation(c.Request.Context(), userID, ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, relation)
}
