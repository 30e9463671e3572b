package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casavista-listings/internal/services"
)

type FavoriteHandler struct {
	favorites *services.FavoriteService
}

func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// AddFavorite godoc
// @Summary Favorite a property
// @Description Bookmark an active property for the caller
// @Tags Favorites
// @Accept json
// @Produce json
// @Param propertyId path string true "Property ID"
// @Security BearerAuth
// @Success 201 {object} models.Favorite
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /favorites/{propertyId} [post]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	propertyID, err := uuidParam(c, "propertyId")
	if err != nil {
		c.Error(err)
		return
	}

	favorite, err := h.favorites.AddFavorite(c.Request.Context(), c.GetString("user_id"), propertyID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	propertyID, err := uuidParam(c, "propertyId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.favorites.RemoveFavorite(c.Request.Context(), c.GetString("user_id"), propertyID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFavorites godoc
// @Summary List the caller's favorites
// @Description Get the caller's bookmarked properties, newest first
// @Tags Favorites
// @Accept json
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(10)
// @Security BearerAuth
// @Success 200 {object} models.PaginatedFavoritesResponse
// @Failure 401 {object} map[string]interface{}
// @Router /favorites/my-favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	offset, limit := pageParams(c)

	response, err := h.favorites.ListFavorites(c.Request.Context(), c.GetString("user_id"), offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}
