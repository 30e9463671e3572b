package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/identity/services"
)

type UserHandler struct {
	accounts *services.AccountService
	lookups  *services.UserLookupService
}

func NewUserHandler(accounts *services.AccountService, lookups *services.UserLookupService) *UserHandler {
	return &UserHandler{accounts: accounts, lookups: lookups}
}

// CreateUser godoc
// @Summary Create an account
// @Description Create an account with any role
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param account body models.CreateAccountRequest true "Account data"
// @Success 201 {object} models.AccountResponse
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	account, err := h.accounts.CreateAccount(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// ListUsers godoc
// @Summary List accounts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(10)
// @Success 200 {object} models.PaginatedAccountsResponse
// @Failure 403 {object} map[string]interface{}
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	offset, limit := pageParams(c)

	response, err := h.accounts.ListAccounts(c.Request.Context(), offset, limit, requestBaseURL(c), c.Request.URL.Query())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetUser godoc
// @Summary Look up a user profile
// @Description Admins read anyone; property owners read themselves and users related to their properties
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.AccountResponse
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	profile, err := h.lookups.GetUserForCaller(c.Request.Context(), c.GetString("user_id"), c.GetString("user_role"), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateUser godoc
// @Summary Update an account
// @Description Admins edit anyone; account holders edit their own non-role fields
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param account body models.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} models.AccountResponse
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	account, err := h.accounts.UpdateAccount(c.Request.Context(), c.GetString("user_id"), c.GetString("user_role"), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// ChangePassword godoc
// @Summary Change an account password
// @Tags Users
// @Accept json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param passwords body models.ChangePasswordRequest true "Current and new password"
// @Success 204
// @Failure 403 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /admin/users/{id}/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	if err := h.accounts.ChangePassword(c.Request.Context(), c.GetString("user_id"), c.GetString("user_role"), id, &req); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.accounts.DeactivateAccount(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
