package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/identity/services"
)

type AuthHandler struct {
	accounts *services.AccountService
	tokens   *services.TokenService
}

func NewAuthHandler(accounts *services.AccountService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens}
}

// Register godoc
// @Summary Register a new account
// @Description Create a USER or PROPERTY_OWNER account and sign it in
// @Tags Authentication
// @Accept json
// @Produce json
// @Param account body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.SessionResponse
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	session, err := h.accounts.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusCreated, session)
}

// Login godoc
// @Summary Sign in
// @Description Authenticate with username or email plus password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.SessionResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	session, err := h.accounts.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, session)
}

// Logout godoc
// @Summary Sign out
// @Description Revoke the current session token and clear the cookie
// @Tags Authentication
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.tokens.Revoke(c.Request.Context(), c.GetString("access_token")); err != nil {
		c.Error(err)
		return
	}

	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Introspect godoc
// @Summary Verify a token
// @Description Report whether a session token is active, with its claims
// @Tags Authentication
// @Accept json
// @Produce json
// @Param token body models.IntrospectRequest true "Token to verify"
// @Success 200 {object} models.IntrospectionResponse
// @Failure 422 {object} map[string]interface{}
// @Router /auth/introspect [post]
func (h *AuthHandler) Introspect(c *gin.Context) {
	var req models.IntrospectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	c.JSON(http.StatusOK, h.tokens.Introspect(c.Request.Context(), req.Token))
}

// Me godoc
// @Summary Own profile
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AccountResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.accounts.Me(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, session *models.SessionResponse) {
	maxAge, _ := strconv.Atoi(session.ExpiresIn)
	c.SetCookie("access_token", session.Token, maxAge, "/", "", false, true)
}
