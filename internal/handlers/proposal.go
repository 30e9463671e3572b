package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casavista-listings/internal/models"
	"casavista-listings/internal/services"
)

type ProposalHandler struct {
	proposals *services.ProposalService
}

func NewProposalHandler(proposals *services.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

// CreateProposal godoc
// @Summary Make a proposal
// @Description Submit a financial offer on an active property owned by someone else
// @Tags Proposals
// @Accept json
// @Produce json
// @Param proposal body models.CreateProposalRequest true "Proposal data"
// @Security BearerAuth
// @Success 201 {object} models.Proposal
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /proposals [post]
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var req models.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	proposal, err := h.proposals.CreateProposal(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, proposal)
}

// ListOwnProposals godoc
// @Summary List the caller's proposals
// @Description Get every proposal the caller has made, newest first
// @Tags Proposals
// @Accept json
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination" default(10)
// @Security BearerAuth
// @Success 200 {object} models.PaginatedProposalsResponse
// @Failure 401 {object} map[string]interface{}
// @Router /proposals/my-proposals [get]
func (h *ProposalHandler) ListOwnProposals(c *gin.Context) {
	offset, limit := pageParams(c)

	response, err := h.proposals.ListOwnProposals(c.Request.Context(), c.GetString("user_id"), offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	proposal, err := h.proposals.GetProposal(c.Request.Context(), c.GetString("user_id"), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

// AcceptProposal godoc
// @Summary Accept a proposal
// @Description Property owner accepts a pending, unexpired proposal
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param response body models.RespondProposalRequest false "Response message"
// @Security BearerAuth
// @Success 200 {object} models.Proposal
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /proposals/{id}/accept [post]
func (h *ProposalHandler) AcceptProposal(c *gin.Context) {
	h.respond(c, models.ProposalStatusAccepted)
}

// RejectProposal godoc
// @Summary Reject a proposal
// @Description Property owner rejects a pending, unexpired proposal
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param response body models.RespondProposalRequest false "Response message"
// @Security BearerAuth
// @Success 200 {object} models.Proposal
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /proposals/{id}/reject [post]
func (h *ProposalHandler) RejectProposal(c *gin.Context) {
	h.respond(c, models.ProposalStatusRejected)
}

func (h *ProposalHandler) respond(c *gin.Context, status string) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req models.RespondProposalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(bindingError(err))
			return
		}
	}

	proposal, err := h.proposals.RespondToProposal(c.Request.Context(), c.GetString("user_id"), id, status, req.ResponseMessage)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

// WithdrawProposal godoc
// @Summary Withdraw a proposal
// @Description Proposer takes back a pending proposal; it stops counting as a relationship
// @Tags Proposals
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Security BearerAuth
// @Success 200 {object} models.Proposal
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /proposals/{id}/withdraw [post]
func (h *ProposalHandler) WithdrawProposal(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	proposal, err := h.proposals.WithdrawProposal(c.Request.Context(), c.GetString("user_id"), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (h *ProposalHandler) ListPropertyProposals(c *gin.Context) {
	propertyID, err := uuidParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	offset, limit := pageParams(c)
	response, err := h.proposals.ListPropertyProposals(c.Request.Context(), c.GetString("user_id"), propertyID, offset, limit, requestBaseURL(c))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}
