package services

import (
	"context"
	"time"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/utils"
	"casavista-listings/internal/validators"
)

type ProposalService struct {
	proposals  repositories.ProposalRepository
	properties repositories.PropertyRepository
	validator  validators.ProposalValidator
}

func NewProposalService(
	proposals repositories.ProposalRepository,
	properties repositories.PropertyRepository,
	validator validators.ProposalValidator,
) *ProposalService {
	return &ProposalService{
		proposals:  proposals,
		properties: properties,
		validator:  validator,
	}
}

func (s *ProposalService) CreateProposal(ctx context.Context, userID string, req *models.CreateProposalRequest) (*models.Proposal, error) {
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
	}

	property, err := s.properties.FindActiveByID(ctx, req.PropertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property for proposal", "property_id", req.PropertyID)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found or inactive", apperrors.MsgPropertyNotFound)
	}
	if property.OwnerID == userID {
		return nil, apperrors.NewValidationError(
			"proposal made on caller's own property",
			"You cannot make a proposal on your own property.", nil)
	}

	pending, err := s.proposals.ExistsPending(ctx, userID, req.PropertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "check pending proposal", "property_id", req.PropertyID)
	}
	if pending {
		return nil, apperrors.NewConflictError(
			"pending proposal already exists for user and property",
			"You already have a pending proposal for this property.")
	}

	proposal := &models.Proposal{
		PropertyID:    req.PropertyID,
		UserID:        userID,
		ProposalValue: req.ProposalValue,
		Status:        models.ProposalStatusPending,
		Message:       req.Message,
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, utils.LogAndMapError(err, "create proposal", "property_id", req.PropertyID)
	}
	return proposal, nil
}

// GetProposal is readable by the proposer and by the owner of the property
// it targets.
func (s *ProposalService) GetProposal(ctx context.Context, callerID, id string) (*models.Proposal, error) {
	proposal, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load proposal", "proposal_id", id)
	}
	if proposal == nil {
		return nil, apperrors.NewNotFoundError("proposal not found", apperrors.MsgProposalNotFound)
	}
	if !canAccessProposal(proposal, callerID) {
		return nil, apperrors.NewAuthorizationError("caller is neither proposer nor property owner")
	}
	return proposal, nil
}

// RespondToProposal is the owner accepting or rejecting a pending,
// unexpired proposal.
func (s *ProposalService) RespondToProposal(ctx context.Context, ownerID, id, status, message string) (*models.Proposal, error) {
	if status != models.ProposalStatusAccepted && status != models.ProposalStatusRejected {
		return nil, apperrors.NewValidationError("invalid response status "+status, apperrors.MsgInvalidParameters, nil)
	}

	proposal, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load proposal for response", "proposal_id", id)
	}
	if proposal == nil {
		return nil, apperrors.NewNotFoundError("proposal not found", apperrors.MsgProposalNotFound)
	}
	if proposal.Property == nil || proposal.Property.OwnerID != ownerID {
		return nil, apperrors.NewAuthorizationError("caller does not own the targeted property")
	}
	if !proposal.CanTransition(time.Now()) {
		return nil, apperrors.NewConflictError(
			"proposal is not pending or has expired",
			"This proposal can no longer be responded to.")
	}

	now := time.Now().UTC()
	proposal.Status = status
	proposal.ResponseMessage = message
	proposal.ResponseDate = &now
	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, utils.LogAndMapError(err, "respond to proposal", "proposal_id", id)
	}
	return proposal, nil
}

// WithdrawProposal is the proposer taking back a pending, unexpired
// proposal. Withdrawn proposals stop counting toward the relation check.
func (s *ProposalService) WithdrawProposal(ctx context.Context, userID, id string) (*models.Proposal, error) {
	proposal, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load proposal for withdrawal", "proposal_id", id)
	}
	if proposal == nil {
		return nil, apperrors.NewNotFoundError("proposal not found", apperrors.MsgProposalNotFound)
	}
	if proposal.UserID != userID {
		return nil, apperrors.NewAuthorizationError("proposal belongs to another user")
	}
	if !proposal.CanTransition(time.Now()) {
		return nil, apperrors.NewConflictError(
			"proposal is not pending or has expired",
			"This proposal can no longer be withdrawn.")
	}

	proposal.Status = models.ProposalStatusWithdrawn
	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, utils.LogAndMapError(err, "withdraw proposal", "proposal_id", id)
	}
	return proposal, nil
}

func (s *ProposalService) ListOwnProposals(ctx context.Context, userID string, offset, limit int, baseURL string) (*models.PaginatedProposalsResponse, error) {
	offset, limit = utils.ClampPageParams(offset, limit)

	proposals, total, err := s.proposals.FindByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list proposals", "user_id", userID)
	}
	return &models.PaginatedProposalsResponse{
		Data: proposals,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, nil),
	}, nil
}

// ListPropertyProposals shows every offer on one property to its owner.
func (s *ProposalService) ListPropertyProposals(ctx context.Context, ownerID, propertyID string, offset, limit int, baseURL string) (*models.PaginatedProposalsResponse, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property for proposal listing", "property_id", propertyID)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found", apperrors.MsgPropertyNotFound)
	}
	if property.OwnerID != ownerID {
		return nil, apperrors.NewAuthorizationError("property belongs to another owner")
	}

	offset, limit = utils.ClampPageParams(offset, limit)
	proposals, total, err := s.proposals.FindByProperty(ctx, propertyID, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list property proposals", "property_id", propertyID)
	}
	return &models.PaginatedProposalsResponse{
		Data: proposals,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, nil),
	}, nil
}

func canAccessProposal(proposal *models.Proposal, callerID string) bool {
	if proposal.UserID == callerID {
		return true
	}
	return proposal.Property != nil && proposal.Property.OwnerID == callerID
}
