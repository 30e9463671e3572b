package services

import (
	"context"

	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/utils"
)

// RelationService answers the service-to-service question "has this user
// ever engaged with this owner's properties". It reads current state on
// every call; results are never cached or persisted.
type RelationService struct {
	visits    repositories.VisitRepository
	proposals repositories.ProposalRepository
}

func NewRelationService(visits repositories.VisitRepository, proposals repositories.ProposalRepository) *RelationService {
	return &RelationService{visits: visits, proposals: proposals}
}

// ComputeRelation reports whether any non-cancelled visit or any
// non-withdrawn proposal links the user to a property of the owner.
// HasRelation is exactly HasVisit || HasProposal.
func (s *RelationService) ComputeRelation(ctx context.Context, userID, ownerID string) (*models.RelationCheckResponse, error) {
	hasVisit, err := s.visits.ExistsForUserAndOwner(ctx, userID, ownerID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "check visit relation", "user_id", userID, "owner_id", ownerID)
	}

	hasProposal, err := s.proposals.ExistsForUserAndOwner(ctx, userID, ownerID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "check proposal relation", "user_id", userID, "owner_id", ownerID)
	}

	return &models.RelationCheckResponse{
		HasRelation: hasVisit || hasProposal,
		HasVisit:    hasVisit,
		HasProposal: hasProposal,
		UserID:      userID,
		OwnerID:     ownerID,
	}, nil
}
