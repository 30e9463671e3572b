package services

import (
	"context"

	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/utils"
	"casavista-listings/pkg/identityclient"
	"casavista-listings/pkg/logger"
)

// OwnerListingService assembles the owner dashboards: every visit and
// proposal across the owner's properties, each annotated with the
// counterpart's profile from the identity service. Profile lookups ride on
// the owner's own session credential; when one fails the record ships with
// a null user instead of failing the page.
type OwnerListingService struct {
	visits    repositories.VisitRepository
	proposals repositories.ProposalRepository
	identity  *identityclient.Client
}

func NewOwnerListingService(
	visits repositories.VisitRepository,
	proposals repositories.ProposalRepository,
	identity *identityclient.Client,
) *OwnerListingService {
	return &OwnerListingService{
		visits:    visits,
		proposals: proposals,
		identity:  identity,
	}
}

func (s *OwnerListingService) ListIncomingVisits(ctx context.Context, ownerID, credential string, offset, limit int, baseURL string) (*models.PaginatedOwnerVisitsResponse, error) {
	offset, limit = utils.ClampPageParams(offset, limit)

	visits, total, err := s.visits.FindByPropertyOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list incoming visits", "owner_id", ownerID)
	}

	profiles := make(map[string]*identityclient.UserInfo)
	enriched := make([]models.OwnerVisit, len(visits))
	for i := range visits {
		enriched[i] = models.OwnerVisit{
			Visit: visits[i],
			User:  s.lookupProfile(ctx, profiles, visits[i].UserID, credential),
		}
	}

	return &models.PaginatedOwnerVisitsResponse{
		Data: enriched,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, nil),
	}, nil
}

func (s *OwnerListingService) ListIncomingProposals(ctx context.Context, ownerID, credential string, offset, limit int, baseURL string) (*models.PaginatedOwnerProposalsResponse, error) {
	offset, limit = utils.ClampPageParams(offset, limit)

	proposals, total, err := s.proposals.FindByPropertyOwner(ctx, ownerID, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list incoming proposals", "owner_id", ownerID)
	}

	profiles := make(map[string]*identityclient.UserInfo)
	enriched := make([]models.OwnerProposal, len(proposals))
	for i := range proposals {
		enriched[i] = models.OwnerProposal{
			Proposal: proposals[i],
			User:     s.lookupProfile(ctx, profiles, proposals[i].UserID, credential),
		}
	}

	return &models.PaginatedOwnerProposalsResponse{
		Data: enriched,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, nil),
	}, nil
}

// lookupProfile resolves a user id at most once per request, failures
// included. Lookups run one after another; the identity service sees at
// most one in flight per incoming request.
func (s *OwnerListingService) lookupProfile(ctx context.Context, seen map[string]*identityclient.UserInfo, userID, credential string) *identityclient.UserInfo {
	if profile, done := seen[userID]; done {
		return profile
	}

	profile, err := s.identity.GetUserInfo(ctx, userID, credential)
	if err != nil {
		logger.GlobalLogger.Warnf("user lookup failed, listing continues without profile: user_id=%s, error=%v", userID, err)
		profile = nil
	}
	seen[userID] = profile
	return profile
}
