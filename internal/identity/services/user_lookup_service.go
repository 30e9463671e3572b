package services

import (
	"context"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/identity/repositories"
	"casavista-listings/internal/utils"
)

// RelationChecker reports whether a user has a live visit or proposal
// relationship with any property of the given owner. Implementations are
// fail-closed: there is no error to inspect, ambiguity reads as false.
type RelationChecker interface {
	HasRelation(ctx context.Context, userID, ownerID string) bool
}

// UserLookupService decides who may read which profile.
type UserLookupService struct {
	repo      repositories.AccountRepository
	relations RelationChecker
}

func NewUserLookupService(repo repositories.AccountRepository, relations RelationChecker) *UserLookupService {
	return &UserLookupService{repo: repo, relations: relations}
}

// GetUserForCaller authorizes, then looks up. Admins read anyone. Property
// owners read their own profile with no relation call, and another user's only
// when the relation check confirms a visit or proposal on one of their
// properties. Every other role is refused. The existence check runs after
// authorization, so a refused caller cannot probe which accounts exist.
func (s *UserLookupService) GetUserForCaller(ctx context.Context, callerID, callerRole, targetID string) (*models.AccountResponse, error) {
	switch {
	case callerRole == models.RoleAdmin:
	case callerRole == models.RolePropertyOwner && callerID == targetID:
	case callerRole == models.RolePropertyOwner:
		if !s.relations.HasRelation(ctx, targetID, callerID) {
			return nil, apperrors.NewAuthorizationError("no visit or proposal relation between user and owner")
		}
	default:
		return nil, apperrors.NewAuthorizationError("role may not read other profiles")
	}

	account, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load account for lookup", "account_id", targetID)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("account not found", apperrors.MsgUserNotFound)
	}
	return models.NewAccountResponse(account), nil
}
