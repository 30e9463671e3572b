package services

import (
	"context"
	"net/url"
	"strconv"
	"time"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/utils"
	"casavista-listings/internal/validators"
)

type VisitService struct {
	visits     repositories.VisitRepository
	properties repositories.PropertyRepository
	validator  validators.VisitValidator
}

func NewVisitService(
	visits repositories.VisitRepository,
	properties repositories.PropertyRepository,
	validator validators.VisitValidator,
) *VisitService {
	return &VisitService{
		visits:     visits,
		properties: properties,
		validator:  validator,
	}
}

func (s *VisitService) CreateVisit(ctx context.Context, userID string, req *models.CreateVisitRequest) (*models.Visit, error) {
	if err := s.validator.ValidateCreate(req, time.Now()); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
	}

	property, err := s.properties.FindActiveByID(ctx, req.PropertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property for visit", "property_id", req.PropertyID)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found or inactive", apperrors.MsgPropertyNotFound)
	}
	if property.OwnerID == userID {
		return nil, apperrors.NewValidationError(
			"visit requested on caller's own property",
			"You cannot schedule a visit to your own property.", nil)
	}

	pending, err := s.visits.ExistsPending(ctx, userID, req.PropertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "check pending visit", "property_id", req.PropertyID)
	}
	if pending {
		return nil, apperrors.NewConflictError(
			"pending visit already exists for user and property",
			"You already have an open visit for this property.")
	}

	visit := &models.Visit{
		PropertyID: req.PropertyID,
		UserID:     userID,
		VisitDate:  req.VisitDate.UTC(),
		Notes:      req.Notes,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, utils.LogAndMapError(err, "create visit", "property_id", req.PropertyID)
	}
	return visit, nil
}

// GetVisit is readable by the visitor and by the owner of the visited
// property, nobody else.
func (s *VisitService) GetVisit(ctx context.Context, callerID, id string) (*models.Visit, error) {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load visit", "visit_id", id)
	}
	if visit == nil {
		return nil, apperrors.NewNotFoundError("visit not found", apperrors.MsgVisitNotFound)
	}
	if !canAccessVisit(visit, callerID) {
		return nil, apperrors.NewAuthorizationError("caller is neither visitor nor property owner")
	}
	return visit, nil
}

// UpdateVisit lets the visitor move a pending visit or amend its notes.
func (s *VisitService) UpdateVisit(ctx context.Context, userID, id string, req *models.UpdateVisitRequest) (*models.Visit, error) {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load visit for update", "visit_id", id)
	}
	if visit == nil {
		return nil, apperrors.NewNotFoundError("visit not found", apperrors.MsgVisitNotFound)
	}
	if visit.UserID != userID {
		return nil, apperrors.NewAuthorizationError("visit belongs to another user")
	}
	if !visit.CanBeUpdated() {
		return nil, apperrors.NewConflictError(
			"visit is already completed or cancelled",
			"This visit can no longer be changed.")
	}
	if err := s.validator.ValidateUpdate(req, time.Now()); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.MsgInvalidParameters, err)
	}

	if req.VisitDate != nil {
		visit.VisitDate = req.VisitDate.UTC()
	}
	if req.Notes != nil {
		visit.Notes = *req.Notes
	}
	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, utils.LogAndMapError(err, "update visit", "visit_id", id)
	}
	return visit, nil
}

// CompleteVisit marks a past pending visit as done. Only the property owner
// confirms that a visit actually happened.
func (s *VisitService) CompleteVisit(ctx context.Context, ownerID, id string) (*models.Visit, error) {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load visit for completion", "visit_id", id)
	}
	if visit == nil {
		return nil, apperrors.NewNotFoundError("visit not found", apperrors.MsgVisitNotFound)
	}
	if visit.Property == nil || visit.Property.OwnerID != ownerID {
		return nil, apperrors.NewAuthorizationError("caller does not own the visited property")
	}
	if !visit.CanBeCompleted(time.Now()) {
		return nil, apperrors.NewConflictError(
			"visit is not pending or has not happened yet",
			"Only past pending visits can be marked as completed.")
	}

	visit.IsVisitCompleted = true
	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, utils.LogAndMapError(err, "complete visit", "visit_id", id)
	}
	return visit, nil
}

// CancelVisit is open to both sides of the appointment while it is pending.
func (s *VisitService) CancelVisit(ctx context.Context, callerID, id, reason string) (*models.Visit, error) {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load visit for cancellation", "visit_id", id)
	}
	if visit == nil {
		return nil, apperrors.NewNotFoundError("visit not found", apperrors.MsgVisitNotFound)
	}
	if !canAccessVisit(visit, callerID) {
		return nil, apperrors.NewAuthorizationError("caller is neither visitor nor property owner")
	}
	if !visit.CanBeCancelled() {
		return nil, apperrors.NewConflictError(
			"visit is already completed or cancelled",
			"This visit can no longer be cancelled.")
	}

	visit.Cancelled = true
	visit.CancellationReason = reason
	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, utils.LogAndMapError(err, "cancel visit", "visit_id", id)
	}
	return visit, nil
}

// ListOwnVisits returns the caller's visits, pending only unless the
// include flags widen the view.
func (s *VisitService) ListOwnVisits(ctx context.Context, userID string, includeCompleted, includeCancelled bool, offset, limit int, baseURL string) (*models.PaginatedVisitsResponse, error) {
	offset, limit = utils.ClampPageParams(offset, limit)
	params := url.Values{}
	if includeCompleted {
		params.Set("include_completed", strconv.FormatBool(true))
	}
	if includeCancelled {
		params.Set("include_cancelled", strconv.FormatBool(true))
	}

	visits, total, err := s.visits.FindByUser(ctx, userID, includeCompleted, includeCancelled, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list visits", "user_id", userID)
	}
	return &models.PaginatedVisitsResponse{
		Data: visits,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, params),
	}, nil
}

// ListUpcomingVisits returns the caller's pending visits that lie in the
// future, soonest first.
func (s *VisitService) ListUpcomingVisits(ctx context.Context, userID string, offset, limit int, baseURL string) (*models.PaginatedVisitsResponse, error) {
	offset, limit = utils.ClampPageParams(offset, limit)

	visits, total, err := s.visits.FindUpcomingByUser(ctx, userID, time.Now(), offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list upcoming visits", "user_id", userID)
	}
	return &models.PaginatedVisitsResponse{
		Data: visits,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, nil),
	}, nil
}

// ListPropertyVisits shows every visit booked on one property to its owner.
func (s *VisitService) ListPropertyVisits(ctx context.Context, ownerID, propertyID string, offset, limit int, baseURL string) (*models.PaginatedVisitsResponse, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, utils.LogAndMapError(err, "load property for visit listing", "property_id", propertyID)
	}
	if property == nil {
		return nil, apperrors.NewNotFoundError("property not found", apperrors.MsgPropertyNotFound)
	}
	if property.OwnerID != ownerID {
		return nil, apperrors.NewAuthorizationError("property belongs to another owner")
	}

	offset, limit = utils.ClampPageParams(offset, limit)
	visits, total, err := s.visits.FindByProperty(ctx, propertyID, offset, limit)
	if err != nil {
		return nil, utils.LogAndMapError(err, "list property visits", "property_id", propertyID)
	}
	return &models.PaginatedVisitsResponse{
		Data: visits,
		Meta: utils.BuildPaginationMeta(total, offset, limit, baseURL, nil),
	}, nil
}

func canAccessVisit(visit *models.Visit, callerID string) bool {
	if visit.UserID == callerID {
		return true
	}
	return visit.Property != nil && visit.Property.OwnerID == callerID
}
