package validators

import (
	"time"

	"casavista-listings/internal/models"
)

type PropertyValidator interface {
	ValidateCreate(req *models.CreatePropertyRequest) error
	ValidateUpdate(req *models.UpdatePropertyRequest) error
}

type VisitValidator interface {
	ValidateCreate(req *models.CreateVisitRequest, now time.Time) error
	ValidateUpdate(req *models.UpdateVisitRequest, now time.Time) error
}

type ProposalValidator interface {
	ValidateCreate(req *models.CreateProposalRequest) error
}
