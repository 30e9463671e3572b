package validators

import (
	"fmt"
	"time"

	"casavista-listings/internal/models"
)

type visitValidator struct{}

func NewVisitValidator() VisitValidator {
	return &visitValidator{}
}

func (v *visitValidator) ValidateCreate(req *models.CreateVisitRequest, now time.Time) error {
	return validateVisitDate(req.VisitDate, now)
}

func (v *visitValidator) ValidateUpdate(req *models.UpdateVisitRequest, now time.Time) error {
	if req.VisitDate == nil {
		return nil
	}
	return validateVisitDate(*req.VisitDate, now)
}

func validateVisitDate(visitDate, now time.Time) error {
	if !visitDate.After(now) {
		return fmt.Errorf("visit date must be in the future")
	}
	if visitDate.After(now.Add(models.MaxVisitAdvance)) {
		return fmt.Errorf("visit date cannot be more than six months ahead")
	}
	return nil
}
