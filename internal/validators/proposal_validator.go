package validators

import (
	"fmt"

	"casavista-listings/internal/models"
)

type proposalValidator struct{}

func NewProposalValidator() ProposalValidator {
	return &proposalValidator{}
}

func (v *proposalValidator) ValidateCreate(req *models.CreateProposalRequest) error {
	if req.ProposalValue > models.MaxProposalValue {
		return fmt.Errorf("proposal value exceeds the maximum of %.2f", models.MaxProposalValue)
	}
	return nil
}
