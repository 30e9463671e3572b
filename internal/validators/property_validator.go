package validators

import (
	"fmt"

	"casavista-listings/internal/models"
)

type propertyValidator struct{}

func NewPropertyValidator() PropertyValidator {
	return &propertyValidator{}
}

func (v *propertyValidator) ValidateCreate(req *models.CreatePropertyRequest) error {
	return v.validateTypeFields(req)
}

func (v *propertyValidator) ValidateUpdate(req *models.UpdatePropertyRequest) error {
	return v.validateTypeFields(req)
}

// validateTypeFields enforces the rules binding tags cannot express:
// fields that only make sense for one property type.
func (v *propertyValidator) validateTypeFields(req *models.CreatePropertyRequest) error {
	switch req.PropertyType {
	case models.PropertyTypeApartment:
		if req.LandPrice != nil {
			return fmt.Errorf("land price applies only to houses")
		}
		if req.IsSingleHouse != nil {
			return fmt.Errorf("single house flag applies only to houses")
		}
	case models.PropertyTypeHouse:
		if req.Floor != nil {
			return fmt.Errorf("floor applies only to apartments")
		}
	}
	return nil
}
