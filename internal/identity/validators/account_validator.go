package validators

import (
	"errors"
	"regexp"

	"casavista-listings/internal/identity/models"
)

type AccountValidator interface {
	ValidateRegister(req *models.RegisterRequest) error
	ValidateUpdate(req *models.UpdateAccountRequest) error
	ValidatePassword(password string) error
}

type accountValidator struct{}

func NewAccountValidator() AccountValidator {
	return &accountValidator{}
}

// ValidateRegister enforces the format rules binding tags do not cover:
// username charset, email shape, phone digit count.
func (v *accountValidator) ValidateRegister(req *models.RegisterRequest) error {
	if !isValidUsername(req.Username) {
		return errors.New("username may contain only letters, digits and underscores")
	}
	if !isValidEmail(req.Email) {
		return errors.New("invalid email format")
	}
	if !isValidPhone(req.PhoneNumber) {
		return errors.New("phone number must be 10 to 15 digits")
	}
	if req.Role != "" && req.Role != models.RoleUser && req.Role != models.RolePropertyOwner {
		return errors.New("role must be USER or PROPERTY_OWNER")
	}
	return v.ValidatePassword(req.Password)
}

func (v *accountValidator) ValidateUpdate(req *models.UpdateAccountRequest) error {
	if req.Email != nil && !isValidEmail(*req.Email) {
		return errors.New("invalid email format")
	}
	if req.PhoneNumber != nil && !isValidPhone(*req.PhoneNumber) {
		return errors.New("phone number must be 10 to 15 digits")
	}
	if req.Role != nil && !models.ValidRole(*req.Role) {
		return errors.New("unknown role")
	}
	return nil
}

func (v *accountValidator) ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 100 {
		return errors.New("password must be between 8 and 100 characters")
	}
	return nil
}

func isValidUsername(username string) bool {
	regex := regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	return regex.MatchString(username)
}

func isValidEmail(email string) bool {
	regex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return regex.MatchString(email)
}

func isValidPhone(phone string) bool {
	regex := regexp.MustCompile(`^\+?\d{10,15}$`)
	return regex.MatchString(phone)
}
