package models

// RegisterRequest creates a self-service account. Role is optional and limited
// to the two end-user roles; admin accounts go through the admin API.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50" example:"maria_souza"`
	FullName    string `json:"fullName" binding:"required,min=2,max=100" example:"Maria Souza"`
	Email       string `json:"email" binding:"required,email" example:"maria@example.com"`
	PhoneNumber string `json:"phoneNumber" binding:"required" example:"11987654321"`
	Password    string `json:"password" binding:"required,min=8,max=100" example:"correct-horse-battery"`
	Role        string `json:"role" binding:"omitempty,oneof=USER PROPERTY_OWNER" example:"USER"`
}

// LoginRequest authenticates by username or email.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required" example:"maria@example.com"`
	Password   string `json:"password" binding:"required" example:"correct-horse-battery"`
}

// IntrospectRequest carries the token another service wants verified.
type IntrospectRequest struct {
	Token string `json:"token" binding:"required"`
}

// CreateAccountRequest is the admin variant of registration; any role is
// allowed.
type CreateAccountRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	FullName    string `json:"fullName" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required,min=8,max=100"`
	Role        string `json:"role" binding:"required,oneof=USER PROPERTY_OWNER ADMIN"`
}

// UpdateAccountRequest updates profile fields. Nil means leave unchanged.
// Role and IsActive are admin-only; the service rejects them from anyone else.
type UpdateAccountRequest struct {
	FullName    *string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty"`
	Role        *string `json:"role" binding:"omitempty,oneof=USER PROPERTY_OWNER ADMIN"`
	IsActive    *bool   `json:"isActive" binding:"omitempty"`
}

// ChangePasswordRequest re-hashes the account password. CurrentPassword is
// required when the account holder changes their own; admins reset without it.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"omitempty"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=100"`
}
