package models

import (
	"time"

	listings "casavista-listings/internal/models"
)

// AccountResponse is the profile shape every lookup returns. It is the whole
// of what other services learn about an account; credential fields have no
// representation here at all.
type AccountResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	IsActive    bool      `json:"isActive"`
}

func NewAccountResponse(a *Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Username:    a.Username,
		FullName:    a.FullName,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Role:        a.Role,
		CreatedAt:   a.CreatedAt,
		IsActive:    a.IsActive,
	}
}

// SessionResponse is returned by register and login: the bearer token plus the
// profile it authenticates.
type SessionResponse struct {
	Token     string           `json:"token"`
	ExpiresIn string           `json:"expires_in"`
	TokenType string           `json:"token_type"`
	User      *AccountResponse `json:"user"`
}

// IntrospectionClaims is the claims subset exposed to other services.
type IntrospectionClaims struct {
	Subject   string `json:"sub"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
}

// IntrospectionResponse answers "is this token good right now". Active is
// false for malformed, expired, revoked, and deactivated-account tokens alike;
// Reason distinguishes them for operators, not for callers.
type IntrospectionResponse struct {
	Active bool                 `json:"active"`
	Claims *IntrospectionClaims `json:"claims,omitempty"`
	Reason string               `json:"reason,omitempty"`
}

// PaginatedAccountsResponse is the admin account listing, using the same page
// envelope as the rest of the platform.
type PaginatedAccountsResponse struct {
	Data []AccountResponse       `json:"data"`
	Meta listings.PaginationMeta `json:"meta"`
}
