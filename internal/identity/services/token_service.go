package services

import (
	"context"
	"errors"
	"time"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/identity/auth"
	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/identity/repositories"
	"casavista-listings/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// Introspection reason codes. Callers only branch on Active; these exist so an
// operator reading logs or responses can tell a revoked token from a stale one.
const (
	reasonMalformed       = "malformed"
	reasonExpired         = "expired"
	reasonRevoked         = "revoked"
	reasonAccountInactive = "account_inactive"
	reasonUnverifiable    = "unverifiable"
)

// TokenService mints and verifies session tokens. Verification is fail-closed
// end to end: a token that cannot be fully checked, including when the
// denylist or account store is unreachable, is treated as invalid.
type TokenService struct {
	accounts repositories.AccountRepository
	denylist repositories.TokenDenylist
	secret   string
	ttl      time.Duration
}

func NewTokenService(accounts repositories.AccountRepository, denylist repositories.TokenDenylist, secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		accounts: accounts,
		denylist: denylist,
		secret:   secret,
		ttl:      ttl,
	}
}

// Issue mints a session token for the account.
func (s *TokenService) Issue(account *models.Account) (*auth.TokenDetails, error) {
	return auth.GenerateJWT(account.ID, account.Username, account.Role, s.secret, s.ttl)
}

// Verify checks signature, expiry, revocation, and that the account behind the
// token is still active. A non-empty reason means the token must be rejected.
func (s *TokenService) Verify(ctx context.Context, token string) (*auth.Claims, string) {
	claims, err := auth.ValidateJWT(token, s.secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, reasonExpired
		}
		return nil, reasonMalformed
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.GlobalLogger.Errorf("denylist check failed, rejecting token: jti=%s, error=%v", claims.ID, err)
		return nil, reasonUnverifiable
	}
	if revoked {
		return nil, reasonRevoked
	}

	account, err := s.accounts.FindByID(ctx, claims.Subject)
	if err != nil {
		logger.GlobalLogger.Errorf("account check failed, rejecting token: account_id=%s, error=%v", claims.Subject, err)
		return nil, reasonUnverifiable
	}
	if account == nil || !account.IsActive {
		return nil, reasonAccountInactive
	}

	return claims, ""
}

// Introspect answers the cross-service token check. It always produces a
// response; every failure mode is an inactive result, never an error.
func (s *TokenService) Introspect(ctx context.Context, token string) *models.IntrospectionResponse {
	claims, reason := s.Verify(ctx, token)
	if reason != "" {
		return &models.IntrospectionResponse{Active: false, Reason: reason}
	}
	return &models.IntrospectionResponse{
		Active: true,
		Claims: &models.IntrospectionClaims{
			Subject:   claims.Subject,
			Username:  claims.Username,
			Role:      claims.Role,
			ExpiresAt: claims.ExpiresAt.Unix(),
		},
	}
}

// Revoke denylists the token's jti for its remaining lifetime. Revoking an
// invalid token fails with 401; there is no session to end.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	claims, err := auth.ValidateJWT(token, s.secret)
	if err != nil {
		return apperrors.NewAuthenticationError("logout with invalid token", err)
	}

	ttl := s.ttl
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.GlobalLogger.Errorf("token revocation failed: jti=%s, error=%v", claims.ID, err)
		return apperrors.MapError(err)
	}
	return nil
}
