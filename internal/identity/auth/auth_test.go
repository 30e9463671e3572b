package auth

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	details, err := GenerateJWT("acc-1", "ana", "PROPERTY_OWNER", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if details.TokenType != "Bearer" {
		t.Errorf("token type = %q", details.TokenType)
	}
	if details.ExpiresIn != "3600" {
		t.Errorf("expires_in = %q, want 3600", details.ExpiresIn)
	}

	claims, err := ValidateJWT(details.Token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.Subject != "acc-1" {
		t.Errorf("subject = %q, want acc-1", claims.Subject)
	}
	if claims.Username != "ana" || claims.Role != "PROPERTY_OWNER" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("jti must be set")
	}
}

func TestValidateJWTFailures(t *testing.T) {
	details, err := GenerateJWT("acc-1", "ana", "USER", "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", details.Token, "wrong-secret"},
		{"empty token", "", "right-secret"},
		{"garbage token", "not.a.jwt", "right-secret"},
		{"empty secret", details.Token, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateJWT(tt.token, tt.secret); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	details, err := GenerateJWT("acc-1", "ana", "USER", "s", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	_, err = ValidateJWT(details.Token, "s")
	if err == nil {
		t.Fatal("expired token must be rejected")
	}
	if !strings.Contains(err.Error(), "token") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDistinctTokensGetDistinctJTIs(t *testing.T) {
	a, _ := GenerateJWT("acc-1", "ana", "USER", "s", time.Hour)
	b, _ := GenerateJWT("acc-1", "ana", "USER", "s", time.Hour)

	ca, err := ValidateJWT(a.Token, "s")
	if err != nil {
		t.Fatal(err)
	}
	cb, err := ValidateJWT(b.Token, "s")
	if err != nil {
		t.Fatal(err)
	}
	if ca.ID == cb.ID {
		t.Error("two issued tokens share a jti")
	}
}
