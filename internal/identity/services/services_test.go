package services

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "casavista-listings/internal/errors"
	"casavista-listings/internal/identity/auth"
	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/identity/repositories"
	"casavista-listings/internal/identity/validators"
	"casavista-listings/pkg/logger"
)

const testSecret = "unit-test-signing-secret"

func TestMain(m *testing.M) {
	logger.InitLogger(io.Discard, "ERROR")
	os.Exit(m.Run())
}

type testEnv struct {
	db        *gorm.DB
	repo      repositories.AccountRepository
	denylist  *fakeDenylist
	tokens    *TokenService
	accounts  *AccountService
	relations *stubRelations
	lookups   *UserLookupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "identity.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Account{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	repo := repositories.NewAccountRepository(db)
	denylist := newFakeDenylist()
	tokens := NewTokenService(repo, denylist, testSecret, time.Hour)
	relations := &stubRelations{}

	return &testEnv{
		db:        db,
		repo:      repo,
		denylist:  denylist,
		tokens:    tokens,
		accounts:  NewAccountService(repo, validators.NewAccountValidator(), tokens),
		relations: relations,
		lookups:   NewUserLookupService(repo, relations),
	}
}

// fakeDenylist implements TokenDenylist in memory with the same TTL contract
// as the redis-backed one.
type fakeDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{revoked: make(map[string]time.Time)}
}

func (d *fakeDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (d *fakeDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.revoked[jti]
	return ok && time.Now().Before(until), nil
}

// stubRelations records every relation check it receives so tests can assert
// not just outcomes but whether a check happened at all.
type stubRelations struct {
	mu    sync.Mutex
	allow bool
	calls []string
}

func (s *stubRelations) HasRelation(ctx context.Context, userID, ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, userID+"->"+ownerID)
	return s.allow
}

func (s *stubRelations) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func registerRequest(username string) *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:    username,
		FullName:    "Maria Souza",
		Email:       username + "@example.com",
		PhoneNumber: "11987654321",
		Password:    "orange-battery-staple",
	}
}

func register(t *testing.T, env *testEnv, username, role string) *models.SessionResponse {
	t.Helper()
	req := registerRequest(username)
	req.Role = role
	session, err := env.accounts.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return session
}

func createAdmin(t *testing.T, env *testEnv, username string) *models.AccountResponse {
	t.Helper()
	account, err := env.accounts.CreateAccount(context.Background(), &models.CreateAccountRequest{
		Username:    username,
		FullName:    "Platform Admin",
		Email:       username + "@example.com",
		PhoneNumber: "11912345678",
		Password:    "orange-battery-staple",
		Role:        models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("failed to create admin %s: %v", username, err)
	}
	return account
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPStatus != status {
		t.Fatalf("expected HTTP status %d, got %d (%s)", status, appErr.HTTPStatus, appErr.TechnicalMessage)
	}
}

func TestRegisterNormalizesAndSignsIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := registerRequest("Maria_Souza")
	req.Email = "Maria@Example.com"
	session, err := env.accounts.Register(ctx, req)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if session.Token == "" || session.TokenType != "Bearer" {
		t.Fatalf("expected a bearer token, got %+v", session)
	}
	if session.User.Username != "maria_souza" {
		t.Errorf("expected lowercased username, got %q", session.User.Username)
	}
	if session.User.Email != "maria@example.com" {
		t.Errorf("expected lowercased email, got %q", session.User.Email)
	}
	if session.User.Role != models.RoleUser {
		t.Errorf("expected default role USER, got %q", session.User.Role)
	}
	if !session.User.IsActive {
		t.Error("expected new account to be active")
	}

	result := env.tokens.Introspect(ctx, session.Token)
	if !result.Active {
		t.Fatalf("expected fresh token to introspect active, got reason %q", result.Reason)
	}
	if result.Claims.Subject != session.User.ID || result.Claims.Role != models.RoleUser {
		t.Errorf("unexpected claims: %+v", result.Claims)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	register(t, env, "joao", "")

	sameUsername := registerRequest("joao")
	sameUsername.Email = "other@example.com"
	_, err := env.accounts.Register(ctx, sameUsername)
	wantStatus(t, err, 409)

	sameEmail := registerRequest("joao2")
	sameEmail.Email = "joao@example.com"
	_, err = env.accounts.Register(ctx, sameEmail)
	wantStatus(t, err, 409)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.RegisterRequest)
	}{
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *models.RegisterRequest) { r.Password = "short" }},
		{"short username", func(r *models.RegisterRequest) { r.Username = "ab" }},
		{"username with spaces", func(r *models.RegisterRequest) { r.Username = "bad name" }},
		{"short phone", func(r *models.RegisterRequest) { r.PhoneNumber = "123" }},
		{"admin role", func(r *models.RegisterRequest) { r.Role = models.RoleAdmin }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest("valid_user")
			tt.mutate(req)
			_, err := env.accounts.Register(ctx, req)
			wantStatus(t, err, 422)
		})
	}
}

func TestLoginPaths(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := register(t, env, "carla", "")

	for _, identifier := range []string{"carla", "carla@example.com", "CARLA"} {
		if _, err := env.accounts.Login(ctx, &models.LoginRequest{Identifier: identifier, Password: "orange-battery-staple"}); err != nil {
			t.Errorf("login with identifier %q failed: %v", identifier, err)
		}
	}

	_, wrongPassword := env.accounts.Login(ctx, &models.LoginRequest{Identifier: "carla", Password: "wrong-password"})
	wantStatus(t, wrongPassword, 401)
	_, unknownUser := env.accounts.Login(ctx, &models.LoginRequest{Identifier: "nobody", Password: "orange-battery-staple"})
	wantStatus(t, unknownUser, 401)

	// The two failures must be indistinguishable to the caller.
	var wrongErr, unknownErr *apperrors.AppError
	errors.As(wrongPassword, &wrongErr)
	errors.As(unknownUser, &unknownErr)
	if wrongErr.UserMessage != unknownErr.UserMessage {
		t.Errorf("login failures reveal account existence: %q vs %q", wrongErr.UserMessage, unknownErr.UserMessage)
	}

	if err := env.accounts.DeactivateAccount(ctx, session.User.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	_, deactivated := env.accounts.Login(ctx, &models.LoginRequest{Identifier: "carla", Password: "orange-battery-staple"})
	wantStatus(t, deactivated, 401)
}

func TestTokenLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := register(t, env, "rafael", "")

	if _, reason := env.tokens.Verify(ctx, session.Token); reason != "" {
		t.Fatalf("fresh token rejected: %s", reason)
	}

	if err := env.tokens.Revoke(ctx, session.Token); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, reason := env.tokens.Verify(ctx, session.Token); reason != "revoked" {
		t.Errorf("expected revoked, got %q", reason)
	}
	if result := env.tokens.Introspect(ctx, session.Token); result.Active {
		t.Error("revoked token still introspects active")
	}

	if _, reason := env.tokens.Verify(ctx, "not-a-token"); reason != "malformed" {
		t.Errorf("expected malformed, got %q", reason)
	}

	expired, err := auth.GenerateJWT(session.User.ID, "rafael", models.RoleUser, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("failed to mint expired token: %v", err)
	}
	if _, reason := env.tokens.Verify(ctx, expired.Token); reason != "expired" {
		t.Errorf("expected expired, got %q", reason)
	}

	other := register(t, env, "ines", "")
	if err := env.accounts.DeactivateAccount(ctx, other.User.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, reason := env.tokens.Verify(ctx, other.Token); reason != "account_inactive" {
		t.Errorf("expected account_inactive, got %q", reason)
	}
}

func TestUserLookupStateMachine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := createAdmin(t, env, "root_admin")
	owner := register(t, env, "owner_ana", models.RolePropertyOwner).User
	visitor := register(t, env, "visitor_bia", "").User

	t.Run("admin reads anyone without relation check", func(t *testing.T) {
		profile, err := env.lookups.GetUserForCaller(ctx, admin.ID, models.RoleAdmin, visitor.ID)
		if err != nil {
			t.Fatalf("admin lookup failed: %v", err)
		}
		if profile.Username != "visitor_bia" {
			t.Errorf("unexpected profile: %+v", profile)
		}
		if env.relations.callCount() != 0 {
			t.Error("admin lookup triggered a relation check")
		}
	})

	t.Run("owner reads own profile without relation check", func(t *testing.T) {
		before := env.relations.callCount()
		profile, err := env.lookups.GetUserForCaller(ctx, owner.ID, models.RolePropertyOwner, owner.ID)
		if err != nil {
			t.Fatalf("self lookup failed: %v", err)
		}
		if profile.ID != owner.ID {
			t.Errorf("unexpected profile: %+v", profile)
		}
		if env.relations.callCount() != before {
			t.Error("self lookup triggered a relation check")
		}
	})

	t.Run("owner reads related user", func(t *testing.T) {
		env.relations.allow = true
		profile, err := env.lookups.GetUserForCaller(ctx, owner.ID, models.RolePropertyOwner, visitor.ID)
		if err != nil {
			t.Fatalf("related lookup failed: %v", err)
		}
		if profile.ID != visitor.ID {
			t.Errorf("unexpected profile: %+v", profile)
		}
		last := env.relations.calls[len(env.relations.calls)-1]
		if last != visitor.ID+"->"+owner.ID {
			t.Errorf("relation checked with wrong arguments: %s", last)
		}
	})

	t.Run("owner refused without relation", func(t *testing.T) {
		env.relations.allow = false
		_, err := env.lookups.GetUserForCaller(ctx, owner.ID, models.RolePropertyOwner, visitor.ID)
		wantStatus(t, err, 403)
	})

	t.Run("plain user refused even for self", func(t *testing.T) {
		before := env.relations.callCount()
		_, err := env.lookups.GetUserForCaller(ctx, visitor.ID, models.RoleUser, visitor.ID)
		wantStatus(t, err, 403)
		_, err = env.lookups.GetUserForCaller(ctx, visitor.ID, models.RoleUser, owner.ID)
		wantStatus(t, err, 403)
		if env.relations.callCount() != before {
			t.Error("plain user lookup triggered a relation check")
		}
	})

	t.Run("refusal does not reveal existence", func(t *testing.T) {
		env.relations.allow = false
		_, err := env.lookups.GetUserForCaller(ctx, owner.ID, models.RolePropertyOwner, "7e6f0f3c-9a5c-4f63-8f0a-2f3f6f6d9b10")
		wantStatus(t, err, 403)
	})

	t.Run("admin gets 404 for absent target", func(t *testing.T) {
		_, err := env.lookups.GetUserForCaller(ctx, admin.ID, models.RoleAdmin, "7e6f0f3c-9a5c-4f63-8f0a-2f3f6f6d9b10")
		wantStatus(t, err, 404)
	})
}

func TestUpdateAccountRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := createAdmin(t, env, "root_admin")
	user := register(t, env, "paulo", "").User
	other := register(t, env, "clara", "").User

	newName := "Paulo Andrade"
	updated, err := env.accounts.UpdateAccount(ctx, user.ID, models.RoleUser, user.ID, &models.UpdateAccountRequest{FullName: &newName})
	if err != nil {
		t.Fatalf("self update failed: %v", err)
	}
	if updated.FullName != newName {
		t.Errorf("full name not applied: %q", updated.FullName)
	}

	adminRole := models.RoleAdmin
	_, err = env.accounts.UpdateAccount(ctx, user.ID, models.RoleUser, user.ID, &models.UpdateAccountRequest{Role: &adminRole})
	wantStatus(t, err, 403)

	inactive := false
	_, err = env.accounts.UpdateAccount(ctx, user.ID, models.RoleUser, user.ID, &models.UpdateAccountRequest{IsActive: &inactive})
	wantStatus(t, err, 403)

	_, err = env.accounts.UpdateAccount(ctx, user.ID, models.RoleUser, other.ID, &models.UpdateAccountRequest{FullName: &newName})
	wantStatus(t, err, 403)

	ownerRole := models.RolePropertyOwner
	promoted, err := env.accounts.UpdateAccount(ctx, admin.ID, models.RoleAdmin, user.ID, &models.UpdateAccountRequest{Role: &ownerRole})
	if err != nil {
		t.Fatalf("admin role change failed: %v", err)
	}
	if promoted.Role != models.RolePropertyOwner {
		t.Errorf("role not applied: %q", promoted.Role)
	}

	takenEmail := "clara@example.com"
	_, err = env.accounts.UpdateAccount(ctx, admin.ID, models.RoleAdmin, user.ID, &models.UpdateAccountRequest{Email: &takenEmail})
	wantStatus(t, err, 409)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := createAdmin(t, env, "root_admin")
	user := register(t, env, "sofia", "").User

	err := env.accounts.ChangePassword(ctx, user.ID, models.RoleUser, user.ID, &models.ChangePasswordRequest{NewPassword: "a-new-long-password"})
	wantStatus(t, err, 422)

	err = env.accounts.ChangePassword(ctx, user.ID, models.RoleUser, user.ID, &models.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "a-new-long-password",
	})
	wantStatus(t, err, 422)

	if err := env.accounts.ChangePassword(ctx, user.ID, models.RoleUser, user.ID, &models.ChangePasswordRequest{
		CurrentPassword: "orange-battery-staple",
		NewPassword:     "a-new-long-password",
	}); err != nil {
		t.Fatalf("self password change failed: %v", err)
	}

	_, err = env.accounts.Login(ctx, &models.LoginRequest{Identifier: "sofia", Password: "orange-battery-staple"})
	wantStatus(t, err, 401)
	if _, err := env.accounts.Login(ctx, &models.LoginRequest{Identifier: "sofia", Password: "a-new-long-password"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	if err := env.accounts.ChangePassword(ctx, admin.ID, models.RoleAdmin, user.ID, &models.ChangePasswordRequest{
		NewPassword: "admin-reset-password",
	}); err != nil {
		t.Fatalf("admin password reset failed: %v", err)
	}
	if _, err := env.accounts.Login(ctx, &models.LoginRequest{Identifier: "sofia", Password: "admin-reset-password"}); err != nil {
		t.Fatalf("login after admin reset failed: %v", err)
	}
}

func TestListAccountsPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	register(t, env, "user_one", "")
	register(t, env, "user_two", "")
	register(t, env, "user_three", "")

	page, err := env.accounts.ListAccounts(ctx, 0, 2, "http://identity.local/admin/users", url.Values{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Data) != 2 || page.Meta.Total != 3 {
		t.Fatalf("expected 2 of 3 accounts, got %d of %d", len(page.Data), page.Meta.Total)
	}
	if page.Meta.Next == nil {
		t.Fatal("expected a next link")
	}

	rest, err := env.accounts.ListAccounts(ctx, 2, 2, "http://identity.local/admin/users", url.Values{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rest.Data) != 1 || rest.Meta.Prev == nil {
		t.Fatalf("expected final page with prev link, got %d rows", len(rest.Data))
	}
}
