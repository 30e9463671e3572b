package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	idmiddleware "casavista-listings/internal/identity/middleware"
	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/identity/repositories"
	"casavista-listings/internal/identity/services"
	"casavista-listings/internal/identity/validators"
	"casavista-listings/internal/middleware"
	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/relationclient"
)

const (
	testSecret         = "handler-test-signing-secret"
	testInternalSecret = "handler-test-internal-secret"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitLogger(io.Discard, "ERROR")
	os.Exit(m.Run())
}

// relationStub plays the properties service's internal relation endpoint and
// counts how often it is consulted.
type relationStub struct {
	mu     sync.Mutex
	allow  bool
	calls  int
	server *httptest.Server
}

func newRelationStub() *relationStub {
	stub := &relationStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.calls++
		allow := stub.allow
		stub.mu.Unlock()

		if r.Header.Get(relationclient.HeaderInternalSecret) != testInternalSecret {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"has_relation": allow,
			"has_visit":    allow,
			"has_proposal": false,
			"user_id":      r.URL.Query().Get("user_id"),
			"owner_id":     r.URL.Query().Get("owner_id"),
		})
	}))
	return stub
}

func (s *relationStub) setAllow(allow bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allow = allow
}

func (s *relationStub) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (d *memoryDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (d *memoryDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.revoked[jti]
	return ok && time.Now().Before(until), nil
}

type identityFixture struct {
	router   *gin.Engine
	accounts *services.AccountService
}

// newIdentityFixture wires the identity service exactly as its binary does,
// with the relation check pointed at baseURL.
func newIdentityFixture(t *testing.T, baseURL string) *identityFixture {
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
	denylist := &memoryDenylist{revoked: make(map[string]time.Time)}
	tokens := services.NewTokenService(repo, denylist, testSecret, time.Hour)
	accounts := services.NewAccountService(repo, validators.NewAccountValidator(), tokens)
	relations := relationclient.NewClient(baseURL, testInternalSecret, 2*time.Second)
	lookups := services.NewUserLookupService(repo, relations)

	authHandler := NewAuthHandler(accounts, tokens)
	userHandler := NewUserHandler(accounts, lookups)

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	auth := router.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/introspect", authHandler.Introspect)
	session := auth.Group("", idmiddleware.Session(tokens))
	session.POST("/logout", authHandler.Logout)
	session.GET("/me", authHandler.Me)

	admin := router.Group("/admin/users", idmiddleware.Session(tokens))
	admin.POST("", middleware.RequireRoles(models.RoleAdmin), userHandler.CreateUser)
	admin.GET("", middleware.RequireRoles(models.RoleAdmin), userHandler.ListUsers)
	admin.GET("/:id", userHandler.GetUser)
	admin.PUT("/:id", userHandler.UpdateUser)
	admin.PUT("/:id/password", userHandler.ChangePassword)
	admin.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.DeactivateUser)

	return &identityFixture{router: router, accounts: accounts}
}

func (f *identityFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *identityFixture) register(t *testing.T, username, role string) *models.SessionResponse {
	t.Helper()
	session, err := f.accounts.Register(context.Background(), &models.RegisterRequest{
		Username:    username,
		FullName:    "Test Person",
		Email:       username + "@example.com",
		PhoneNumber: "11987654321",
		Password:    "orange-battery-staple",
		Role:        role,
	})
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return session
}

func (f *identityFixture) createAdmin(t *testing.T) string {
	t.Helper()
	account, err := f.accounts.CreateAccount(context.Background(), &models.CreateAccountRequest{
		Username:    "root_admin",
		FullName:    "Platform Admin",
		Email:       "root_admin@example.com",
		PhoneNumber: "11912345678",
		Password:    "orange-battery-staple",
		Role:        models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	session, err := f.accounts.Login(context.Background(), &models.LoginRequest{
		Identifier: account.Username,
		Password:   "orange-battery-staple",
	})
	if err != nil {
		t.Fatalf("failed to log admin in: %v", err)
	}
	return session.Token
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body %q: %v", w.Body.String(), err)
	}
	return body.Error.Code
}

func TestAuthFlowOverHTTP(t *testing.T) {
	f := newIdentityFixture(t, "http://relation.invalid")

	w := f.do(t, http.MethodPost, "/auth/register", "", `{
		"username": "Heitor_M",
		"fullName": "Heitor Martins",
		"email": "heitor@example.com",
		"phoneNumber": "11987654321",
		"password": "orange-battery-staple"
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	if cookies := w.Result().Cookies(); len(cookies) == 0 || cookies[0].Name != "access_token" || !cookies[0].HttpOnly {
		t.Error("expected an HttpOnly access_token cookie on register")
	}

	var session models.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if session.User.Username != "heitor_m" {
		t.Errorf("expected lowercased username, got %q", session.User.Username)
	}

	w = f.do(t, http.MethodGet, "/auth/me", session.Token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", w.Code, w.Body.String())
	}

	// Cookie works where the header is absent.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: session.Token})
	cookieOnly := httptest.NewRecorder()
	f.router.ServeHTTP(cookieOnly, req)
	if cookieOnly.Code != http.StatusOK {
		t.Fatalf("cookie auth returned %d", cookieOnly.Code)
	}

	if w := f.do(t, http.MethodGet, "/auth/me", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("me without token returned %d", w.Code)
	}

	if w := f.do(t, http.MethodPost, "/auth/logout", session.Token, ""); w.Code != http.StatusNoContent {
		t.Fatalf("logout returned %d: %s", w.Code, w.Body.String())
	}
	if w := f.do(t, http.MethodGet, "/auth/me", session.Token, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("logged-out token still accepted: %d", w.Code)
	}

	w = f.do(t, http.MethodPost, "/auth/introspect", "", `{"token": "`+session.Token+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("introspect returned %d", w.Code)
	}
	var result models.IntrospectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode introspection: %v", err)
	}
	if result.Active || result.Reason != "revoked" {
		t.Errorf("expected inactive/revoked after logout, got %+v", result)
	}
}

func TestIntrospectEndpoint(t *testing.T) {
	f := newIdentityFixture(t, "http://relation.invalid")
	session := f.register(t, "dora", "")

	w := f.do(t, http.MethodPost, "/auth/introspect", "", `{"token": "`+session.Token+`"}`)
	var active models.IntrospectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &active); err != nil {
		t.Fatalf("failed to decode introspection: %v", err)
	}
	if !active.Active || active.Claims.Subject != session.User.ID {
		t.Errorf("unexpected introspection result: %+v", active)
	}
	if active.Claims.ExpiresAt <= time.Now().Unix() {
		t.Errorf("expected future expiry, got %d", active.Claims.ExpiresAt)
	}

	w = f.do(t, http.MethodPost, "/auth/introspect", "", `{"token": "garbage"}`)
	var inactive models.IntrospectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &inactive); err != nil {
		t.Fatalf("failed to decode introspection: %v", err)
	}
	if w.Code != http.StatusOK || inactive.Active {
		t.Errorf("garbage token should introspect inactive with 200, got %d %+v", w.Code, inactive)
	}

	if w := f.do(t, http.MethodPost, "/auth/introspect", "", `{}`); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing token field returned %d, want 422", w.Code)
	}
}

func TestProfileLookupOverHTTP(t *testing.T) {
	stub := newRelationStub()
	defer stub.server.Close()
	f := newIdentityFixture(t, stub.server.URL)

	adminToken := f.createAdmin(t)
	owner := f.register(t, "owner_rita", models.RolePropertyOwner)
	visitor := f.register(t, "visitor_leo", "")

	t.Run("self lookup makes no relation call", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/admin/users/"+owner.User.ID, owner.Token, "")
		if w.Code != http.StatusOK {
			t.Fatalf("self lookup returned %d: %s", w.Code, w.Body.String())
		}
		if stub.callCount() != 0 {
			t.Errorf("self lookup reached the relation endpoint %d times", stub.callCount())
		}
	})

	t.Run("admin lookup makes no relation call", func(t *testing.T) {
		before := stub.callCount()
		w := f.do(t, http.MethodGet, "/admin/users/"+visitor.User.ID, adminToken, "")
		if w.Code != http.StatusOK {
			t.Fatalf("admin lookup returned %d: %s", w.Code, w.Body.String())
		}
		if stub.callCount() != before {
			t.Error("admin lookup reached the relation endpoint")
		}
	})

	t.Run("related visitor is readable and carries no credentials", func(t *testing.T) {
		stub.setAllow(true)
		w := f.do(t, http.MethodGet, "/admin/users/"+visitor.User.ID, owner.Token, "")
		if w.Code != http.StatusOK {
			t.Fatalf("related lookup returned %d: %s", w.Code, w.Body.String())
		}

		var profile map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
			t.Fatalf("failed to decode profile: %v", err)
		}
		for _, field := range []string{"id", "username", "fullName", "email", "phoneNumber", "role", "createdAt", "isActive"} {
			if _, ok := profile[field]; !ok {
				t.Errorf("profile missing %s: %v", field, profile)
			}
		}
		for key := range profile {
			if strings.Contains(strings.ToLower(key), "password") {
				t.Errorf("profile leaks credential field %q", key)
			}
		}
	})

	t.Run("unrelated visitor is refused", func(t *testing.T) {
		stub.setAllow(false)
		w := f.do(t, http.MethodGet, "/admin/users/"+visitor.User.ID, owner.Token, "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("unrelated lookup returned %d", w.Code)
		}
		if errorCode(t, w) != "FORBIDDEN" {
			t.Errorf("unexpected error code %s", w.Body.String())
		}
	})

	t.Run("plain user is refused without a relation call", func(t *testing.T) {
		before := stub.callCount()
		w := f.do(t, http.MethodGet, "/admin/users/"+owner.User.ID, visitor.Token, "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("plain user lookup returned %d", w.Code)
		}
		if stub.callCount() != before {
			t.Error("plain user lookup reached the relation endpoint")
		}
	})

	t.Run("malformed target id", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/admin/users/not-a-uuid", adminToken, "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("malformed id returned %d", w.Code)
		}
	})
}

func TestProfileLookupFailsClosedWhenPropertiesDown(t *testing.T) {
	stub := newRelationStub()
	stub.setAllow(true)
	url := stub.server.URL
	stub.server.Close()

	f := newIdentityFixture(t, url)
	owner := f.register(t, "owner_rui", models.RolePropertyOwner)
	visitor := f.register(t, "visitor_eva", "")

	w := f.do(t, http.MethodGet, "/admin/users/"+visitor.User.ID, owner.Token, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when the properties service is down, got %d: %s", w.Code, w.Body.String())
	}

	// The owner's own profile stays reachable; no relation call is involved.
	if w := f.do(t, http.MethodGet, "/admin/users/"+owner.User.ID, owner.Token, ""); w.Code != http.StatusOK {
		t.Fatalf("self lookup should survive the outage, got %d", w.Code)
	}
}

func TestAdminUserManagementOverHTTP(t *testing.T) {
	f := newIdentityFixture(t, "http://relation.invalid")
	adminToken := f.createAdmin(t)
	user := f.register(t, "plain_user", "")

	w := f.do(t, http.MethodPost, "/admin/users", adminToken, `{
		"username": "support_staff",
		"fullName": "Support Staff",
		"email": "support@example.com",
		"phoneNumber": "11933334444",
		"password": "orange-battery-staple",
		"role": "ADMIN"
	}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("admin create returned %d: %s", w.Code, w.Body.String())
	}

	if w := f.do(t, http.MethodPost, "/admin/users", user.Token, `{}`); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin create returned %d", w.Code)
	}

	w = f.do(t, http.MethodGet, "/admin/users?offset=0&limit=2", adminToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d: %s", w.Code, w.Body.String())
	}
	var page models.PaginatedAccountsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode listing: %v", err)
	}
	if len(page.Data) != 2 || page.Meta.Total != 3 {
		t.Errorf("expected 2 of 3 accounts, got %d of %d", len(page.Data), page.Meta.Total)
	}

	if w := f.do(t, http.MethodDelete, "/admin/users/"+user.User.ID, user.Token, ""); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin deactivate returned %d", w.Code)
	}
	if w := f.do(t, http.MethodDelete, "/admin/users/"+user.User.ID, adminToken, ""); w.Code != http.StatusNoContent {
		t.Fatalf("deactivate returned %d: %s", w.Code, w.Body.String())
	}

	// The deactivated account's session stops verifying everywhere.
	w = f.do(t, http.MethodPost, "/auth/introspect", "", `{"token": "`+user.Token+`"}`)
	var result models.IntrospectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode introspection: %v", err)
	}
	if result.Active || result.Reason != "account_inactive" {
		t.Errorf("expected inactive account reason, got %+v", result)
	}
	if w := f.do(t, http.MethodGet, "/auth/me", user.Token, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("deactivated session still accepted: %d", w.Code)
	}
}
