package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"casavista-listings/pkg/identityclient"
	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/relationclient"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitLogger(io.Discard, "ERROR")
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInternalAuth(t *testing.T) {
	newRouter := func(secret string) *gin.Engine {
		router := gin.New()
		router.GET("/internal/ping", InternalAuth(secret), func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
		return router
	}

	tests := []struct {
		name       string
		configured string
		presented  string
		wantStatus int
	}{
		{"matching secret", "s3cret", "s3cret", http.StatusOK},
		{"wrong secret", "s3cret", "nope", http.StatusUnauthorized},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"unconfigured secret rejects everything", "", "anything", http.StatusUnauthorized},
		{"unconfigured secret rejects empty too", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/internal/ping", nil)
			if tt.presented != "" {
				req.Header.Set(relationclient.HeaderInternalSecret, tt.presented)
			}
			w := performRequest(newRouter(tt.configured), req)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("unexpected body: %s", w.Body.String())
				}
				if body["error"]["code"] != "AUTHENTICATION_FAILED" {
					t.Fatalf("expected AUTHENTICATION_FAILED, got %s", body["error"]["code"])
				}
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	router := gin.New()
	router.GET("/owner-only",
		func(c *gin.Context) { c.Set("user_role", c.GetHeader("X-Test-Role")) },
		RequireRoles("PROPERTY_OWNER"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	tests := []struct {
		role       string
		wantStatus int
	}{
		{"PROPERTY_OWNER", http.StatusOK},
		{"USER", http.StatusForbidden},
		{"ADMIN", http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/owner-only", nil)
		req.Header.Set("X-Test-Role", tt.role)
		w := performRequest(router, req)
		if w.Code != tt.wantStatus {
			t.Fatalf("role %q: expected status %d, got %d", tt.role, tt.wantStatus, w.Code)
		}
	}
}

func TestAuthIntrospection(t *testing.T) {
	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)

		w.Header().Set("Content-Type", "application/json")
		if payload["token"] == "good-token" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"active": true,
				"claims": map[string]interface{}{
					"sub":      "11111111-1111-1111-1111-111111111111",
					"username": "alice",
					"role":     "USER",
				},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"active": false, "reason": "invalid_token"})
	}))
	defer identity.Close()

	client := identityclient.NewClient(identity.URL, time.Second)
	router := gin.New()
	router.GET("/me", Auth(client), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("user_role"),
			"token":   c.GetString("access_token"),
		})
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := performRequest(router, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body map[string]string
		json.Unmarshal(w.Body.Bytes(), &body)
		if body["user_id"] != "11111111-1111-1111-1111-111111111111" || body["role"] != "USER" {
			t.Fatalf("unexpected claims in context: %v", body)
		}
		if body["token"] != "good-token" {
			t.Fatal("raw credential should be kept for downstream calls")
		}
	})

	t.Run("access_token cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "good-token"})
		w := performRequest(router, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 via cookie, got %d", w.Code)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := performRequest(router, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		w := performRequest(router, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := performRequest(router, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestAuthFailsClosedWhenIdentityDown(t *testing.T) {
	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	identity.Close() // connection refused from here on

	client := identityclient.NewClient(identity.URL, 200*time.Millisecond)
	router := gin.New()
	router.GET("/me", Auth(client), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := performRequest(router, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when identity service is down, got %d", w.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	router := gin.New()
	router.GET("/limited", RateLimitMiddleware(rl), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := performRequest(router, httptest.NewRequest(http.MethodGet, "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d within burst should pass, got %d", i+1, w.Code)
		}
	}
	w := performRequest(router, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past the burst, got %d", w.Code)
	}
}
