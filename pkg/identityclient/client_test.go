package identityclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"casavista-listings/pkg/logger"
)

func init() {
	logger.InitLogger(nil, "ERROR")
}

func TestIntrospectToken(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantActive bool
		wantReason string
	}{
		{
			name: "active token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"active": true, "claims": {"sub": "user-1", "username": "ana", "role": "USER", "exp": 1900000000}}`))
			},
			wantActive: true,
		},
		{
			name: "expired token",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"active": false, "reason": "token_expired"}`))
			},
			wantActive: false,
			wantReason: "token_expired",
		},
		{
			name: "server error treated as inactive",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantActive: false,
			wantReason: "service_error",
		},
		{
			name: "garbage body treated as inactive",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			wantActive: false,
			wantReason: "service_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, 2*time.Second)
			result := client.IntrospectToken(context.Background(), "some-token")
			if result.Active != tt.wantActive {
				t.Errorf("Active = %v, want %v", result.Active, tt.wantActive)
			}
			if tt.wantReason != "" && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestIntrospectTokenRequestShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"active": false, "reason": "token_invalid"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	client.IntrospectToken(context.Background(), "abc123")

	if gotPath != "/auth/introspect" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["token"] != "abc123" {
		t.Errorf("body token = %q, want abc123", gotBody["token"])
	}
}

func TestIntrospectTokenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second)
	result := client.IntrospectToken(context.Background(), "abc")
	if result.Active {
		t.Error("unreachable identity service must yield inactive")
	}
	if result.Reason != "service_error" {
		t.Errorf("Reason = %q, want service_error", result.Reason)
	}
}

func TestIntrospectTokenTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"active": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond)
	if client.IntrospectToken(context.Background(), "abc").Active {
		t.Error("timed-out introspection must yield inactive")
	}
}

func TestGetUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users/user-7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer caller-token" {
			t.Errorf("Authorization = %q, want forwarded caller credential", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "user-7", "username": "bruno", "fullName": "Bruno Lima", "email": "bruno@example.com", "phoneNumber": "11987654321", "role": "USER", "createdAt": "2026-01-10T12:00:00Z", "isActive": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	info, err := client.GetUserInfo(context.Background(), "user-7", "caller-token")
	if err != nil {
		t.Fatalf("GetUserInfo: %v", err)
	}
	if info.Username != "bruno" || info.FullName != "Bruno Lima" {
		t.Errorf("unexpected profile: %+v", info)
	}
}

func TestGetUserInfoFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "forbidden",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "forbidden"}`, http.StatusForbidden)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
			},
		},
		{
			name: "bad body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id": `))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			info, err := client.GetUserInfo(context.Background(), "user-7", "tok")
			if err == nil {
				t.Fatal("expected error")
			}
			if info != nil {
				t.Errorf("info should be nil on failure, got %+v", info)
			}
		})
	}
}
