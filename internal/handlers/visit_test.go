package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"casavista-listings/internal/middleware"
	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/services"
	"casavista-listings/internal/validators"
)

// stubAuth stands in for the introspection middleware: the test caller
// decides who they are via header.
func stubAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User"))
		c.Set("user_role", c.GetHeader("X-Test-Role"))
		c.Next()
	}
}

type visitFixture struct {
	db     *gorm.DB
	router *gin.Engine
}

func newVisitFixture(t *testing.T) *visitFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "visits.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Address{}, &models.Property{}, &models.Visit{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	visitService := services.NewVisitService(
		repositories.NewVisitRepository(db),
		repositories.NewPropertyRepository(db),
		validators.NewVisitValidator(),
	)
	handler := NewVisitHandler(visitService)

	router := gin.New()
	router.Use(middleware.ErrorHandler(), stubAuth())
	router.POST("/visits", handler.CreateVisit)
	router.GET("/visits/:id", handler.GetVisit)

	return &visitFixture{db: db, router: router}
}

func (f *visitFixture) do(t *testing.T, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", userID)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unreadable error body %q: %v", w.Body.String(), err)
	}
	return body["error"]["code"]
}

func TestCreateVisitHandler(t *testing.T) {
	f := newVisitFixture(t)
	rf := &relationFixture{db: f.db}
	property := rf.seedProperty(t, testOwnerID)
	visitDate := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)

	t.Run("invalid json", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/visits", testUserID, "{not json")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "VALIDATION_FAILED" {
			t.Fatalf("expected VALIDATION_FAILED, got %s", code)
		}
	})

	t.Run("missing property id", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/visits", testUserID, `{"visitDate":"`+visitDate+`"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("created", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/visits", testUserID,
			`{"propertyId":"`+property.ID+`","visitDate":"`+visitDate+`","notes":"morning please"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var visit models.Visit
		if err := json.Unmarshal(w.Body.Bytes(), &visit); err != nil {
			t.Fatalf("unreadable visit body: %v", err)
		}
		if visit.ID == "" || visit.PropertyID != property.ID || visit.UserID != testUserID {
			t.Fatalf("unexpected visit payload: %+v", visit)
		}
	})

	t.Run("unknown property", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/visits", otherUserID,
			`{"propertyId":"99999999-9999-9999-9999-999999999999","visitDate":"`+visitDate+`"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
		if code := errorCode(t, w); code != "NOT_FOUND" {
			t.Fatalf("expected NOT_FOUND, got %s", code)
		}
	})
}

func TestGetVisitHandlerAccess(t *testing.T) {
	f := newVisitFixture(t)
	rf := &relationFixture{db: f.db}
	property := rf.seedProperty(t, testOwnerID)

	visit := &models.Visit{
		PropertyID: property.ID,
		UserID:     testUserID,
		VisitDate:  time.Now().Add(24 * time.Hour),
	}
	if err := f.db.Create(visit).Error; err != nil {
		t.Fatalf("failed to seed visit: %v", err)
	}

	t.Run("malformed id", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/visits/not-a-uuid", testUserID, "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("visitor reads own visit", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/visits/"+visit.ID, testUserID, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("property owner reads it too", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/visits/"+visit.ID, testOwnerID, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for property owner, got %d", w.Code)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/visits/"+visit.ID, otherUserID, "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
		if code := errorCode(t, w); code != "FORBIDDEN" {
			t.Fatalf("expected FORBIDDEN, got %s", code)
		}
	})

	t.Run("absent visit", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/visits/99999999-9999-9999-9999-999999999999", testUserID, "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
