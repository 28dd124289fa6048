package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nasugbu/geoportal/internal/database"
)

func TestHealth_Status(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	router := gin.New()
	router.GET("/health", NewHealthController(db, "test").Status)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health returned %d - %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"database":"ok"`) {
		t.Errorf("database check missing from body: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"version":"test"`) {
		t.Errorf("version missing from body: %s", w.Body.String())
	}
}

func TestHealth_ClosedDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	_ = db.Close()

	router := gin.New()
	router.GET("/health", NewHealthController(db, "").Status)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("health with closed database returned %d, want 503", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"unhealthy"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}
