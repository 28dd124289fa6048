package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nasugbu/geoportal/internal/auth"
	"github.com/nasugbu/geoportal/internal/entities"
)

const testFeatureCollection = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"name": "Poblacion"}, "geometry": null}
	]
}`

func setupGeoJSONRouter(t *testing.T, path string, user *entities.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(auth.ContextKeyUser, user)
		}
		c.Next()
	})
	router.GET("/api/geojson/", NewGeoJSONController(path).Data)
	return router
}

func writeTestGeoJSON(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "boundaries.geojson")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestGeoJSON_RequiresAuthentication(t *testing.T) {
	path := writeTestGeoJSON(t, testFeatureCollection)
	router := setupGeoJSONRouter(t, path, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/geojson/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous request returned %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Authentication required.") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGeoJSON_ServesDocument(t *testing.T) {
	path := writeTestGeoJSON(t, testFeatureCollection)
	router := setupGeoJSONRouter(t, path, &entities.User{ID: 1, Username: "juan"})

	req := httptest.NewRequest(http.MethodGet, "/api/geojson/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("request returned %d - %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"FeatureCollection"`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Poblacion") {
		t.Errorf("feature properties missing from body: %s", w.Body.String())
	}
}

func TestGeoJSON_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.geojson")
	router := setupGeoJSONRouter(t, path, &entities.User{ID: 1, Username: "juan"})

	req := httptest.NewRequest(http.MethodGet, "/api/geojson/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("missing file returned %d, want 500", w.Code)
	}
}

func TestGeoJSON_MalformedFile(t *testing.T) {
	path := writeTestGeoJSON(t, "{not geojson")
	router := setupGeoJSONRouter(t, path, &entities.User{ID: 1, Username: "juan"})

	req := httptest.NewRequest(http.MethodGet, "/api/geojson/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("malformed file returned %d, want 500", w.Code)
	}
}
