package http

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/nasugbu/geoportal/internal/auth"
)

// GeoJSONController serves the municipal boundary data to authenticated
// clients. The file is parsed on every request so edits on disk show up
// without a restart.
type GeoJSONController struct {
	path string
}

// NewGeoJSONController creates a controller serving the file at path.
func NewGeoJSONController(path string) *GeoJSONController {
	return &GeoJSONController{path: path}
}

// Data returns the parsed GeoJSON document verbatim.
func (gc *GeoJSONController) Data(c *gin.Context) {
	if auth.CurrentUser(c) == nil {
		respondUnauthorized(c)
		return
	}

	raw, err := os.ReadFile(gc.path)
	if err != nil {
		respondInternalError(c, err, "geojson read")
		return
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		respondInternalError(c, err, "geojson parse")
		return
	}

	c.JSON(http.StatusOK, data)
}
