package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/userbooks/internal/logging"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports liveness without requiring the api key.
type HealthController struct {
	db      Pinger
	version string
}

func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status pings the database; 503 when it does not answer.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{"database": "ok"},
	}

	switch {
	case h.db == nil:
		health.Checks["database"] = "not configured"
	default:
		if err := h.db.Ping(c.Request.Context()); err != nil {
			logging.FromGin(c).WithError(err).Error("health check: database unreachable")
			health.Checks["database"] = "unreachable"
			health.Status = "unhealthy"
		}
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.IndentedJSON(statusCode, health)
}

// Ping answers {"message":"pong"}.
func (h *HealthController) Ping(c *gin.Context) {
	respondMessage(c, http.StatusOK, "pong")
}

// Index points visitors at the documentation.
func (h *HealthController) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": "Read the README.md!"})
}
