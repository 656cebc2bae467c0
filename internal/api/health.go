package api

import (
	"net/http"
	"time"

	"github.com/figofit/itfit-mvp-lite/internal/api/respond"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	isHealthy func() bool
	storage   bool
}

// NewHealthHandler reports isHealthy; storageAvailable is echoed so clients
// can tell a no-backend deployment apart.
func NewHealthHandler(isHealthy func() bool, storageAvailable bool) *HealthHandler {
	if isHealthy == nil {
		isHealthy = func() bool { return true }
	}
	return &HealthHandler{isHealthy: isHealthy, storage: storageAvailable}
}

// CheckHealth handles GET /api/health
// Always returns 200; body reports healthy/unhealthy. 500 indicates handler failure only.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if h.isHealthy() {
		status = "healthy"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":           status,
		"storageAvailable": h.storage,
		"timestamp":        time.Now().Format(time.RFC3339),
	})
}
