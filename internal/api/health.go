package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/library-api/internal/api/shared"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// HealthResponse is the body of GET /health. Uptime is in seconds.
type HealthResponse struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"`
	Timestamp string  `json:"timestamp"`
	Version   string  `json:"version"`
}

// HealthHandler reports that the process is serving requests.
// It does not probe the document store.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler whose uptime starts now.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now(), now: time.Now}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "OK",
		Uptime:    now.Sub(h.started).Seconds(),
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Version:   Version,
	})
}
