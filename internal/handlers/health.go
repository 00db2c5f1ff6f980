package handlers

import (
	"net/http"
	"time"

	"github.com/bobmcallan/blog-portal/internal/common"
)

// HealthHandler answers portal liveness. It never contacts the blog backend;
// ServerHealthHandler covers that.
type HealthHandler struct {
	logger  *common.Logger
	started time.Time
	now     func() time.Time
}

func NewHealthHandler(logger *common.Logger) *HealthHandler {
	return &HealthHandler{logger: logger, started: time.Now(), now: time.Now}
}

// ServeHTTP handles GET /api/health with {"status":"ok","uptime":...}.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": h.now().Sub(h.started).Truncate(time.Second).String(),
	})
}
