package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bobmcallan/blog-portal/internal/common"
)

// backendProbePath is a cheap public endpoint on the blog backend.
const backendProbePath = "/api/categories"

// ServerHealthHandler reports whether the blog backend is reachable.
type ServerHealthHandler struct {
	logger *common.Logger
	apiURL string
	client *http.Client
}

// NewServerHealthHandler creates a new server health handler.
func NewServerHealthHandler(logger *common.Logger, apiURL string) *ServerHealthHandler {
	return &ServerHealthHandler{logger: logger, apiURL: apiURL, client: http.DefaultClient}
}

// ServeHTTP handles GET /api/server-health. Any response below 500 counts as up.
func (h *ServerHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", h.apiURL+backendProbePath, nil)
	if err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn().Err(err).Str("api_url", h.apiURL).Msg("blog backend unreachable")
		}
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusInternalServerError {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
}
