package handlers

import (
	"net/http"

	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/config"
)

// VersionHandler handles version information requests.
type VersionHandler struct {
	logger     *common.Logger
	backendURL string
}

// NewVersionHandler creates a new version handler.
func NewVersionHandler(logger *common.Logger, backendURL string) *VersionHandler {
	return &VersionHandler{logger: logger, backendURL: backendURL}
}

// ServeHTTP handles GET /api/version.
func (h *VersionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    config.GetVersion(),
		"build":      config.GetBuild(),
		"git_commit": config.GetGitCommit(),
		"backend":    h.backendURL,
	})
}
