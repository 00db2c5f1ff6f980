package handlers

import (
	"net/http"
	"strconv"

	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/notify"
	"github.com/bobmcallan/blog-portal/internal/store"
)

// StateHandler exposes the client store over HTTP.
type StateHandler struct {
	store  *store.Store
	logger *common.Logger
}

// NewStateHandler creates a handler reading from s.
func NewStateHandler(s *store.Store, logger *common.Logger) *StateHandler {
	return &StateHandler{store: s, logger: logger}
}

// ServeState handles GET /api/state with an optional ?slice= filter.
func (h *StateHandler) ServeState(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	v, err := h.store.Snapshot().Slice(r.URL.Query().Get("slice"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// ServeFlag handles /api/flags/{name}. GET peeks at the flag, POST takes
// and clears it.
func (h *StateHandler) ServeFlag(w http.ResponseWriter, r *http.Request) {
	f, err := store.ParseFlag(r.PathValue("name"))
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	var raised bool
	if r.Method == http.MethodPost {
		raised = h.store.TakeFlag(f)
	} else {
		raised = h.store.PeekFlag(f)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"flag":   f.String(),
		"raised": raised,
	})
}

// sessionView is the login summary. The token is never echoed.
type sessionView struct {
	Authenticated     bool   `json:"authenticated"`
	UserID            string `json:"userId,omitempty"`
	Email             string `json:"email,omitempty"`
	IsAdmin           bool   `json:"isAdmin"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

// ServeSession handles GET /api/session.
func (h *StateHandler) ServeSession(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	view := sessionView{}
	if ua := h.store.UserAuth(); ua != nil && ua.Token != "" {
		view = sessionView{
			Authenticated:     true,
			UserID:            ua.ID,
			Email:             ua.Email,
			IsAdmin:           ua.IsAdmin,
			IsAccountVerified: ua.IsAccountVerified,
		}
	}
	WriteJSON(w, http.StatusOK, view)
}

// NotificationsHandler lists recent toasts.
type NotificationsHandler struct {
	recorder *notify.Recorder
}

// NewNotificationsHandler creates a handler reading from rec.
func NewNotificationsHandler(rec *notify.Recorder) *NotificationsHandler {
	return &NotificationsHandler{recorder: rec}
}

// ServeHTTP handles GET /api/notifications?limit=N.
func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	WriteJSON(w, http.StatusOK, h.recorder.Recent(limit))
}
