// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/cascade"
	"go.uber.org/zap"
)

// Handler keeps open filter panels alive while their page is on screen.
type Handler struct {
	Registry *cascade.Registry
	Log      *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(registry *cascade.Registry, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Registry: registry, Log: logger}
}

// heartbeatRequest is the JSON body for the heartbeat endpoint. Form
// posts carry the same field.
type heartbeatRequest struct {
	Token string `json:"token"`
}

// ServeHeartbeat handles POST /heartbeat.
// A hit renews the panel's idle TTL. An expired panel answers 410 and
// asks HTMX to reload the page, which opens a fresh one.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req heartbeatRequest
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "application/json" {
		_ = json.NewDecoder(r.Body).Decode(&req) // token is checked below
	} else {
		req.Token = r.FormValue("token")
	}
	if req.Token == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	_, err := h.Registry.Get(req.Token, u.UserID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, cascade.ErrNotOwner):
		w.WriteHeader(http.StatusForbidden)
	default:
		h.Log.Debug("heartbeat for expired filter page", zap.String("token", req.Token), zap.Int64("user_id", u.UserID))
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusGone)
	}
}
