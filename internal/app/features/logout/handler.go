// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auditlog"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"go.uber.org/zap"
)

// BackendLogout tells the survey backend the user left.
type BackendLogout interface {
	Logout(ctx context.Context, userID int64)
}

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Accounts   BackendLogout    // optional
	Audit      *auditlog.Logger // optional
}

func NewHandler(sessionMgr *auth.SessionManager, accts BackendLogout, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Accounts:   accts,
		Audit:      audit,
	}
}

// ServeLogout handles GET and POST /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		if h.Accounts != nil {
			h.Accounts.Logout(r.Context(), u.UserID)
		}
		h.Audit.Logout(r.Context(), r, u.UserProfile)
		h.Log.Info("user signed out", zap.Int64("user_id", u.UserID))
	}

	// The cookie is dropped even when the backend call failed.
	if err := h.SessionMgr.Clear(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
