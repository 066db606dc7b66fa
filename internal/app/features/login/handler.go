// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	uierrors "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/errors"
	loginstore "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/store/logins"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/accounts"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auditlog"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/backend"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/htmlsanitize"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/ratelimit"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/timeouts"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/viewdata"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// Authenticator verifies credentials against the survey backend.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (models.UserProfile, error)
}

// LoginRecorder keeps the sign-in history.
type LoginRecorder interface {
	CreateFrom(ctx context.Context, r *http.Request, p models.UserProfile, provider string) error
}

type Handler struct {
	Log        *zap.Logger
	Accounts   Authenticator
	Logins     LoginRecorder // optional
	Limiter    *ratelimit.LoginLimiter
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Audit      *auditlog.Logger // optional
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Username  string
	ReturnURL string
}

func NewHandler(
	accts Authenticator,
	logins LoginRecorder,
	limiter *ratelimit.LoginLimiter,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	audit *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	if limiter == nil {
		limiter = ratelimit.NewLoginLimiter()
	}
	return &Handler{
		Log:        logger,
		Accounts:   accts,
		Logins:     logins,
		Limiter:    limiter,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Audit:      audit,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, urlutil.SafeReturn(query.Get(r, "return"), "", "/dashboard"), http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if ok, reason := h.Limiter.Check(r, username); !ok {
		h.Log.Warn("login rate limited",
			zap.String("username", username),
			zap.String("ip", ratelimit.ClientIP(r)))
		h.Audit.LoginRateLimited(r.Context(), r, username, reason)
		h.renderFormWithError(w, r, http.StatusTooManyRequests, reason, username)
		return
	}

	profile, err := h.Accounts.Login(r.Context(), username, password)
	if err != nil {
		status, msg := loginFailure(err)
		if status >= http.StatusInternalServerError {
			h.Log.Error("login failed", zap.String("username", username), zap.Error(err))
		} else {
			h.Log.Info("login refused", zap.String("username", username), zap.Error(err))
		}
		h.Audit.LoginFailed(r.Context(), r, username, err.Error())
		h.renderFormWithError(w, r, status, msg, username)
		return
	}

	if err := h.SessionMgr.SaveProfile(w, r, profile); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.Int64("user_id", profile.UserID))
		h.renderFormWithError(w, r, http.StatusInternalServerError, "Unable to create session. Please try again.", username)
		return
	}
	h.Limiter.ResetUser(username)

	if h.Logins != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()
		if err := h.Logins.CreateFrom(ctx, r, profile, loginstore.ProviderBackend); err != nil {
			h.Log.Warn("failed to record login", zap.Error(err), zap.Int64("user_id", profile.UserID))
		}
	}

	h.Log.Info("user signed in",
		zap.Int64("user_id", profile.UserID),
		zap.String("user_type", profile.UserTypeID.Name()))

	dest := urlutil.SafeReturn(r.FormValue("return"), "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// loginFailure maps an accounts error to a status and the form message.
func loginFailure(err error) (int, string) {
	switch {
	case errors.Is(err, accounts.ErrMissingCredentials):
		return http.StatusBadRequest, "Please enter your username and password."
	case errors.Is(err, accounts.ErrInvalidProfile):
		return http.StatusBadGateway, "Sign-in failed. Please contact an administrator."
	}
	if rej, ok := backend.IsRejection(err); ok {
		msg := htmlsanitize.StripTags(rej.Message)
		if msg == "" {
			msg = "Invalid username or password."
		}
		return http.StatusUnauthorized, msg
	}
	return http.StatusServiceUnavailable, "Sign-in is unavailable right now. Please try again shortly."
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, status int, msg, username string) {
	// From POST, "return" will be in the form; from GET, we might rely on the query.
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:     msg,
		Username:  username,
		ReturnURL: ret,
	})
}
