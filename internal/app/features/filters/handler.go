package filters

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/errors"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/cascade"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// Handler binds open filter panels to HTTP.
type Handler struct {
	Pages  *Pages
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a filters Handler.
func NewHandler(pages *Pages, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Pages: pages, ErrLog: errLog, Log: logger}
}

// stateResponse is the JSON form of a panel.
type stateResponse struct {
	Token string `json:"token"`
	cascade.State
}

// Show handles GET /filters/{token}.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	h.respond(w, r, page)
}

// Select handles POST /filters/{token}/select with form fields level and id.
// "", "0" and "all" all mean "All".
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, http.StatusBadRequest, "parse filter form failed", err, "Invalid form data.")
		return
	}

	level, ok := models.ParseLevel(r.PostFormValue("level"))
	if !ok {
		h.fail(w, r, http.StatusBadRequest, "unknown filter level", nil, "Unknown filter level.")
		return
	}
	if page.Locked(level) {
		h.fail(w, r, http.StatusForbidden, "attempt to change a locked filter level", nil,
			"This filter is fixed by your jurisdiction.")
		return
	}

	id, err := models.ParseLocationID(r.PostFormValue("id"))
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, "malformed location id", err, "Unknown location.")
		return
	}
	if err := page.SelectLevel(r.Context(), level, id); err != nil {
		switch {
		case errors.Is(err, cascade.ErrNotAnOption):
			h.fail(w, r, http.StatusBadRequest, "location not offered at this level", err, "Unknown location.")
		case errors.Is(err, cascade.ErrInvalidLevel), errors.Is(err, cascade.ErrParentUnset):
			h.fail(w, r, http.StatusBadRequest, "filter selection rejected", err, "That filter cannot be changed right now.")
		default:
			h.fail(w, r, http.StatusInternalServerError, "filter selection failed", err, "Unable to update the filters.")
		}
		return
	}
	h.respond(w, r, page)
}

// Clear handles POST /filters/{token}/clear. A scoped user's jurisdiction
// is seeded again, so locked levels survive.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	if page.Scope.IsEmpty() {
		page.ClearAll()
	} else {
		page.Initialize(r.Context(), page.Scope)
		h.Pages.OpenFirstFreeLevel(r.Context(), page)
	}
	h.respond(w, r, page)
}

// page loads the panel named in the URL for the current user and answers
// the request itself when that is not possible.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) (*cascade.Page, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		h.fail(w, r, http.StatusUnauthorized, "filter request without a user", nil, "Please sign in to continue.")
		return nil, false
	}

	page, err := h.Pages.Registry.Get(chi.URLParam(r, "token"), u.UserID)
	switch {
	case err == nil:
		return page, true
	case errors.Is(err, cascade.ErrPageExpired):
		if isHTMX(r) {
			w.Header().Set("HX-Refresh", "true")
		}
		h.fail(w, r, http.StatusGone, "filter page expired", err, "This page has expired. Please reload it.")
	case errors.Is(err, cascade.ErrNotOwner):
		h.fail(w, r, http.StatusNotFound, "filter page not owned by user", err, "Filter page not found.")
	default:
		h.fail(w, r, http.StatusInternalServerError, "filter page lookup failed", err, "Unable to load the filters.")
	}
	return nil, false
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, page *cascade.Page) {
	if isHTMX(r) {
		templates.RenderSnippet(w, "filter_panel", NewPanel(page))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stateResponse{Token: page.Token, State: page.Snapshot()})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error, userMsg string) {
	if !isHTMX(r) {
		h.ErrLog.JSON(w, r, status, msg, err, userMsg)
		return
	}
	switch {
	case status == http.StatusForbidden:
		h.ErrLog.HTMXLogForbidden(w, r, msg, err, userMsg)
	case status >= http.StatusInternalServerError:
		h.ErrLog.HTMXLogServerError(w, r, msg, err, userMsg)
	case status == http.StatusBadRequest:
		h.ErrLog.HTMXLogBadRequest(w, r, msg, err, userMsg)
	default:
		h.Log.Warn(msg, zap.Int("status", status), zap.Error(err))
		http.Error(w, userMsg, status)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
