package filters

import (
	"github.com/go-chi/chi/v5"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
)

// Routes mounts the panel endpoints. Every route needs a signed-in user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/{token}", h.Show)
	r.Post("/{token}/select", h.Select)
	r.Post("/{token}/clear", h.Clear)
	return r
}
