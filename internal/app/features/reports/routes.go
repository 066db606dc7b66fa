// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
)

// Routes mounts the report pages. Every page accepts ?format=csv for an
// export of the full result set.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(rr chi.Router) {
		rr.Use(sm.RequireSignedIn)
		rr.Get("/welfare", h.ServeWelfare)
		rr.Get("/households", h.ServeHouseholds)
		rr.Get("/livelihoods", h.ServeLivelihoods)
		rr.Get("/analytics", h.ServeAnalytics)
		rr.Get("/health/{kind}", h.ServeHealth)
	})

	return r
}
