// internal/app/features/usermanagement/routes.go
package usermanagement

import (
	"github.com/go-chi/chi/v5"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
)

// Routes mounts the user console under the path where this router is
// mounted (typically "/users" from bootstrap).
//
// Example mount from bootstrap:
//
//	h := usermanagement.NewHandler(pages, accounts, logins, trail, auditLog, errLog, logger)
//	r.Mount("/users", usermanagement.Routes(h, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		// Only the state admin creates accounts.
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireUserType(models.UserTypeStateAdmin))

		pr.Get("/", h.ServeNew)
		pr.Post("/", h.HandleCreate)
	})

	return r
}
