// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	dashboardfeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/dashboard"
	_ "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/dashboard/views"
	errorsfeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/errors"
	filtersfeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/filters"
	healthfeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/health"
	heartbeatfeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/heartbeat"
	homefeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/home"
	loginfeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/login"
	logoutfeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/logout"
	reportsfeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/reports"
	userinfofeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/userinfo"
	usersfeature "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/usermanagement"
	auditstore "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/store/audit"
	loginstore "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/store/logins"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/accounts"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auditlog"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/cascade"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/locations"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/metrics"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/ratelimit"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/surveys"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// services are the clients and stores shared by the feature handlers.
// The Mongo-backed ones stay nil when MongoDB is not configured.
type services struct {
	accounts *accounts.Client
	surveys  *surveys.Client
	registry *cascade.Registry
	pages    *filtersfeature.Pages
	audit    *auditlog.Logger
	logins   *loginstore.Store
	trail    *auditstore.Store
}

func newServices(appCfg AppConfig, deps DBDeps, logger *zap.Logger) services {
	s := services{
		accounts: accounts.New(deps.Backend, logger),
		surveys:  surveys.New(deps.Backend, logger),
	}

	lookups := locations.New(deps.Backend, logger)
	s.registry = cascade.NewRegistry(lookups, appCfg.FilterCacheSize, appCfg.FilterPageTTL, logger)
	s.pages = filtersfeature.NewPages(s.registry, models.LocationID(appCfg.StateID), logger)

	var recorder auditlog.Recorder
	if deps.MongoDatabase != nil {
		s.logins = loginstore.New(deps.MongoDatabase)
		s.trail = auditstore.New(deps.MongoDatabase)
		recorder = s.trail
	}
	s.audit = auditlog.New(recorder, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	return s
}

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// It boots the template engine, applies session middleware, and mounts
// the feature routers: home, login, logout, filter panels, dashboard,
// reports and the user console, plus /health and /metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(appCfg, deps, sessionMgr, logger), nil
}

func newRouter(appCfg AppConfig, deps DBDeps, sessionMgr *auth.SessionManager, logger *zap.Logger) chi.Router {
	svc := newServices(appCfg, deps, logger)
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Backend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", metrics.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	limiter := ratelimit.NewLoginLimiterWithConfig(appCfg.LoginRateLimit, appCfg.LoginRateWindow, appCfg.LoginRateLimit, appCfg.LoginRateWindow)
	var logins loginfeature.LoginRecorder
	if svc.logins != nil {
		logins = svc.logins
	}
	loginHandler := loginfeature.NewHandler(svc.accounts, logins, limiter, sessionMgr, errLog, svc.audit, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, svc.accounts, svc.audit, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Filter panels shared by the dashboard, reports and user console
	filtersHandler := filtersfeature.NewHandler(svc.pages, errLog, logger)
	r.Mount("/filters", filtersfeature.Routes(filtersHandler, sessionMgr))

	heartbeatHandler := heartbeatfeature.NewHandler(svc.registry, logger)
	r.Mount("/heartbeat", heartbeatfeature.Routes(heartbeatHandler, sessionMgr))
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	dashboardHandler := dashboardfeature.NewHandler(svc.pages, svc.surveys, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	reportsHandler := reportsfeature.NewHandler(svc.pages, svc.surveys, errLog, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	// User management (state admin only)
	var (
		history usersfeature.LoginHistory
		trail   usersfeature.AuditTrail
	)
	if svc.logins != nil {
		history, trail = svc.logins, svc.trail
	}
	usersHandler := usersfeature.NewHandler(svc.pages, svc.accounts, history, trail, svc.audit, errLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	return r
}
