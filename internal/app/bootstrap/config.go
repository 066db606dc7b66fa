// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the dashboard.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: backend_url, session_name, etc.
//   - Environment variables: TEAGARDEN_BACKEND_URL, TEAGARDEN_SESSION_NAME, etc.
//   - Command-line flags: --backend_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "backend_url", Default: "http://localhost:8080/api/", Desc: "Survey backend base URL"},
	{Name: "backend_timeout", Default: "10s", Desc: "Timeout for one location dropdown lookup"},
	{Name: "state_id", Default: 1, Desc: "State the location hierarchy is rooted at"},

	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (blank disables login history and audit trail)"},
	{Name: "mongo_database", Default: "teagarden_survey", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "teagarden-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Session cookie lifetime"},

	{Name: "filter_cache_size", Default: 4096, Desc: "Filter panels kept in memory"},
	{Name: "filter_page_ttl", Default: "2h", Desc: "Idle time before a filter panel expires"},

	{Name: "login_rate_limit", Default: 10, Desc: "Login attempts allowed per client IP per window"},
	{Name: "login_rate_window", Default: "15m", Desc: "Login rate limit window"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "site_name", Default: "Tea Garden Survey", Desc: "Name shown in the page header"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TEAGARDEN_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TEAGARDEN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		BackendURL:     appValues.String("backend_url"),
		BackendTimeout: appValues.Duration("backend_timeout", 10*time.Second),
		StateID:        int64(appValues.Int("state_id")),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 12*time.Hour),

		FilterCacheSize: appValues.Int("filter_cache_size"),
		FilterPageTTL:   appValues.Duration("filter_page_ttl", 2*time.Hour),

		LoginRateLimit:  appValues.Int("login_rate_limit"),
		LoginRateWindow: appValues.Duration("login_rate_window", 15*time.Minute),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		SiteName: appValues.String("site_name"),
	}

	return coreCfg, appCfg, nil
}

var auditModes = []string{auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff}

// ValidateConfig performs app-specific config validation.
//
// The backend URL must be absolute http(s), the state id positive and the
// audit modes known. The MongoDB URI is only checked when set.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !urlutil.IsValidAbsHTTPURL(appCfg.BackendURL) {
		return fmt.Errorf("backend_url must be an absolute http(s) URL, got %q", appCfg.BackendURL)
	}
	if appCfg.StateID <= 0 {
		return fmt.Errorf("state_id must be positive, got %d", appCfg.StateID)
	}
	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}
	for key, mode := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		if mode != "" && !validAuditMode(mode) {
			return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(auditModes, ", "), mode)
		}
	}
	if coreCfg != nil && coreCfg.Env == "prod" && strings.HasPrefix(appCfg.SessionKey, "dev-only") {
		return fmt.Errorf("session_key must be set in production")
	}
	return nil
}

func validAuditMode(m string) bool {
	for _, v := range auditModes {
		if m == v {
			return true
		}
	}
	return false
}
