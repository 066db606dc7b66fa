// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// ports, TLS, logging and CORS; everything the dashboard itself needs
// lives here.
type AppConfig struct {
	// Survey backend
	BackendURL     string        // base URL of the survey REST API
	BackendTimeout time.Duration // per-request timeout for dropdown lookups
	StateID        int64         // state the hierarchy is rooted at

	// MongoDB connection configuration. An empty URI disables login
	// history and the audit trail.
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: teagarden-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Filter panels
	FilterCacheSize int           // open panels kept in memory
	FilterPageTTL   time.Duration // idle time before a panel is dropped

	// Login rate limiting, per client IP
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// Audit logging: "all", "db", "log" or "off"
	AuditLogAuth  string
	AuditLogAdmin string

	SiteName string
}
