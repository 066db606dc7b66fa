// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/store/audit"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/ratelimit"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// Destinations for a category.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth covers failed sign-ins, rate limiting and logouts.
	Auth string
	// Admin covers accounts created from the user console.
	Admin string
}

// Recorder persists events. *audit.Store satisfies it.
type Recorder interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger writes audit events to a Recorder and to zap. A nil Recorder
// turns every "db" destination into a no-op.
type Logger struct {
	store  Recorder
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store Recorder, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) mode(category string) string {
	var m string
	switch category {
	case audit.CategoryAuth:
		m = l.config.Auth
	case audit.CategoryAdmin:
		m = l.config.Admin
	}
	if m == "" {
		return ModeAll
	}
	return m
}

// Log records an event according to the category's mode. A nil Logger
// is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}
	mode := l.mode(event.Category)
	if mode == ModeOff {
		return
	}

	if mode == ModeAll || mode == ModeLog {
		l.logToZap(event)
	}
	if (mode == ModeAll || mode == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != 0 {
		fields = append(fields, zap.Int64("user_id", event.UserID))
	}
	if event.Username != "" {
		fields = append(fields, zap.String("username", event.Username))
	}
	if event.ActorID != 0 {
		fields = append(fields, zap.Int64("actor_id", event.ActorID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func fromRequest(r *http.Request, e audit.Event) audit.Event {
	e.IP = ratelimit.ClientIP(r)
	e.UserAgent = r.UserAgent()
	return e
}

// LoginFailed records a sign-in the backend refused or could not serve.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, username, reason string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		Username:      username,
		FailureReason: reason,
	}))
}

// LoginRateLimited records a sign-in refused by the login limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, username, reason string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginRateLimited,
		Username:      username,
		FailureReason: reason,
	}))
}

// Logout records a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, p models.UserProfile) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    p.UserID,
		Username:  p.Username,
		Success:   true,
	}))
}

// UserCreated records an account created from the user console.
func (l *Logger) UserCreated(ctx context.Context, r *http.Request, u models.NewUser) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserCreated,
		Username:  u.Username,
		ActorID:   u.CreatedBy,
		Success:   true,
		Details:   jurisdictionDetails(u),
	}))
}

// UserCreateFailed records a create-user request the backend refused.
func (l *Logger) UserCreateFailed(ctx context.Context, r *http.Request, u models.NewUser, reason string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAdmin,
		EventType:     audit.EventUserCreateFailed,
		Username:      u.Username,
		ActorID:       u.CreatedBy,
		FailureReason: reason,
		Details:       jurisdictionDetails(u),
	}))
}

func jurisdictionDetails(u models.NewUser) map[string]string {
	d := map[string]string{"user_type": u.UserTypeID.Name()}
	for _, kv := range []struct {
		key string
		id  models.LocationID
	}{
		{"district_id", u.DistrictID},
		{"subdivision_id", u.SubDivisionID},
		{"block_id", u.BlockID},
		{"gp_id", u.GPID},
	} {
		if kv.id.IsSet() {
			d[kv.key] = strconv.FormatInt(int64(kv.id), 10)
		}
	}
	return d
}
