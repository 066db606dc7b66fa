// internal/app/features/usermanagement/handler.go
package usermanagement

import (
	"context"

	uierrors "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/errors"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/filters"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/store/audit"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auditlog"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// Creator registers accounts with the backend.
type Creator interface {
	CreateUser(ctx context.Context, u models.NewUser) error
}

// LoginHistory lists recent sign-ins.
type LoginHistory interface {
	Recent(ctx context.Context, limit int64) ([]models.LoginRecord, error)
}

// AuditTrail lists recent audit events of a category.
type AuditTrail interface {
	Recent(ctx context.Context, category string, limit int64) ([]audit.Event, error)
}

// Handler serves the user console. Logins and Trail are nil when
// MongoDB is not configured; the activity tables are then hidden.
type Handler struct {
	Pages    *filters.Pages
	Accounts Creator
	Logins   LoginHistory
	Trail    AuditTrail
	Audit    *auditlog.Logger
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(
	pages *filters.Pages,
	accounts Creator,
	logins LoginHistory,
	trail AuditTrail,
	auditLog *auditlog.Logger,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Pages:    pages,
		Accounts: accounts,
		Logins:   logins,
		Trail:    trail,
		Audit:    auditLog,
		ErrLog:   errLog,
		Log:      logger,
	}
}
