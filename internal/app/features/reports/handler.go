// internal/app/features/reports/handler.go
package reports

import (
	"context"

	uierrors "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/errors"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/filters"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/surveys"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// Source is the set of survey calls behind the report pages.
type Source interface {
	DashboardCounts(ctx context.Context, f models.SurveyFilter) (models.DashboardCounts, error)
	WelfareDetails(ctx context.Context, f models.SurveyFilter) (models.ReportTable, error)
	HouseholdsSurveyed(ctx context.Context, f models.SurveyFilter) (models.ReportTable, error)
	WelfareProgramAnalytics(ctx context.Context, f models.SurveyFilter) (models.ReportTable, error)
	HealthDetails(ctx context.Context, f models.SurveyFilter, q surveys.HealthQuery) (models.ReportTable, error)
}

// Handler owns the report pages and their CSV exports.
//
// Each page resumes or opens a filter panel, fetches the whole result set
// for the panel's selection and date range, and pages through it in
// memory.
type Handler struct {
	Pages   *filters.Pages
	Surveys Source
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs a reports Handler.
func NewHandler(pages *filters.Pages, src Source, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Pages:   pages,
		Surveys: src,
		ErrLog:  errLog,
		Log:     logger,
	}
}
