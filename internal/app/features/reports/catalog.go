package reports

import (
	"context"
	"strings"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/surveys"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/tableview"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
)

// report describes one report page.
type report struct {
	Slug  string
	Title string
	Path  string
	Depth models.Level
	// health pages carry the categorical health filters.
	health bool
	fetch  func(ctx context.Context, src Source, f models.SurveyFilter, q surveys.HealthQuery) (models.ReportTable, error)
}

var (
	welfareReport = report{
		Slug:  "welfare",
		Title: "Welfare Beneficiaries",
		Path:  "/reports/welfare",
		Depth: models.LevelTeaGarden,
		fetch: func(ctx context.Context, src Source, f models.SurveyFilter, _ surveys.HealthQuery) (models.ReportTable, error) {
			return src.WelfareDetails(ctx, f)
		},
	}

	householdsReport = report{
		Slug:  "households",
		Title: "Surveyed Households",
		Path:  "/reports/households",
		Depth: models.LevelTeaGarden,
		fetch: func(ctx context.Context, src Source, f models.SurveyFilter, _ surveys.HealthQuery) (models.ReportTable, error) {
			return src.HouseholdsSurveyed(ctx, f)
		},
	}

	livelihoodsReport = report{
		Slug:  "livelihoods",
		Title: "Livelihoods",
		Path:  "/reports/livelihoods",
		Depth: models.LevelTeaGarden,
		fetch: func(ctx context.Context, src Source, f models.SurveyFilter, _ surveys.HealthQuery) (models.ReportTable, error) {
			return src.WelfareProgramAnalytics(ctx, f)
		},
	}

	analyticsReport = report{
		Slug:  "analytics",
		Title: "Analytics",
		Path:  "/reports/analytics",
		Depth: models.LevelBlock,
		fetch: func(ctx context.Context, src Source, f models.SurveyFilter, _ surveys.HealthQuery) (models.ReportTable, error) {
			counts, err := src.DashboardCounts(ctx, f)
			if err != nil {
				return models.ReportTable{}, err
			}
			return countsTable(counts), nil
		},
	}
)

// healthReport returns the health-metrics report for kind, which must
// already be valid.
func healthReport(kind string) report {
	kind = strings.ToLower(kind)
	title := "Health Metrics"
	switch kind {
	case "sam":
		title = "SAM Cases"
	case "mam":
		title = "MAM Cases"
	}
	return report{
		Slug:   "health_" + kind,
		Title:  title,
		Path:   "/reports/health/" + kind,
		Depth:  models.LevelTeaGarden,
		health: true,
		fetch: func(ctx context.Context, src Source, f models.SurveyFilter, q surveys.HealthQuery) (models.ReportTable, error) {
			q.Kind = kind
			return src.HealthDetails(ctx, f, q)
		},
	}
}

// countsTable lays the dashboard counters out as a metric/count table.
func countsTable(counts models.DashboardCounts) models.ReportTable {
	stats := tableview.Stats(counts)
	t := models.ReportTable{
		Columns: []string{"metric", "count"},
		Rows:    make([]map[string]any, 0, len(stats)),
	}
	for _, s := range stats {
		t.Rows = append(t.Rows, map[string]any{"metric": s.Label, "count": s.Value})
	}
	return t
}
