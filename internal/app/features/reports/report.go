package reports

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/errors"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/filters"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/csvutil"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/paging"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/surveys"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/tableview"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/viewdata"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

const loadFailed = "Unable to load the report. Please try again."

// tableData is the part of the page HTMX swaps.
type tableData struct {
	Headers []string
	Rows    []tableview.Row
	Range   paging.Range
	Total   int
	HasPrev bool
	HasNext bool
	PrevURL string
	NextURL string
	CSVURL  string
	Error   string
}

type pageData struct {
	viewdata.BaseVM
	Report string
	Panel  filters.PanelVM
	Search filters.SearchVM
	Health []healthField
	Table  tableData
}

// ServeWelfare handles /reports/welfare, the welfare beneficiary rows.
func (h *Handler) ServeWelfare(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, welfareReport, surveys.HealthQuery{})
}

// ServeHouseholds handles /reports/households, one row per surveyed household.
func (h *Handler) ServeHouseholds(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, householdsReport, surveys.HealthQuery{})
}

// ServeLivelihoods handles /reports/livelihoods, enrolment counts per welfare program.
func (h *Handler) ServeLivelihoods(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, livelihoodsReport, surveys.HealthQuery{})
}

// ServeAnalytics handles /reports/analytics, the dashboard counters as a table at block depth.
func (h *Handler) ServeAnalytics(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, analyticsReport, surveys.HealthQuery{})
}

// ServeHealth handles /reports/health/{kind} for kind all, sam or mam.
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if !surveys.ValidHealthKind(kind) {
		uierrors.RenderNotFound(w, r, "There is no such health report.", "/reports/health/all")
		return
	}
	h.serve(w, r, healthReport(kind), parseHealthQuery(r, kind))
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, rep report, hq surveys.HealthQuery) {
	page, err := h.Pages.Resume(r, rep.Depth)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	f := filters.FilterFromRequest(r, page.Selection())

	table, err := rep.fetch(r.Context(), h.Surveys, f, hq)
	if err != nil {
		h.Log.Warn("report fetch failed",
			zap.String("report", rep.Slug),
			zap.Int64("district_id", int64(f.DistrictID)),
			zap.Error(err))
	}

	if query.Get(r, "format") == "csv" {
		if err != nil {
			h.ErrLog.LogServerError(w, r, "report export failed", err, uierrors.BackendMessage(err, loadFailed), rep.Path)
			return
		}
		h.writeCSV(w, rep, f, table)
		return
	}

	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, rep.Title, "/dashboard"),
		Report: rep.Slug,
		Panel:  filters.NewPanel(page),
		Search: filters.NewSearch(rep.Path, page, f),
		Table:  newTableData(r, page.Token, table, err),
	}
	if rep.health {
		data.Health = healthVM(hq.Kind, hq)
	}

	if r.Header.Get("HX-Request") == "true" {
		templates.RenderSnippet(w, "report_table", data.Table)
		return
	}
	templates.Render(w, r, "report_page", data)
}

func newTableData(r *http.Request, token string, table models.ReportTable, err error) tableData {
	td := tableData{CSVURL: linkWith(r, token, "format", "csv")}
	if err != nil {
		td.Error = uierrors.BackendMessage(err, loadFailed)
		return td
	}

	pg := paging.Slice(tableview.Rows(table), paging.ParseStart(r))
	td.Headers = tableview.Headers(table)
	td.Rows = pg.Rows
	td.Range = pg.Range
	td.Total = pg.Total
	td.HasPrev = pg.HasPrev
	td.HasNext = pg.HasNext
	if pg.HasPrev {
		td.PrevURL = linkWith(r, token, "start", strconv.Itoa(pg.Range.PrevStart))
	}
	if pg.HasNext {
		td.NextURL = linkWith(r, token, "start", strconv.Itoa(pg.Range.NextStart))
	}
	return td
}

// linkWith returns the current path and query with the page token and
// one extra parameter set.
func linkWith(r *http.Request, token, key, value string) string {
	q := r.URL.Query()
	q.Del("format")
	if key == "format" {
		q.Del("start")
	}
	q.Set(filters.TokenParam, token)
	q.Set(key, value)
	return r.URL.Path + "?" + q.Encode()
}

func (h *Handler) writeCSV(w http.ResponseWriter, rep report, f models.SurveyFilter, table models.ReportTable) {
	rendered := tableview.Rows(table)
	rows := make([][]string, len(rendered))
	for i, row := range rendered {
		rows[i] = row
	}

	csvutil.SetDownloadHeaders(w, csvFilename(rep, f))
	if err := csvutil.WriteTable(w, tableview.Headers(table), rows); err != nil {
		h.Log.Error("CSV write failed", zap.String("report", rep.Slug), zap.Error(err))
	}
}

// csvFilename is "<report>.csv" or "<report>_<start>_<end>.csv" when a
// date range is set.
func csvFilename(rep report, f models.SurveyFilter) string {
	if f.StartDate.IsZero() && f.EndDate.IsZero() {
		return rep.Slug + ".csv"
	}
	from, to := "start", "today"
	if !f.StartDate.IsZero() {
		from = f.StartDate.Format("20060102")
	}
	if !f.EndDate.IsZero() {
		to = f.EndDate.Format("20060102")
	}
	return fmt.Sprintf("%s_%s_%s.csv", rep.Slug, from, to)
}
