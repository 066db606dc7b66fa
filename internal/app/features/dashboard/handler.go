// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/errors"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/filters"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/tableview"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/viewdata"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// Counter is the survey call the dashboard needs.
type Counter interface {
	DashboardCounts(ctx context.Context, f models.SurveyFilter) (models.DashboardCounts, error)
}

type Handler struct {
	Pages   *filters.Pages
	Surveys Counter
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(pages *filters.Pages, surveys Counter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Pages:   pages,
		Surveys: surveys,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// Section is one titled group of counter cards.
type Section struct {
	Title string
	Stats []tableview.Stat
}

type cardsData struct {
	Sections []Section
	Error    string
}

type dashboardData struct {
	viewdata.BaseVM
	Panel  filters.PanelVM
	Search filters.SearchVM
	Cards  cardsData
}

type countsResponse struct {
	Token     string                 `json:"token"`
	Selection models.Selection       `json:"selection"`
	StartDate string                 `json:"start_date,omitempty"`
	EndDate   string                 `json:"end_date,omitempty"`
	Counts    models.DashboardCounts `json:"counts"`
}

// ServeDashboard renders the summary cards for the panel's selection.
// HTMX requests get only the cards.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	page, err := h.Pages.Resume(r, models.LevelTeaGarden)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	f := filters.FilterFromRequest(r, page.Selection())

	cards := cardsData{}
	counts, err := h.Surveys.DashboardCounts(r.Context(), f)
	if err != nil {
		h.Log.Warn("dashboard counts failed", zap.Error(err), zap.Int64("district_id", int64(f.DistrictID)))
		cards.Error = loadError(err)
	} else {
		cards.Sections = Sections(counts)
	}

	if r.Header.Get("HX-Request") == "true" {
		templates.RenderSnippet(w, "dashboard_cards", cards)
		return
	}
	templates.Render(w, r, "dashboard", dashboardData{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/dashboard"),
		Panel:  filters.NewPanel(page),
		Search: filters.NewSearch("/dashboard", page, f),
		Cards:  cards,
	})
}

// ServeCounts is the JSON form of the dashboard.
func (h *Handler) ServeCounts(w http.ResponseWriter, r *http.Request) {
	page, err := h.Pages.Resume(r, models.LevelTeaGarden)
	if err != nil {
		h.ErrLog.JSON(w, r, http.StatusUnauthorized, "dashboard counts without a user", err, "Please sign in to continue.")
		return
	}
	f := filters.FilterFromRequest(r, page.Selection())

	counts, err := h.Surveys.DashboardCounts(r.Context(), f)
	if err != nil {
		h.ErrLog.JSON(w, r, http.StatusBadGateway, "dashboard counts failed", err, loadError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(countsResponse{
		Token:     page.Token,
		Selection: f.Selection,
		StartDate: f.StartDateString(),
		EndDate:   f.EndDateString(),
		Counts:    counts,
	})
}

func loadError(err error) string {
	return uierrors.BackendMessage(err, "Unable to load the survey counts. Please try again.")
}
