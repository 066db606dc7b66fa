package filters

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/cascade"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/jurisdiction"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// ErrNoUser is returned when a panel is requested without a signed-in user.
var ErrNoUser = errors.New("filters: no signed-in user")

// TokenParam is the query/form key carrying the page token.
const TokenParam = "token"

// Pages opens and resumes filter panels for the signed-in user.
type Pages struct {
	Registry *cascade.Registry
	StateID  models.LocationID
	Log      *zap.Logger
}

// NewPages returns a Pages bound to registry.
func NewPages(registry *cascade.Registry, stateID models.LocationID, logger *zap.Logger) *Pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pages{Registry: registry, StateID: stateID, Log: logger}
}

// Resume returns the panel named by the request's token when it is still
// open, belongs to the user and has the wanted depth. Otherwise a new
// panel is opened and seeded from the user's jurisdiction.
func (p *Pages) Resume(r *http.Request, depth models.Level) (*cascade.Page, error) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return nil, ErrNoUser
	}

	if token := query.Get(r, TokenParam); token != "" {
		page, err := p.Registry.Get(token, u.UserID)
		if err == nil && page.Config().Depth == depth {
			return page, nil
		}
		if err != nil {
			p.Log.Debug("filter page not resumed, opening a new one",
				zap.String("token", token), zap.Error(err))
		}
	}

	scope := jurisdiction.Resolve(u.UserProfile)
	cfg := cascade.Config{StateID: p.StateID, Depth: depth}
	page := p.Registry.Open(r.Context(), u.UserID, cfg, scope)
	p.OpenFirstFreeLevel(r.Context(), page)
	return page, nil
}

// OpenFirstFreeLevel loads the options of the level right below the
// deepest locked one. Seeding stops at the scope's last level, so without
// this a district officer would face an empty sub-division list.
func (p *Pages) OpenFirstFreeLevel(ctx context.Context, page *cascade.Page) {
	deepest := page.Scope.Deepest()
	if deepest < models.LevelDistrict || deepest >= page.Config().Depth || !page.Locked(deepest) {
		return
	}
	if len(page.Options(deepest.Next())) > 0 {
		return
	}
	if err := page.SelectLevel(ctx, deepest, page.Selection().Get(deepest)); err != nil {
		p.Log.Debug("opening the first free filter level failed",
			zap.String("token", page.Token),
			zap.Stringer("level", deepest),
			zap.Error(err))
	}
}

// LevelVM is one dropdown of the panel.
type LevelVM struct {
	Key         string
	Label       string
	Placeholder string
	Locked      bool
	Selected    models.LocationID
	Options     []models.LocationNode
}

// PanelVM is what the filter_panel template renders.
type PanelVM struct {
	Token    string
	Levels   []LevelVM
	CanClear bool
}

// NewPanel builds the view model from a consistent snapshot of page.
func NewPanel(page *cascade.Page) PanelVM {
	st := page.Snapshot()
	vm := PanelVM{Token: page.Token}
	for level := models.LevelDistrict; level <= st.Depth; level++ {
		key := level.String()
		lv := LevelVM{
			Key:         key,
			Label:       level.Label(),
			Placeholder: level.Placeholder(),
			Locked:      st.Locked[key],
			Selected:    st.Selection.Get(level),
			Options:     st.Options[key],
		}
		if !lv.Locked && lv.Selected.IsSet() {
			vm.CanClear = true
		}
		vm.Levels = append(vm.Levels, lv)
	}
	return vm
}

// FilterFromRequest combines a panel selection with the start_date and
// end_date parameters. Dates that do not parse are left unset, and a
// reversed range is swapped.
func FilterFromRequest(r *http.Request, sel models.Selection) models.SurveyFilter {
	f := models.SurveyFilter{
		Selection: sel,
		StartDate: parseDate(query.Get(r, "start_date")),
		EndDate:   parseDate(query.Get(r, "end_date")),
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		f.StartDate, f.EndDate = f.EndDate, f.StartDate
	}
	return f
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SearchVM is what the search_form template renders. Extra carries
// page-specific hidden fields.
type SearchVM struct {
	Action    string
	Token     string
	StartDate string
	EndDate   string
	Extra     map[string]string
}

// NewSearch builds the search form for a page and the filter it produced.
func NewSearch(action string, page *cascade.Page, f models.SurveyFilter) SearchVM {
	return SearchVM{
		Action:    action,
		Token:     page.Token,
		StartDate: f.StartDateString(),
		EndDate:   f.EndDateString(),
	}
}
