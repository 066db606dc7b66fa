// internal/app/features/usermanagement/new.go
package usermanagement

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/errors"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/filters"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/store/audit"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/cascade"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/inputval"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/normalize"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/timeouts"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/viewdata"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// ActivityLimit is how many sign-ins and audit events the console lists.
const ActivityLimit = 20

// createUserInput defines validation rules for the create form.
// The jurisdiction is checked separately against the filter panel.
type createUserInput struct {
	Username string `validate:"required,min=3,max=50,printascii" label:"Username"`
	Password string `validate:"required,min=8,max=72" label:"Password"`
	FullName string `validate:"required,max=100" label:"Full name"`
	UserType string `validate:"required,oneof=2 3 4 5" label:"User type"`
}

type typeOption struct {
	Value    int
	Label    string
	Selected bool
}

type formData struct {
	viewdata.BaseVM
	Panel    filters.PanelVM
	Action   string
	Types    []typeOption
	Username string
	FullName string
	Error    string
	Created  string

	ShowActivity bool
	Logins       []models.LoginRecord
	Events       []audit.Event
}

// ServeNew renders the create-user form with a location panel down to
// gram panchayat level.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	page, err := h.Pages.Resume(r, models.LevelGramPanchayat)
	if err != nil {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	h.render(w, r, page, formData{Created: normalize.QueryParam(query.Get(r, "created"))}, 0)
}

// HandleCreate validates the form, checks that the panel reaches the
// level the chosen user type is bound to and registers the account.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	page, err := h.Pages.Resume(r, models.LevelGramPanchayat)
	if err != nil {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/users")
		return
	}

	input := createUserInput{
		Username: normalize.Username(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		FullName: normalize.Name(r.PostFormValue("full_name")),
		UserType: normalize.QueryParam(r.PostFormValue("user_type")),
	}
	typeID, _ := strconv.Atoi(input.UserType)
	userType := models.UserType(typeID)

	reRender := func(msg string) {
		h.render(w, r, page, formData{
			Username: input.Username,
			FullName: input.FullName,
			Error:    msg,
		}, userType)
	}

	if token := query.Get(r, filters.TokenParam); token != page.Token {
		reRender("The form expired. Please choose the location again.")
		return
	}
	if result := inputval.Validate(input); result.HasErrors() {
		reRender(result.First())
		return
	}
	if strings.ContainsAny(input.Username, " \t") {
		reRender("Username cannot contain spaces.")
		return
	}

	sel := page.Selection()
	if missing := missingLevel(sel, userType); missing != 0 {
		reRender(fmt.Sprintf("Choose a %s for a %s.", missing.Label(), userType.Label()))
		return
	}

	nu := newUser(input, userType, sel, actor.UserID)
	if err := h.Accounts.CreateUser(r.Context(), nu); err != nil {
		h.Log.Warn("create user failed",
			zap.String("username", nu.Username),
			zap.String("user_type", userType.Name()),
			zap.Error(err))
		h.Audit.UserCreateFailed(r.Context(), r, nu, err.Error())
		reRender(uierrors.BackendMessage(err, "Unable to create the user. Please try again."))
		return
	}
	h.Audit.UserCreated(r.Context(), r, nu)

	h.Pages.Registry.Close(page.Token)
	http.Redirect(w, r, "/users?created="+url.QueryEscape(nu.Username), http.StatusSeeOther)
}

// missingLevel returns the first level between district and the type's
// own level that the selection leaves unset, or 0.
func missingLevel(sel models.Selection, t models.UserType) models.Level {
	for l := models.LevelDistrict; l <= t.Level(); l++ {
		if !sel.Get(l).IsSet() {
			return l
		}
	}
	return 0
}

// newUser builds the backend request. Levels below the type's own level
// are sent unset even when the panel went deeper.
func newUser(in createUserInput, t models.UserType, sel models.Selection, createdBy int64) models.NewUser {
	bound := models.Selection{StateID: sel.StateID}
	for l := models.LevelDistrict; l <= t.Level(); l++ {
		bound = bound.Set(l, sel.Get(l))
	}
	return models.NewUser{
		Username:      in.Username,
		Password:      in.Password,
		FullName:      in.FullName,
		UserTypeID:    t,
		StateID:       bound.StateID,
		DistrictID:    bound.DistrictID,
		SubDivisionID: bound.SubDivisionID,
		BlockID:       bound.BlockID,
		GPID:          bound.GPID,
		CreatedBy:     createdBy,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page *cascade.Page, data formData, selected models.UserType) {
	data.BaseVM = viewdata.NewBaseVM(r, "User Management", "/dashboard")
	data.Panel = filters.NewPanel(page)
	data.Action = "/users?" + filters.TokenParam + "=" + url.QueryEscape(page.Token)
	for _, t := range models.AssignableUserTypes {
		data.Types = append(data.Types, typeOption{Value: int(t), Label: t.Label(), Selected: t == selected})
	}
	h.loadActivity(r.Context(), &data)
	templates.Render(w, r, "user_new", data)
}

// loadActivity fills the recent sign-ins and admin events. Failures only
// hide the tables.
func (h *Handler) loadActivity(ctx context.Context, data *formData) {
	if h.Logins == nil && h.Trail == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	data.ShowActivity = true
	if h.Logins != nil {
		logins, err := h.Logins.Recent(ctx, ActivityLimit)
		if err != nil {
			h.Log.Warn("recent logins failed", zap.Error(err))
		}
		data.Logins = logins
	}
	if h.Trail != nil {
		events, err := h.Trail.Recent(ctx, audit.CategoryAdmin, ActivityLimit)
		if err != nil {
			h.Log.Warn("recent audit events failed", zap.Error(err))
		}
		data.Events = events
	}
}
