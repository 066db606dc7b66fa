package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
)

// StateAdmin returns a profile with no jurisdiction restriction.
func StateAdmin() models.UserProfile {
	return models.UserProfile{
		UserID:     1,
		Username:   "state.admin",
		FullName:   "State Admin",
		UserTypeID: models.UserTypeStateAdmin,
		StateID:    1,
	}
}

// DistrictOfficer returns a profile scoped to one district.
func DistrictOfficer(districtID int64) models.UserProfile {
	return models.UserProfile{
		UserID:     2,
		Username:   "district.officer",
		FullName:   "District Officer",
		UserTypeID: models.UserTypeDistrict,
		StateID:    1,
		DistrictID: districtID,
	}
}

// BlockOfficer returns a profile scoped down to a block.
func BlockOfficer(districtID, subDivisionID, blockID int64) models.UserProfile {
	return models.UserProfile{
		UserID:        3,
		Username:      "block.officer",
		FullName:      "Block Officer",
		UserTypeID:    models.UserTypeBlock,
		StateID:       1,
		DistrictID:    districtID,
		SubDivisionID: subDivisionID,
		BlockID:       blockID,
	}
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, p models.UserProfile) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{UserProfile: p})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, p models.UserProfile) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), p)
}

// NewFormRequest creates a POST with an urlencoded body.
func NewFormRequest(target, form string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
