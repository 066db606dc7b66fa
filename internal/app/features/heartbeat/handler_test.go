package heartbeat_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/heartbeat"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/cascade"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/testutil"
	"go.uber.org/zap"
)

type emptyLookup struct{}

func (emptyLookup) List(context.Context, models.Level, models.LocationID) []models.LocationNode {
	return nil
}

func newHandler(ttl time.Duration) (*heartbeat.Handler, *cascade.Registry) {
	reg := cascade.NewRegistry(emptyLookup{}, 8, ttl, zap.NewNop())
	return heartbeat.NewHandler(reg, zap.NewNop()), reg
}

func beat(h *heartbeat.Handler, user models.UserProfile, body, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/heartbeat", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHeartbeat(rec, testutil.WithUser(req, user))
	return rec
}

func TestHeartbeat_RenewsOpenPage(t *testing.T) {
	h, reg := newHandler(time.Hour)
	admin := testutil.StateAdmin()
	page := reg.Open(context.Background(), admin.UserID, cascade.Config{StateID: 1}, models.JurisdictionScope{})

	rec := beat(h, admin, `{"token":"`+page.Token+`"}`, "application/json")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = beat(h, admin, "token="+page.Token, "application/x-www-form-urlencoded")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("form post: expected 204, got %d", rec.Code)
	}
}

func TestHeartbeat_JSONWithCharset(t *testing.T) {
	h, reg := newHandler(time.Hour)
	admin := testutil.StateAdmin()
	page := reg.Open(context.Background(), admin.UserID, cascade.Config{StateID: 1}, models.JurisdictionScope{})

	for _, ct := range []string{"application/json; charset=utf-8", "Application/JSON"} {
		rec := beat(h, admin, `{"token":"`+page.Token+`"}`, ct)
		if rec.Code != http.StatusNoContent {
			t.Errorf("%s: expected 204, got %d", ct, rec.Code)
		}
	}
}

func TestHeartbeat_ExpiredPage(t *testing.T) {
	h, _ := newHandler(time.Hour)

	rec := beat(h, testutil.StateAdmin(), `{"token":"gone"}`, "application/json")
	if rec.Code != http.StatusGone {
		t.Fatalf("expected 410, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Refresh") != "true" {
		t.Error("expected HX-Refresh on an expired page")
	}
}

func TestHeartbeat_OtherUsersPage(t *testing.T) {
	h, reg := newHandler(time.Hour)
	page := reg.Open(context.Background(), 99, cascade.Config{StateID: 1}, models.JurisdictionScope{})

	rec := beat(h, testutil.StateAdmin(), `{"token":"`+page.Token+`"}`, "application/json")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestHeartbeat_MissingToken(t *testing.T) {
	h, _ := newHandler(time.Hour)

	rec := beat(h, testutil.StateAdmin(), `{}`, "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHeartbeat_NoUser(t *testing.T) {
	h, _ := newHandler(time.Hour)
	req := httptest.NewRequest(http.MethodPost, "/heartbeat", strings.NewReader(`{"token":"x"}`))
	rec := httptest.NewRecorder()
	h.ServeHeartbeat(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
