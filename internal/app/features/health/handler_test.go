package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/features/health"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/backend"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/testutil"
	"go.uber.org/zap"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	return rec, body
}

func TestServe_BackendReachableNoDatabase(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	bc, err := backend.New(fb.BaseURL(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}

	rec, body := serve(t, health.NewHandler(nil, bc, zap.NewNop()))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body["status"] != "ok" || body["database"] != "disabled" || body["backend"] != "reachable" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestServe_BackendDown(t *testing.T) {
	rec, body := serve(t, health.NewHandler(nil, pinger{err: errors.New("connection refused")}, zap.NewNop()))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if body["status"] != "error" || body["backend"] != "unreachable" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)

	rec, body := serve(t, health.NewHandler(db.Client(), pinger{}, zap.NewNop()))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body["database"] != "connected" {
		t.Errorf("database: got %v", body["database"])
	}
}
