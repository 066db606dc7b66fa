package backend_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/backend"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/testutil"
	"go.uber.org/zap"
)

type row struct {
	ID   int64  `json:"id"`
	Name string `json:"district_name"`
}

func newClient(t *testing.T, fb *testutil.FakeBackend) *backend.Client {
	t.Helper()
	c, err := backend.New(fb.BaseURL(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := backend.New("/api/", nil, zap.NewNop()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestPost_DecodesData(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Reply("dropdownList/getDistrictsByState", []map[string]any{
		{"id": 3, "district_name": "Darjeeling"},
		{"id": 1, "district_name": "Alipurduar"},
	})
	c := newClient(t, fb)

	var rows []row
	err := c.Post(context.Background(), "dropdownList/getDistrictsByState", map[string]int{"state_id": 1}, &rows)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Darjeeling" || rows[1].ID != 1 {
		t.Errorf("unexpected rows: %+v", rows)
	}

	calls := fb.Calls("dropdownList/getDistrictsByState")
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0]["state_id"] != float64(1) {
		t.Errorf("state_id: got %v", calls[0]["state_id"])
	}
}

func TestPost_SendsRequestID(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Handle("ping", func(map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"success": true}
	})
	c := newClient(t, fb)

	if err := c.Post(context.Background(), "ping", map[string]any{}, nil); err != nil {
		t.Fatalf("Post: %v", err)
	}
	reqs := fb.Requests("ping")
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Header.Get(backend.RequestIDHeader) == "" {
		t.Error("expected X-Request-ID header to be set")
	}
	if ct := reqs[0].Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestPost_Rejection(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Reject("auth/login", "Invalid username or password")
	c := newClient(t, fb)

	err := c.Post(context.Background(), "auth/login", map[string]string{"username": "x"}, nil)
	rej, ok := backend.IsRejection(err)
	if !ok {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rej.Message != "Invalid username or password" {
		t.Errorf("Message: got %q", rej.Message)
	}
	if errors.Is(err, backend.ErrTransport) {
		t.Error("rejection must not be reported as a transport error")
	}
}

func TestPost_Non2xxIsTransportError(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Fail("dashboardCount", http.StatusBadGateway)
	c := newClient(t, fb)

	err := c.Post(context.Background(), "dashboardCount", map[string]int{}, nil)
	if !errors.Is(err, backend.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestPost_UnknownEndpointIsTransportError(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb)

	err := c.Post(context.Background(), "missing", map[string]int{}, nil)
	if !errors.Is(err, backend.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestPost_DeadlineIsTransportError(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	release := make(chan struct{})
	fb.Handle("slow", func(map[string]any) (int, any) {
		<-release
		return http.StatusOK, map[string]any{"success": true}
	})
	defer close(release)
	c := newClient(t, fb)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Post(ctx, "slow", map[string]int{}, nil)
	if !errors.Is(err, backend.ErrTransport) {
		t.Fatalf("expected ErrTransport on deadline, got %v", err)
	}
}

func TestPing(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newClient(t, fb)

	// The fake answers 404 on the root; any HTTP answer is reachable.
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}

	fb.Close()
	if err := c.Ping(context.Background()); !errors.Is(err, backend.ErrTransport) {
		t.Errorf("expected ErrTransport after close, got %v", err)
	}
}
