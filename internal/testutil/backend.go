package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// BackendCall records one request received by a FakeBackend.
type BackendCall struct {
	Endpoint string
	Header   http.Header
	Body     map[string]any
}

// FakeBackend is an httptest server that speaks the survey backend's
// { success, data, message } envelope. Endpoints without a registered
// responder answer 404.
type FakeBackend struct {
	*httptest.Server

	mu         sync.Mutex
	responders map[string]func(body map[string]any) (int, any)
	calls      []BackendCall
}

// NewFakeBackend starts a fake backend that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{responders: make(map[string]func(map[string]any) (int, any))}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	endpoint := strings.TrimPrefix(r.URL.Path, "/")

	var body map[string]any
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, BackendCall{Endpoint: endpoint, Header: r.Header.Clone(), Body: body})
	fn, ok := f.responders[endpoint]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	status, resp := fn(body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if resp != nil {
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Handle registers a custom responder for endpoint.
func (f *FakeBackend) Handle(endpoint string, fn func(body map[string]any) (int, any)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responders[endpoint] = fn
}

// Reply makes endpoint answer success with data.
func (f *FakeBackend) Reply(endpoint string, data any) {
	f.Handle(endpoint, func(map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"success": true, "data": data}
	})
}

// Reject makes endpoint answer success=false with message.
func (f *FakeBackend) Reject(endpoint, message string) {
	f.Handle(endpoint, func(map[string]any) (int, any) {
		return http.StatusOK, map[string]any{"success": false, "message": message}
	})
}

// Fail makes endpoint answer the given HTTP status with no envelope.
func (f *FakeBackend) Fail(endpoint string, status int) {
	f.Handle(endpoint, func(map[string]any) (int, any) {
		return status, nil
	})
}

// Calls returns the bodies received for endpoint, in arrival order.
func (f *FakeBackend) Calls(endpoint string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []map[string]any
	for _, c := range f.calls {
		if c.Endpoint == endpoint {
			out = append(out, c.Body)
		}
	}
	return out
}

// Requests returns the full requests received for endpoint.
func (f *FakeBackend) Requests(endpoint string) []BackendCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []BackendCall
	for _, c := range f.calls {
		if c.Endpoint == endpoint {
			out = append(out, c)
		}
	}
	return out
}

// BaseURL returns the base URL with a trailing slash, matching how the
// dashboard is configured in production.
func (f *FakeBackend) BaseURL() string {
	return f.Server.URL + "/"
}
