// Package backend is the JSON-over-POST client for the survey REST service.
//
// Every endpoint takes a JSON body and answers with the envelope
//
//	{ "success": bool, "data": T, "message": "..." }
//
// Post decodes data into the caller's value on success and reports
// failures as either a transport error (ErrTransport) or a
// *RejectionError when the backend answered success=false.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/metrics"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-call id so backend logs can be matched to ours.
const RequestIDHeader = "X-Request-ID"

// maxBody caps how much of a response we read.
const maxBody = 8 << 20

// ErrTransport marks network failures, non-2xx statuses, and bodies that
// are not a valid envelope.
var ErrTransport = errors.New("backend transport error")

// RejectionError is returned when the backend answered success=false.
type RejectionError struct {
	Endpoint string
	Message  string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected %s", e.Endpoint)
	}
	return fmt.Sprintf("backend rejected %s: %s", e.Endpoint, e.Message)
}

// IsRejection reports whether err is a backend rejection and returns it.
func IsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// Client talks to one backend base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *zap.Logger
}

// New parses baseURL and returns a client. httpClient may be nil, in which
// case a client with a 30s ceiling is used; per-call deadlines come from ctx.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: u, httpClient: httpClient, log: logger}, nil
}

// BaseURL returns the configured base URL as a string.
func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) endpointURL(endpoint string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(endpoint, "/")
	return u.String()
}

// Post sends reqBody to endpoint and decodes the envelope's data into out
// (out may be nil when the caller only needs success).
func (c *Client) Post(ctx context.Context, endpoint string, reqBody any, out any) error {
	start := time.Now()
	err := c.post(ctx, endpoint, reqBody, out)

	result := metrics.ResultOK
	if err != nil {
		if _, ok := IsRejection(err); ok {
			result = metrics.ResultRejected
		} else {
			result = metrics.ResultTransport
		}
	}
	metrics.BackendRequest(endpoint, result, time.Since(start))
	return err
}

func (c *Client) post(ctx context.Context, endpoint string, reqBody any, out any) error {
	b, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: build %s request: %v", ErrTransport, endpoint, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTransport, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", ErrTransport, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug("backend non-2xx",
			zap.String("endpoint", endpoint),
			zap.String("request_id", reqID),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: %s: status %d", ErrTransport, endpoint, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("%w: decode %s envelope: %v", ErrTransport, endpoint, err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return &RejectionError{Endpoint: endpoint, Message: msg}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode %s data: %v", ErrTransport, endpoint, err)
	}
	return nil
}

// Ping checks that the backend host answers HTTP at all. Any status code
// counts as reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: build ping: %v", ErrTransport, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ping: %v", ErrTransport, err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
	return nil
}
