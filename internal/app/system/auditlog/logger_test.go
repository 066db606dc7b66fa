package auditlog_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/store/audit"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auditlog"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memRecorder struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (m *memRecorder) Log(_ context.Context, e audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	req := httptest.NewRequest("POST", "/login", nil)

	// All no-ops.
	logger.Log(context.Background(), audit.Event{EventType: "test"})
	logger.LoginFailed(context.Background(), req, "x", "bad password")
	logger.Logout(context.Background(), req, models.UserProfile{UserID: 1})
}

func TestLogger_Modes(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		wantDB  int
		wantZap int
	}{
		{"all", auditlog.ModeAll, 1, 1},
		{"default is all", "", 1, 1},
		{"db", auditlog.ModeDB, 1, 0},
		{"log", auditlog.ModeLog, 0, 1},
		{"off", auditlog.ModeOff, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &memRecorder{}
			core, logs := observer.New(zap.InfoLevel)
			logger := auditlog.New(rec, zap.New(core), auditlog.Config{Admin: tt.mode, Auth: auditlog.ModeOff})

			req := httptest.NewRequest("POST", "/users", nil)
			logger.UserCreated(context.Background(), req, models.NewUser{Username: "bdo_mal", UserTypeID: models.UserTypeBlock, CreatedBy: 1})
			logger.LoginFailed(context.Background(), req, "ghost", "rejected")

			if len(rec.events) != tt.wantDB {
				t.Errorf("db events: got %d, want %d", len(rec.events), tt.wantDB)
			}
			if logs.Len() != tt.wantZap {
				t.Errorf("zap entries: got %d, want %d", logs.Len(), tt.wantZap)
			}
		})
	}
}

func TestLogger_UserCreatedDetails(t *testing.T) {
	rec := &memRecorder{}
	logger := auditlog.New(rec, zap.NewNop(), auditlog.Config{})

	req := httptest.NewRequest("POST", "/users", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	logger.UserCreated(context.Background(), req, models.NewUser{
		Username:      "bdo_mal",
		UserTypeID:    models.UserTypeBlock,
		DistrictID:    5,
		SubDivisionID: 12,
		BlockID:       30,
		CreatedBy:     42,
	})

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.Category != audit.CategoryAdmin || e.EventType != audit.EventUserCreated || !e.Success {
		t.Errorf("unexpected event %+v", e)
	}
	if e.ActorID != 42 || e.Username != "bdo_mal" || e.IP != "10.1.2.3" {
		t.Errorf("unexpected who/where %+v", e)
	}
	if e.Details["user_type"] != "block" || e.Details["block_id"] != "30" {
		t.Errorf("unexpected details %v", e.Details)
	}
	if _, ok := e.Details["gp_id"]; ok {
		t.Error("unset levels should be omitted")
	}
}

func TestLogger_NilRecorderAndStoreErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := auditlog.New(nil, zap.New(core), auditlog.Config{})
	req := httptest.NewRequest("POST", "/login", nil)
	logger.LoginFailed(context.Background(), req, "ghost", "rejected")
	if logs.Len() != 1 {
		t.Errorf("expected the zap entry only, got %d", logs.Len())
	}

	core, logs = observer.New(zap.InfoLevel)
	logger = auditlog.New(&memRecorder{err: errors.New("down")}, zap.New(core), auditlog.Config{Auth: auditlog.ModeDB})
	logger.LoginFailed(context.Background(), req, "ghost", "rejected")
	if logs.FilterMessage("failed to store audit event").Len() != 1 {
		t.Error("store failure should be logged")
	}
}
