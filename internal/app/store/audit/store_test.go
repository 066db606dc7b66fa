package audit_test

import (
	"testing"
	"time"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/store/audit"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/testutil"
)

func TestStore_LogAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []audit.Event{
		{Category: audit.CategoryAdmin, EventType: audit.EventUserCreated, ActorID: 1, Username: "bdo_mal", Success: true, Timestamp: base},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailed, Username: "ghost", Timestamp: base.Add(time.Minute)},
		{Category: audit.CategoryAdmin, EventType: audit.EventUserCreateFailed, ActorID: 2, Username: "dup", Timestamp: base.Add(2 * time.Minute)},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	admin, err := store.Recent(ctx, audit.CategoryAdmin, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(admin) != 2 {
		t.Fatalf("expected 2 admin events, got %d", len(admin))
	}
	if admin[0].Username != "dup" || admin[1].Username != "bdo_mal" {
		t.Errorf("expected newest first, got %s then %s", admin[0].Username, admin[1].Username)
	}
	if admin[0].ID.IsZero() {
		t.Error("expected an id to be assigned")
	}

	byActor, err := store.Query(ctx, audit.QueryFilter{ActorID: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byActor) != 1 || byActor[0].EventType != audit.EventUserCreated {
		t.Errorf("unexpected actor events %+v", byActor)
	}

	limited, err := store.Query(ctx, audit.QueryFilter{Limit: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit not applied: %d", len(limited))
	}

	window, err := store.Query(ctx, audit.QueryFilter{Since: base.Add(time.Minute), Until: base.Add(2 * time.Minute)})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(window) != 1 || window[0].Username != "ghost" {
		t.Errorf("time window not applied: %+v", window)
	}

	none, err := store.Query(ctx, audit.QueryFilter{Username: "nobody"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no events, got %+v", none)
	}
}
