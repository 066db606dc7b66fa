package locations_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/backend"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/locations"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/testutil"
	"go.uber.org/zap"
)

func newClient(t *testing.T) (*locations.Client, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	bc, err := backend.New(fb.BaseURL(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	return locations.New(bc, zap.NewNop()), fb
}

func TestListDistricts_PreservesOrder(t *testing.T) {
	c, fb := newClient(t)
	fb.Reply("dropdownList/getDistrictsByState", []map[string]any{
		{"id": 7, "district_name": "Jalpaiguri"},
		{"id": 3, "district_name": "Darjeeling"},
		{"id": 12, "district_name": "Alipurduar"},
	})

	got := c.ListDistricts(context.Background(), 1)
	if len(got) != 3 {
		t.Fatalf("expected 3 districts, got %d", len(got))
	}
	wantIDs := []models.LocationID{7, 3, 12}
	for i, n := range got {
		if n.ID != wantIDs[i] {
			t.Errorf("row %d: got id %d, want %d", i, n.ID, wantIDs[i])
		}
		if n.Level != models.LevelDistrict || n.ParentID != 1 {
			t.Errorf("row %d: unexpected level/parent %+v", i, n)
		}
	}
	if got[0].Name != "Jalpaiguri" {
		t.Errorf("name: got %q", got[0].Name)
	}

	calls := fb.Calls("dropdownList/getDistrictsByState")
	if len(calls) != 1 || calls[0]["state_id"] != float64(1) {
		t.Errorf("unexpected request bodies: %v", calls)
	}
}

func TestList_EdgeParamsAndNameKeys(t *testing.T) {
	cases := []struct {
		level    models.Level
		endpoint string
		param    string
		nameKey  string
		list     func(*locations.Client, context.Context, models.LocationID) []models.LocationNode
	}{
		{models.LevelSubDivision, "dropdownList/getSubDivisionsByDistrict", "dist_id", "sub_division_name", (*locations.Client).ListSubdivisions},
		{models.LevelBlock, "dropdownList/getBlocksBySubDivision", "sub_div_id", "block_name", (*locations.Client).ListBlocks},
		{models.LevelGramPanchayat, "dropdownList/getGPsByBlock", "blk_id", "gp_name", (*locations.Client).ListGramPanchayats},
		{models.LevelTeaGarden, "dropdownList/getTeagardensByGP", "gp_id", "teagarden_name", (*locations.Client).ListTeaGardens},
	}
	for _, tc := range cases {
		t.Run(tc.level.String(), func(t *testing.T) {
			c, fb := newClient(t)
			fb.Reply(tc.endpoint, []map[string]any{{"id": 41, tc.nameKey: "Node 41"}})

			got := tc.list(c, context.Background(), 9)
			if len(got) != 1 || got[0].ID != 41 || got[0].Name != "Node 41" || got[0].Level != tc.level {
				t.Fatalf("unexpected nodes: %+v", got)
			}
			calls := fb.Calls(tc.endpoint)
			if len(calls) != 1 || calls[0][tc.param] != float64(9) {
				t.Errorf("expected body {%s: 9}, got %v", tc.param, calls)
			}
		})
	}
}

func TestList_StringIDsAndSanitizedNames(t *testing.T) {
	c, fb := newClient(t)
	fb.Reply("dropdownList/getBlocksBySubDivision", []map[string]any{
		{"id": "15", "block_name": "<b>Mal</b>"},
		{"id": "0", "block_name": "All"},
		{"id": "x", "block_name": "Broken"},
	})

	got := c.ListBlocks(context.Background(), 2)
	if len(got) != 1 {
		t.Fatalf("expected only the valid row, got %+v", got)
	}
	if got[0].ID != 15 || got[0].Name != "Mal" {
		t.Errorf("unexpected node: %+v", got[0])
	}
}

func TestList_FailuresBecomeEmpty(t *testing.T) {
	c, fb := newClient(t)
	fb.Fail("dropdownList/getSubDivisionsByDistrict", http.StatusInternalServerError)
	fb.Reject("dropdownList/getBlocksBySubDivision", "no data")

	if got := c.ListSubdivisions(context.Background(), 4); len(got) != 0 {
		t.Errorf("expected empty list on transport failure, got %+v", got)
	}
	if got := c.ListBlocks(context.Background(), 4); len(got) != 0 {
		t.Errorf("expected empty list on rejection, got %+v", got)
	}
}

func TestList_UnsetParentSkipsBackend(t *testing.T) {
	c, fb := newClient(t)
	fb.Reply("dropdownList/getGPsByBlock", []map[string]any{{"id": 1, "gp_name": "x"}})

	if got := c.ListGramPanchayats(context.Background(), models.NoLocation); len(got) != 0 {
		t.Errorf("expected empty list, got %+v", got)
	}
	if n := len(fb.Calls("dropdownList/getGPsByBlock")); n != 0 {
		t.Errorf("expected no backend call, got %d", n)
	}
}

func TestList_StateLevelHasNoOptions(t *testing.T) {
	c, _ := newClient(t)
	if got := c.List(context.Background(), models.LevelState, 1); got != nil {
		t.Errorf("expected nil for state level, got %+v", got)
	}
}

func TestEdgeFor(t *testing.T) {
	if _, ok := locations.EdgeFor(models.LevelState); ok {
		t.Error("state has no parent edge")
	}
	e, ok := locations.EdgeFor(models.LevelGramPanchayat)
	if !ok || e.Endpoint != "dropdownList/getGPsByBlock" || e.Param != "blk_id" || e.NameKey != "gp_name" {
		t.Errorf("unexpected edge %+v", e)
	}
}
