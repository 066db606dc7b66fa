package surveys_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/backend"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/surveys"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/testutil"
	"go.uber.org/zap"
)

func newClient(t *testing.T) (*surveys.Client, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	bc, err := backend.New(fb.BaseURL(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	return surveys.New(bc, zap.NewNop()), fb
}

func sampleFilter() models.SurveyFilter {
	return models.SurveyFilter{
		Selection: models.Selection{StateID: 1, DistrictID: 5, SubDivisionID: 12, BlockID: 30},
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestDashboardCounts(t *testing.T) {
	c, fb := newClient(t)
	fb.Reply(surveys.EndpointDashboardCount, []map[string]any{
		{"total_households": 2736, "total_members": "9234", "label": "n/a"},
	})

	counts, err := c.DashboardCounts(context.Background(), sampleFilter())
	if err != nil {
		t.Fatalf("DashboardCounts: %v", err)
	}
	if counts["total_households"] != 2736 || counts["total_members"] != 9234 {
		t.Errorf("unexpected counts %v", counts)
	}
	if _, ok := counts["label"]; ok {
		t.Error("non-numeric values should be skipped")
	}

	body := fb.Calls(surveys.EndpointDashboardCount)[0]
	want := map[string]float64{"dist": 5, "sub_div": 12, "blk": 30, "gp": 0, "tg": 0}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("body[%s]: got %v, want %v", k, body[k], v)
		}
	}
}

func TestDashboardCounts_EmptyData(t *testing.T) {
	c, fb := newClient(t)
	fb.Reply(surveys.EndpointDashboardCount, []map[string]any{})

	counts, err := c.DashboardCounts(context.Background(), models.SurveyFilter{})
	if err != nil {
		t.Fatalf("DashboardCounts: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected no counts, got %v", counts)
	}
}

func TestWelfareDetails_ColumnOrderAndBody(t *testing.T) {
	c, fb := newClient(t)
	fb.Handle(surveys.EndpointWelfareDetails, func(map[string]any) (int, any) {
		// Raw JSON so the key order is exactly what the backend sends.
		return http.StatusOK, rawJSON(`{"success":true,"data":[
			{"survey_id":"HH-1","district":"Jalpaiguri","village":"Dooars T.E."},
			{"survey_id":"HH-2","district":"Jalpaiguri","village":"Mal T.E.","extra":1}
		]}`)
	})

	table, err := c.WelfareDetails(context.Background(), sampleFilter())
	if err != nil {
		t.Fatalf("WelfareDetails: %v", err)
	}
	wantCols := []string{"survey_id", "district", "village", "extra"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("columns: got %v", table.Columns)
	}
	for i := range wantCols {
		if table.Columns[i] != wantCols[i] {
			t.Errorf("column %d: got %q, want %q", i, table.Columns[i], wantCols[i])
		}
	}
	if table.Len() != 2 || table.Rows[1]["village"] != "Mal T.E." {
		t.Errorf("unexpected rows %v", table.Rows)
	}

	body := fb.Calls(surveys.EndpointWelfareDetails)[0]
	if body["district_id"] != float64(5) || body["gp_id"] != float64(0) || body["village_id"] != float64(0) {
		t.Errorf("unexpected ids in body %v", body)
	}
	if body["start_date"] != "2025-03-01" || body["end_date"] != "2025-03-31" {
		t.Errorf("unexpected dates in body %v", body)
	}
}

func TestHealthDetails_KindMapsToNutritionStatus(t *testing.T) {
	c, fb := newClient(t)
	fb.Reply(surveys.EndpointHealthDetails, []map[string]any{})

	_, err := c.HealthDetails(context.Background(), sampleFilter(), surveys.HealthQuery{Kind: "sam", Gender: "F"})
	if err != nil {
		t.Fatalf("HealthDetails: %v", err)
	}
	body := fb.Calls(surveys.EndpointHealthDetails)[0]
	if body["nutrition_status"] != "SAM" {
		t.Errorf("nutrition_status: got %v", body["nutrition_status"])
	}
	if body["gender"] != "F" || body["bp_status"] != surveys.AllValue || body["age_group"] != surveys.AllValue {
		t.Errorf("unexpected health filters %v", body)
	}
	if body["state_id"] != float64(1) {
		t.Errorf("expected the flattened filter body, got %v", body)
	}
}

func TestHealthDetails_AllKindUsesNutritionStatus(t *testing.T) {
	c, fb := newClient(t)
	fb.Reply(surveys.EndpointHealthDetails, []map[string]any{})

	q := surveys.HealthQuery{Kind: "all", NutritionStatus: "Normal", BloodSugar: "high"}
	if _, err := c.HealthDetails(context.Background(), sampleFilter(), q); err != nil {
		t.Fatalf("HealthDetails: %v", err)
	}
	body := fb.Calls(surveys.EndpointHealthDetails)[0]
	if body["nutrition_status"] != "Normal" || body["blood_sugar"] != "high" {
		t.Errorf("unexpected health filters %v", body)
	}

	q = surveys.HealthQuery{Kind: "sam", NutritionStatus: "Normal"}
	if _, err := c.HealthDetails(context.Background(), sampleFilter(), q); err != nil {
		t.Fatalf("HealthDetails: %v", err)
	}
	if got := fb.Calls(surveys.EndpointHealthDetails)[1]["nutrition_status"]; got != "SAM" {
		t.Errorf("kind should win over NutritionStatus, got %v", got)
	}
}

func TestTable_ErrorsAreReturned(t *testing.T) {
	c, fb := newClient(t)
	fb.Fail(surveys.EndpointHouseholdsSurveyed, http.StatusInternalServerError)
	fb.Reject(surveys.EndpointProgramAnalytics, "no survey data")

	if _, err := c.HouseholdsSurveyed(context.Background(), sampleFilter()); !errors.Is(err, backend.ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
	_, err := c.WelfareProgramAnalytics(context.Background(), sampleFilter())
	if rej, ok := backend.IsRejection(err); !ok || rej.Message != "no survey data" {
		t.Errorf("expected rejection, got %v", err)
	}
}

func TestValidHealthKind(t *testing.T) {
	for _, k := range []string{"sam", "MAM", "all"} {
		if !surveys.ValidHealthKind(k) {
			t.Errorf("%q should be valid", k)
		}
	}
	if surveys.ValidHealthKind("bmi") {
		t.Error("bmi should be invalid")
	}
}

type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) { return []byte(r), nil }
