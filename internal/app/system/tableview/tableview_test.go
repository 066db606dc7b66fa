package tableview

import (
	"testing"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
)

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"total_households": "Total Households",
		"gp_name":          "GP Name",
		"survey_id":        "Survey ID",
		"BP_status":        "BP Status",
		"sam-count":        "SAM Count",
		"village":          "Village",
		"":                 "",
	}
	for in, want := range tests {
		if got := Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"Mal", "Mal"},
		{float64(2736), "2736"},
		{12.5, "12.5"},
		{true, "true"},
		{int64(9), "9"},
	}
	for _, tt := range tests {
		if got := Cell(tt.in); got != tt.want {
			t.Errorf("Cell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRowsAndHeaders(t *testing.T) {
	table := models.ReportTable{
		Columns: []string{"survey_id", "members"},
		Rows: []map[string]any{
			{"survey_id": "HH-1", "members": float64(4)},
			{"survey_id": "HH-2"},
		},
	}
	h := Headers(table)
	if h[0] != "Survey ID" || h[1] != "Members" {
		t.Errorf("headers: %v", h)
	}
	rows := Rows(table)
	if rows[0][1] != "4" || rows[1][1] != "" {
		t.Errorf("rows: %v", rows)
	}
}

func TestStats_Order(t *testing.T) {
	counts := models.DashboardCounts{"b_count": 2, "a_count": 1, "total_households": 10, "total_members": 30}
	got := Stats(counts, "total_households", "total_members")

	want := []string{"total_households", "total_members", "a_count", "b_count"}
	for i, k := range want {
		if got[i].Key != k {
			t.Fatalf("position %d: got %q, want %q (%v)", i, got[i].Key, k, got)
		}
	}
	if got[0].Label != "Total Households" || got[0].Value != 10 {
		t.Errorf("first stat: %+v", got[0])
	}
}
