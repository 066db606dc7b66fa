package dashboard

import (
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/tableview"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
)

type group struct {
	title string
	keys  []string
}

var groups = []group{
	{"Nutrition", []string{"sam_women", "mam_women", "normal_women", "sam_children", "mam_children", "normal_children"}},
	{"Blood Pressure", []string{"low_bp_women", "high_bp_women", "low_bp_all", "high_bp_all"}},
	{"Blood Sugar", []string{"low_sugar_women", "high_sugar_women", "low_sugar_all", "high_sugar_all"}},
	{"Welfare Schemes", []string{"caste_certificate_women", "lakshmir_bhandar_women", "swasthya_sathi_women", "old_age_pension_women"}},
}

// overviewTitle heads the counters that belong to no known group.
const overviewTitle = "Overview"

// Sections splits counts into the card groups. Unknown counters go to a
// leading overview section in key order; empty sections are dropped.
func Sections(counts models.DashboardCounts) []Section {
	grouped := make(map[string]bool)
	var out []Section
	for _, g := range groups {
		sub := models.DashboardCounts{}
		for _, k := range g.keys {
			grouped[k] = true
			if v, ok := counts[k]; ok {
				sub[k] = v
			}
		}
		if len(sub) > 0 {
			out = append(out, Section{Title: g.title, Stats: tableview.Stats(sub, g.keys...)})
		}
	}

	rest := models.DashboardCounts{}
	for k, v := range counts {
		if !grouped[k] {
			rest[k] = v
		}
	}
	if len(rest) > 0 {
		out = append([]Section{{Title: overviewTitle, Stats: tableview.Stats(rest)}}, out...)
	}
	return out
}
