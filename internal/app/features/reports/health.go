package reports

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/normalize"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/surveys"
)

type choice struct {
	Value    string
	Label    string
	Selected bool
}

// healthField is one categorical filter of the health report.
type healthField struct {
	Name    string
	Label   string
	Choices []choice
}

type option struct{ value, label string }

type fieldSpec struct {
	name    string
	label   string
	options []option
	// kindAll fields only show when the report is not already narrowed
	// to SAM or MAM.
	kindAll bool
}

var healthFields = []fieldSpec{
	{name: "gender", label: "Gender", options: []option{
		{"Male", "Male"}, {"Female", "Female"}, {"Other", "Other"},
	}},
	{name: "age_group", label: "Age Group", options: []option{
		{"1-5", "1-5"}, {"5-10", "5-10"}, {"10-15", "10-15"}, {"15-20", "15-20"},
		{"20-30", "20-30"}, {"30-40", "30-40"}, {"40-50", "40-50"}, {"50-60", "50-60"}, {"60+", "60+"},
	}},
	{name: "nutrition_status", label: "Nutrition", kindAll: true, options: []option{
		{"SAM", "SAM"}, {"MAM", "MAM"}, {"Normal", "Normal"},
	}},
	{name: "bp_status", label: "Blood Pressure", options: []option{
		{"high", "High"}, {"low", "Low"}, {"normal", "Normal"},
	}},
	{name: "blood_sugar", label: "Blood Sugar", options: []option{
		{"high", "High"}, {"low", "Low"}, {"normal", "Normal"},
	}},
}

// pick returns the request's value for the field when it is one of the
// offered options, and "" (ALL) otherwise.
func (fld fieldSpec) pick(r *http.Request) string {
	v := normalize.QueryParam(query.Get(r, fld.name))
	for _, o := range fld.options {
		if strings.EqualFold(o.value, v) {
			return o.value
		}
	}
	return ""
}

// parseHealthQuery reads the categorical filters of the health report.
func parseHealthQuery(r *http.Request, kind string) surveys.HealthQuery {
	q := surveys.HealthQuery{Kind: kind}
	for _, fld := range healthFields {
		v := fld.pick(r)
		switch fld.name {
		case "gender":
			q.Gender = v
		case "age_group":
			q.AgeGroup = v
		case "nutrition_status":
			q.NutritionStatus = v
		case "bp_status":
			q.BPStatus = v
		case "blood_sugar":
			q.BloodSugar = v
		}
	}
	return q
}

// healthVM builds the select boxes for the health report, marking the
// values in q as selected.
func healthVM(kind string, q surveys.HealthQuery) []healthField {
	selected := map[string]string{
		"gender":           q.Gender,
		"age_group":        q.AgeGroup,
		"nutrition_status": q.NutritionStatus,
		"bp_status":        q.BPStatus,
		"blood_sugar":      q.BloodSugar,
	}
	narrowed := !strings.EqualFold(kind, "all")

	var out []healthField
	for _, fld := range healthFields {
		if fld.kindAll && narrowed {
			continue
		}
		cur := selected[fld.name]
		f := healthField{Name: fld.name, Label: fld.label}
		f.Choices = append(f.Choices, choice{Value: "", Label: "All", Selected: cur == ""})
		for _, o := range fld.options {
			f.Choices = append(f.Choices, choice{Value: o.value, Label: o.label, Selected: cur == o.value})
		}
		out = append(out, f)
	}
	return out
}
