// internal/domain/models/survey.go
package models

import "time"

// DateLayout is the format the backend expects for start/end dates.
const DateLayout = "2006-01-02"

// SurveyFilter is the full filter set a page hands to its data fetch.
type SurveyFilter struct {
	Selection
	StartDate time.Time
	EndDate   time.Time
}

// StartDateString formats StartDate for the backend ("" when unset).
func (f SurveyFilter) StartDateString() string {
	if f.StartDate.IsZero() {
		return ""
	}
	return f.StartDate.Format(DateLayout)
}

// EndDateString formats EndDate for the backend ("" when unset).
func (f SurveyFilter) EndDateString() string {
	if f.EndDate.IsZero() {
		return ""
	}
	return f.EndDate.Format(DateLayout)
}

// DashboardCounts holds the named counters returned by the dashboard
// count endpoint (households surveyed, welfare beneficiaries, ...).
type DashboardCounts map[string]int64

// ReportTable is a generic table of backend rows. Columns keeps the
// order of the first row's keys as the backend sent them.
type ReportTable struct {
	Columns []string
	Rows    []map[string]any
}

// Len returns the number of rows.
func (t ReportTable) Len() int { return len(t.Rows) }
