// Package surveys fetches the aggregates and report rows the dashboard
// pages show. Unlike the hierarchy lookups these calls return their
// errors: a page has to tell "no rows" apart from "could not load".
package surveys

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/timeouts"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// Backend endpoints.
const (
	EndpointDashboardCount     = "dashboardCount"
	EndpointWelfareDetails     = "dropdownList/getTotalWelfareDetails"
	EndpointHouseholdsSurveyed = "dropdownList/getTotalHouseholdsSurveyedDetails"
	EndpointHealthDetails      = "dropdownList/getHealthDetailsWithFilters"
	EndpointProgramAnalytics   = "dropdownList/getWelfareProgramCountAnalytics"
)

// AllValue is the backend's "no restriction" value for categorical
// health filters.
const AllValue = "ALL"

// Poster is the slice of the backend client the survey calls need.
type Poster interface {
	Post(ctx context.Context, endpoint string, reqBody any, out any) error
}

// HealthQuery narrows the health-metrics report. Empty fields mean ALL.
// NutritionStatus only applies when Kind is "all".
type HealthQuery struct {
	Kind            string // "sam", "mam" or "all"
	NutritionStatus string
	BPStatus        string
	BloodSugar      string
	Gender          string
	AgeGroup        string
}

// HealthKinds lists the accepted values of HealthQuery.Kind.
var HealthKinds = []string{"all", "sam", "mam"}

// ValidHealthKind reports whether kind is one of HealthKinds.
func ValidHealthKind(kind string) bool {
	for _, k := range HealthKinds {
		if strings.EqualFold(k, kind) {
			return true
		}
	}
	return false
}

func (q HealthQuery) nutritionStatus() string {
	switch strings.ToLower(q.Kind) {
	case "sam":
		return "SAM"
	case "mam":
		return "MAM"
	}
	return orAll(q.NutritionStatus)
}

func orAll(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return AllValue
	}
	return s
}

// Client wraps the survey endpoints.
type Client struct {
	backend Poster
	log     *zap.Logger
}

// New returns a survey client.
func New(backend Poster, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{backend: backend, log: logger}
}

type countBody struct {
	Dist   int64 `json:"dist"`
	SubDiv int64 `json:"sub_div"`
	Blk    int64 `json:"blk"`
	GP     int64 `json:"gp"`
	TG     int64 `json:"tg"`
}

type filterBody struct {
	StateID       int64  `json:"state_id"`
	DistrictID    int64  `json:"district_id"`
	SubDivisionID int64  `json:"subdivision_id"`
	BlockID       int64  `json:"block_id"`
	GPID          int64  `json:"gp_id"`
	VillageID     int64  `json:"village_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

type healthBody struct {
	filterBody
	NutritionStatus string `json:"nutrition_status"`
	BPStatus        string `json:"bp_status"`
	BloodSugar      string `json:"blood_sugar"`
	Gender          string `json:"gender"`
	HouseholdID     int64  `json:"household_id"`
	AgeGroup        string `json:"age_group"`
}

// newFilterBody converts a filter to the backend body; unset levels go
// out as 0 and the tea garden travels as village_id.
func newFilterBody(f models.SurveyFilter) filterBody {
	return filterBody{
		StateID:       int64(f.StateID),
		DistrictID:    int64(f.DistrictID),
		SubDivisionID: int64(f.SubDivisionID),
		BlockID:       int64(f.BlockID),
		GPID:          int64(f.GPID),
		VillageID:     int64(f.TeaGardenID),
		StartDate:     f.StartDateString(),
		EndDate:       f.EndDateString(),
	}
}

// DashboardCounts returns the summary counters for the filter.
func (c *Client) DashboardCounts(ctx context.Context, f models.SurveyFilter) (models.DashboardCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	body := countBody{
		Dist:   int64(f.DistrictID),
		SubDiv: int64(f.SubDivisionID),
		Blk:    int64(f.BlockID),
		GP:     int64(f.GPID),
		TG:     int64(f.TeaGardenID),
	}
	var rows []map[string]any
	if err := c.backend.Post(ctx, EndpointDashboardCount, body, &rows); err != nil {
		return nil, fmt.Errorf("dashboard count: %w", err)
	}

	counts := models.DashboardCounts{}
	if len(rows) == 0 {
		return counts, nil
	}
	for k, v := range rows[0] {
		if n, ok := toInt64(v); ok {
			counts[k] = n
		}
	}
	return counts, nil
}

// WelfareDetails returns the welfare beneficiary rows.
func (c *Client) WelfareDetails(ctx context.Context, f models.SurveyFilter) (models.ReportTable, error) {
	return c.table(ctx, EndpointWelfareDetails, newFilterBody(f))
}

// HouseholdsSurveyed returns one row per surveyed household.
func (c *Client) HouseholdsSurveyed(ctx context.Context, f models.SurveyFilter) (models.ReportTable, error) {
	return c.table(ctx, EndpointHouseholdsSurveyed, newFilterBody(f))
}

// WelfareProgramAnalytics returns enrolment counts per welfare program.
func (c *Client) WelfareProgramAnalytics(ctx context.Context, f models.SurveyFilter) (models.ReportTable, error) {
	return c.table(ctx, EndpointProgramAnalytics, newFilterBody(f))
}

// HealthDetails returns the health survey rows matching q.
func (c *Client) HealthDetails(ctx context.Context, f models.SurveyFilter, q HealthQuery) (models.ReportTable, error) {
	body := healthBody{
		filterBody:      newFilterBody(f),
		NutritionStatus: q.nutritionStatus(),
		BPStatus:        orAll(q.BPStatus),
		BloodSugar:      orAll(q.BloodSugar),
		Gender:          orAll(q.Gender),
		AgeGroup:        orAll(q.AgeGroup),
	}
	return c.table(ctx, EndpointHealthDetails, body)
}

func (c *Client) table(ctx context.Context, endpoint string, body any) (models.ReportTable, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	var raw []json.RawMessage
	if err := c.backend.Post(ctx, endpoint, body, &raw); err != nil {
		return models.ReportTable{}, fmt.Errorf("%s: %w", endpoint, err)
	}
	table, err := decodeTable(raw)
	if err != nil {
		return models.ReportTable{}, fmt.Errorf("%s: %w", endpoint, err)
	}
	c.log.Debug("report loaded", zap.String("endpoint", endpoint), zap.Int("rows", table.Len()))
	return table, nil
}

// decodeTable decodes object rows, taking the column order from the keys
// of the first row as the backend sent them. Keys that only appear in
// later rows are appended.
func decodeTable(raw []json.RawMessage) (models.ReportTable, error) {
	table := models.ReportTable{Rows: make([]map[string]any, 0, len(raw))}
	seen := make(map[string]bool)

	for i, r := range raw {
		keys, err := objectKeys(r)
		if err != nil {
			return models.ReportTable{}, fmt.Errorf("row %d: %w", i, err)
		}
		row := make(map[string]any, len(keys))
		if err := json.Unmarshal(r, &row); err != nil {
			return models.ReportTable{}, fmt.Errorf("row %d: %w", i, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				table.Columns = append(table.Columns, k)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// objectKeys returns the top-level keys of a JSON object in order.
func objectKeys(r json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(r))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// toInt64 accepts JSON numbers and numeric strings.
func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}
