// Package locations fetches the dropdown options for each edge of the
// location hierarchy (state -> district -> sub-division -> block ->
// gram panchayat -> tea garden).
//
// Lookups never fail from the caller's point of view: a transport error
// or a backend rejection is logged, counted, and turned into an empty
// list, which the filter panel shows as an empty dropdown.
package locations

import (
	"context"
	"strconv"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/htmlsanitize"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/metrics"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/timeouts"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// Poster is the slice of the backend client the lookups need.
type Poster interface {
	Post(ctx context.Context, endpoint string, reqBody any, out any) error
}

// Edge describes how to fetch the options of one level.
type Edge struct {
	Endpoint string
	Param    string // request body key carrying the parent id
	NameKey  string // row key carrying the display name
}

var edges = map[models.Level]Edge{
	models.LevelDistrict:      {"dropdownList/getDistrictsByState", "state_id", "district_name"},
	models.LevelSubDivision:   {"dropdownList/getSubDivisionsByDistrict", "dist_id", "sub_division_name"},
	models.LevelBlock:         {"dropdownList/getBlocksBySubDivision", "sub_div_id", "block_name"},
	models.LevelGramPanchayat: {"dropdownList/getGPsByBlock", "blk_id", "gp_name"},
	models.LevelTeaGarden:     {"dropdownList/getTeagardensByGP", "gp_id", "teagarden_name"},
}

// EdgeFor returns the edge that loads level, if level has a parent.
func EdgeFor(level models.Level) (Edge, bool) {
	e, ok := edges[level]
	return e, ok
}

// Client is the location-hierarchy lookup client.
type Client struct {
	backend Poster
	log     *zap.Logger
}

// New returns a lookup client on top of the backend poster.
func New(backend Poster, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{backend: backend, log: logger}
}

// ListDistricts returns the districts of a state.
func (c *Client) ListDistricts(ctx context.Context, stateID models.LocationID) []models.LocationNode {
	return c.List(ctx, models.LevelDistrict, stateID)
}

// ListSubdivisions returns the sub-divisions of a district.
func (c *Client) ListSubdivisions(ctx context.Context, districtID models.LocationID) []models.LocationNode {
	return c.List(ctx, models.LevelSubDivision, districtID)
}

// ListBlocks returns the blocks of a sub-division.
func (c *Client) ListBlocks(ctx context.Context, subdivisionID models.LocationID) []models.LocationNode {
	return c.List(ctx, models.LevelBlock, subdivisionID)
}

// ListGramPanchayats returns the gram panchayats of a block.
func (c *Client) ListGramPanchayats(ctx context.Context, blockID models.LocationID) []models.LocationNode {
	return c.List(ctx, models.LevelGramPanchayat, blockID)
}

// ListTeaGardens returns the tea gardens of a gram panchayat.
func (c *Client) ListTeaGardens(ctx context.Context, gpID models.LocationID) []models.LocationNode {
	return c.List(ctx, models.LevelTeaGarden, gpID)
}

// List fetches the options of level given the id selected one level up
// (the state id for districts). Backend order is preserved. Rows without
// a positive id are dropped since "All" is rendered by the panel itself.
func (c *Client) List(ctx context.Context, level models.Level, parentID models.LocationID) []models.LocationNode {
	e, ok := edges[level]
	if !ok {
		c.log.Warn("lookup for level without options", zap.Stringer("level", level))
		return nil
	}
	if !parentID.IsSet() {
		c.log.Debug("lookup skipped: parent unset", zap.Stringer("level", level))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Lookup())
	defer cancel()

	var rows []map[string]any
	body := map[string]int64{e.Param: int64(parentID)}
	if err := c.backend.Post(ctx, e.Endpoint, body, &rows); err != nil {
		c.log.Warn("hierarchy lookup failed",
			zap.Stringer("level", level),
			zap.Int64("parent_id", int64(parentID)),
			zap.Error(err))
		metrics.LookupFailure(level.String())
		return nil
	}

	nodes := make([]models.LocationNode, 0, len(rows))
	for _, row := range rows {
		id := rowID(row["id"])
		if !id.IsSet() {
			continue
		}
		name, _ := row[e.NameKey].(string)
		nodes = append(nodes, models.LocationNode{
			ID:       id,
			Name:     htmlsanitize.StripTags(name),
			Level:    level,
			ParentID: parentID,
		})
	}
	return nodes
}

// rowID accepts ids encoded as JSON numbers or numeric strings.
func rowID(v any) models.LocationID {
	switch t := v.(type) {
	case float64:
		if t > 0 && t == float64(int64(t)) {
			return models.LocationID(t)
		}
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil && n > 0 {
			return models.LocationID(n)
		}
	}
	return models.NoLocation
}
