// Package cascade keeps a location Selection and the dropdown option
// lists of one filter panel consistent while the user changes levels.
//
// Every change at a level clears all deeper levels before anything else
// happens, and at most the one level directly below is fetched. Each
// level's option list carries a generation number; a response that comes
// back after its level was cleared or re-requested is dropped.
package cascade

import (
	"context"
	"errors"
	"sync"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/metrics"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

var (
	// ErrInvalidLevel is returned for State (fixed per deployment) and for
	// levels deeper than the page's configured depth.
	ErrInvalidLevel = errors.New("cascade: level not selectable on this page")

	// ErrParentUnset is returned when a level is set while its parent is
	// "All"; honoring it would break descendant consistency.
	ErrParentUnset = errors.New("cascade: parent level is unset")

	// ErrNotAnOption is returned when the id is not in the level's loaded
	// option list, for example a child of another parent.
	ErrNotAnOption = errors.New("cascade: location is not an option at this level")
)

// Lookup fetches the options of level under parentID. Implementations
// absorb their own failures and return an empty list.
type Lookup interface {
	List(ctx context.Context, level models.Level, parentID models.LocationID) []models.LocationNode
}

// Config describes one page's panel.
type Config struct {
	StateID models.LocationID
	Depth   models.Level // deepest selectable level; zero means TeaGarden
}

func (c Config) normalized() Config {
	if c.Depth < models.LevelDistrict || c.Depth > models.LevelTeaGarden {
		c.Depth = models.LevelTeaGarden
	}
	return c
}

// State is a point-in-time copy of the controller, for rendering.
type State struct {
	Selection models.Selection                 `json:"selection"`
	Options   map[string][]models.LocationNode `json:"options"`
	Locked    map[string]bool                  `json:"locked"`
	Depth     models.Level                     `json:"depth"`
}

// Controller owns one panel's selection and option lists.
type Controller struct {
	lookup Lookup
	cfg    Config
	log    *zap.Logger

	mu      sync.Mutex
	sel     models.Selection
	options [models.NumLevels + 1][]models.LocationNode
	locked  [models.NumLevels + 1]bool
	gen     [models.NumLevels + 1]uint64
	epoch   uint64 // bumped by every top-level operation; stops a running Initialize
}

// New returns a controller with nothing selected and no options loaded.
func New(lookup Lookup, cfg Config, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.normalized()
	return &Controller{
		lookup: lookup,
		cfg:    cfg,
		log:    logger,
		sel:    models.Selection{StateID: cfg.StateID},
	}
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// Initialize resets the controller, loads the district list and then walks
// the scope top-down. A scoped level is seeded and locked only once its
// option list has arrived and contains the scoped id; the next level is
// requested only after that, with the confirmed id as parent. The walk
// stops at the first level the scope leaves unset, at the page depth, or
// at the first fetch that fails or is superseded.
func (c *Controller) Initialize(ctx context.Context, scope models.JurisdictionScope) models.Selection {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	c.sel = models.Selection{StateID: c.cfg.StateID}
	c.clearFromLocked(models.LevelDistrict)
	c.mu.Unlock()

	parent := c.cfg.StateID
	for level := models.LevelDistrict; level <= c.cfg.Depth && level <= models.LevelGramPanchayat; level++ {
		id := scope.Get(level)
		if level != models.LevelDistrict && !id.IsSet() {
			break
		}

		g := c.beginFetch(level)
		nodes := c.lookup.List(ctx, level, parent)

		c.mu.Lock()
		if !c.applyLocked(level, g, nodes) || c.epoch != epoch {
			c.mu.Unlock()
			break
		}
		if !id.IsSet() {
			c.mu.Unlock()
			break
		}
		if !containsID(nodes, id) {
			c.log.Warn("scoped location missing from options; seeding stopped",
				zap.Stringer("level", level),
				zap.Int64("id", int64(id)),
				zap.Int("options", len(nodes)))
			c.mu.Unlock()
			break
		}
		c.sel = c.sel.Set(level, id)
		c.locked[level] = true
		c.mu.Unlock()

		parent = id
	}

	return c.Selection()
}

// SelectLevel sets level to id (NoLocation for "All"), clears every deeper
// selection and option list, and, when id is set and level is above the
// page depth, fetches the options of the next level. Selecting the value
// already selected repeats the whole reset and fetch. A set id must be one
// of the level's loaded options.
func (c *Controller) SelectLevel(ctx context.Context, level models.Level, id models.LocationID) error {
	if level < models.LevelDistrict || level > c.cfg.Depth {
		return ErrInvalidLevel
	}

	c.mu.Lock()
	if id.IsSet() && level > models.LevelDistrict && !c.sel.Get(level-1).IsSet() {
		c.mu.Unlock()
		return ErrParentUnset
	}
	if id.IsSet() && !containsID(c.options[level], id) {
		c.mu.Unlock()
		return ErrNotAnOption
	}
	c.epoch++
	c.sel = c.sel.Set(level, id)
	if next := level.Next(); next != 0 {
		c.clearFromLocked(next)
	}
	if !id.IsSet() || level >= c.cfg.Depth {
		c.mu.Unlock()
		return nil
	}
	next := level.Next()
	g := c.gen[next]
	c.mu.Unlock()

	nodes := c.lookup.List(ctx, next, id)

	c.mu.Lock()
	c.applyLocked(next, g, nodes)
	c.mu.Unlock()
	return nil
}

// ClearAll unsets every level and empties every option list except the
// district list, which depends only on the fixed state. Locks are released.
func (c *Controller) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.sel = models.Selection{StateID: c.cfg.StateID}
	c.locked[models.LevelDistrict] = false
	c.clearFromLocked(models.LevelSubDivision)
}

// Selection returns the current selection.
func (c *Controller) Selection() models.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}

// Options returns a copy of level's option list.
func (c *Controller) Options(level models.Level) []models.LocationNode {
	if !level.Valid() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.LocationNode(nil), c.options[level]...)
}

// Locked reports whether level was seeded from the user's jurisdiction.
func (c *Controller) Locked(level models.Level) bool {
	if !level.Valid() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked[level]
}

// Snapshot returns a consistent copy of everything the panel renders.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Selection: c.sel,
		Options:   make(map[string][]models.LocationNode),
		Locked:    make(map[string]bool),
		Depth:     c.cfg.Depth,
	}
	for level := models.LevelDistrict; level <= c.cfg.Depth; level++ {
		st.Options[level.String()] = append([]models.LocationNode{}, c.options[level]...)
		st.Locked[level.String()] = c.locked[level]
	}
	return st
}

// clearFromLocked unsets level and everything below it, empties their
// option lists, releases their locks and bumps their generations.
func (c *Controller) clearFromLocked(from models.Level) {
	for level := from; level.Valid(); level = level.Next() {
		c.sel = c.sel.Set(level, models.NoLocation)
		c.options[level] = nil
		c.locked[level] = false
		c.gen[level]++
	}
}

// beginFetch empties level's options and returns the generation the
// response must match.
func (c *Controller) beginFetch(level models.Level) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[level]++
	c.options[level] = nil
	return c.gen[level]
}

// applyLocked stores nodes unless level moved past generation g.
func (c *Controller) applyLocked(level models.Level, g uint64, nodes []models.LocationNode) bool {
	if c.gen[level] != g {
		c.log.Debug("discarding stale options",
			zap.Stringer("level", level),
			zap.Uint64("issued_gen", g),
			zap.Uint64("current_gen", c.gen[level]))
		metrics.StaleDiscard(level.String())
		return false
	}
	c.options[level] = nodes
	return true
}

func containsID(nodes []models.LocationNode, id models.LocationID) bool {
	for _, n := range nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
