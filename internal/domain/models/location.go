// internal/domain/models/location.go
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Level is a rank in the location hierarchy. Lower values are shallower:
// State(1) > District(2) > SubDivision(3) > Block(4) > GramPanchayat(5) > TeaGarden(6).
type Level int

const (
	LevelState Level = iota + 1
	LevelDistrict
	LevelSubDivision
	LevelBlock
	LevelGramPanchayat
	LevelTeaGarden
)

// NumLevels is the number of hierarchy levels.
const NumLevels = int(LevelTeaGarden)

var levelKeys = [...]string{
	LevelState:         "state",
	LevelDistrict:      "district",
	LevelSubDivision:   "subdivision",
	LevelBlock:         "block",
	LevelGramPanchayat: "gp",
	LevelTeaGarden:     "teagarden",
}

var levelLabels = [...]string{
	LevelState:         "State",
	LevelDistrict:      "District",
	LevelSubDivision:   "Sub-Division",
	LevelBlock:         "Block",
	LevelGramPanchayat: "Gram Panchayat",
	LevelTeaGarden:     "Tea Garden",
}

// Levels returns every level in hierarchy order.
func Levels() []Level {
	return []Level{LevelState, LevelDistrict, LevelSubDivision, LevelBlock, LevelGramPanchayat, LevelTeaGarden}
}

// Valid reports whether l is one of the six known levels.
func (l Level) Valid() bool {
	return l >= LevelState && l <= LevelTeaGarden
}

// Next returns the level directly below l, or 0 for TeaGarden.
func (l Level) Next() Level {
	if !l.Valid() || l == LevelTeaGarden {
		return 0
	}
	return l + 1
}

// String returns the lower-case key used in URLs and form fields.
func (l Level) String() string {
	if !l.Valid() {
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelKeys[l]
}

// Label is the display name shown next to the dropdown.
func (l Level) Label() string {
	if !l.Valid() {
		return ""
	}
	return levelLabels[l]
}

// Placeholder is the empty-dropdown text ("Select District", ...).
func (l Level) Placeholder() string {
	if !l.Valid() {
		return ""
	}
	return "Select " + levelLabels[l]
}

// ParseLevel converts a level key ("district", "gp", ...) back to a Level.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range Levels() {
		if levelKeys[l] == s {
			return l, true
		}
	}
	return 0, false
}

// LocationID identifies a node within its parent. NoLocation means
// "unset" (the "All" choice in a dropdown).
type LocationID int64

// NoLocation is the only representation of an unset level.
const NoLocation LocationID = 0

// IsSet reports whether id refers to a concrete node.
func (id LocationID) IsSet() bool { return id > 0 }

func (id LocationID) String() string {
	if !id.IsSet() {
		return ""
	}
	return strconv.FormatInt(int64(id), 10)
}

// ErrBadLocationID is returned for input that is neither an "All"
// sentinel nor a positive integer.
var ErrBadLocationID = errors.New("models: malformed location id")

// ParseLocationID maps the "All" sentinels seen in forms ("", "0", "all")
// to NoLocation and positive integers to themselves. Anything else is
// ErrBadLocationID.
func ParseLocationID(s string) (LocationID, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" || strings.EqualFold(s, "all") {
		return NoLocation, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return NoLocation, fmt.Errorf("%w: %q", ErrBadLocationID, s)
	}
	return LocationID(n), nil
}

// LocationNode is one entry at a hierarchy level.
type LocationNode struct {
	ID       LocationID `json:"id"`
	Name     string     `json:"name"`
	Level    Level      `json:"level"`
	ParentID LocationID `json:"parent_id"`
}

// Selection is the chosen id at each level. A level left at NoLocation
// means "All".
type Selection struct {
	StateID       LocationID `json:"state_id"`
	DistrictID    LocationID `json:"district_id"`
	SubDivisionID LocationID `json:"subdivision_id"`
	BlockID       LocationID `json:"block_id"`
	GPID          LocationID `json:"gp_id"`
	TeaGardenID   LocationID `json:"teagarden_id"`
}

// Get returns the id selected at level l.
func (s Selection) Get(l Level) LocationID {
	switch l {
	case LevelState:
		return s.StateID
	case LevelDistrict:
		return s.DistrictID
	case LevelSubDivision:
		return s.SubDivisionID
	case LevelBlock:
		return s.BlockID
	case LevelGramPanchayat:
		return s.GPID
	case LevelTeaGarden:
		return s.TeaGardenID
	}
	return NoLocation
}

// Set returns a copy of s with level l set to id. It does not touch
// descendants; callers that need the cascade use the controller.
func (s Selection) Set(l Level, id LocationID) Selection {
	switch l {
	case LevelState:
		s.StateID = id
	case LevelDistrict:
		s.DistrictID = id
	case LevelSubDivision:
		s.SubDivisionID = id
	case LevelBlock:
		s.BlockID = id
	case LevelGramPanchayat:
		s.GPID = id
	case LevelTeaGarden:
		s.TeaGardenID = id
	}
	return s
}

// Consistent reports whether every level below an unset level is unset.
func (s Selection) Consistent() bool {
	unset := false
	for _, l := range Levels() {
		id := s.Get(l)
		if unset && id.IsSet() {
			return false
		}
		if !id.IsSet() {
			unset = true
		}
	}
	return true
}

// JurisdictionScope is the part of the hierarchy a user is assigned to.
// A zero field is unrestricted at that level.
type JurisdictionScope struct {
	DistrictID    LocationID `json:"district_id"`
	SubDivisionID LocationID `json:"subdivision_id"`
	BlockID       LocationID `json:"block_id"`
	GPID          LocationID `json:"gp_id"`
}

// Get returns the scoped id at level l. State and TeaGarden are never
// part of a jurisdiction.
func (j JurisdictionScope) Get(l Level) LocationID {
	switch l {
	case LevelDistrict:
		return j.DistrictID
	case LevelSubDivision:
		return j.SubDivisionID
	case LevelBlock:
		return j.BlockID
	case LevelGramPanchayat:
		return j.GPID
	}
	return NoLocation
}

// IsEmpty reports whether the scope restricts nothing.
func (j JurisdictionScope) IsEmpty() bool {
	return !j.DistrictID.IsSet()
}

// Deepest returns the deepest level the scope sets, or LevelState when
// the scope is empty.
func (j JurisdictionScope) Deepest() Level {
	deepest := LevelState
	for l := LevelDistrict; l <= LevelGramPanchayat; l++ {
		if !j.Get(l).IsSet() {
			break
		}
		deepest = l
	}
	return deepest
}
