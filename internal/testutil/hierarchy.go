package testutil

import (
	"net/http"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/locations"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
)

// Node is one fixture row of the location hierarchy.
type Node struct {
	ID   int64
	Name string
}

// Hierarchy maps a level and a parent id to the children served for it.
type Hierarchy map[models.Level]map[int64][]Node

// SampleHierarchy is a small tree under state 1:
//
//	district 5 Jalpaiguri
//	  sub-division 12 Malbazar
//	    block 30 Mal
//	      gp 77 Rangamati
//	        tea gardens 100 Washabari, 101 Denguajhar
//	  sub-division 13 Sadar
//	district 7 Darjeeling
//	  sub-division 20 Kurseong
func SampleHierarchy() Hierarchy {
	return Hierarchy{
		models.LevelDistrict:      {1: {{5, "Jalpaiguri"}, {7, "Darjeeling"}}},
		models.LevelSubDivision:   {5: {{12, "Malbazar"}, {13, "Sadar"}}, 7: {{20, "Kurseong"}}},
		models.LevelBlock:         {12: {{30, "Mal"}}},
		models.LevelGramPanchayat: {30: {{77, "Rangamati"}}},
		models.LevelTeaGarden:     {77: {{100, "Washabari"}, {101, "Denguajhar"}}},
	}
}

// ServeHierarchy installs responders for every lookup endpoint that
// answer from h. Unknown parents get an empty list.
func (f *FakeBackend) ServeHierarchy(h Hierarchy) {
	for level, children := range h {
		edge, ok := locations.EdgeFor(level)
		if !ok {
			continue
		}
		f.Handle(edge.Endpoint, func(body map[string]any) (int, any) {
			parent, _ := body[edge.Param].(float64)
			rows := []map[string]any{}
			for _, n := range children[int64(parent)] {
				rows = append(rows, map[string]any{"id": n.ID, edge.NameKey: n.Name})
			}
			return http.StatusOK, map[string]any{"success": true, "data": rows}
		})
	}
}
