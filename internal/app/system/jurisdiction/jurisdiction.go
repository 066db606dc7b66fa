// Package jurisdiction derives the part of the location hierarchy a
// signed-in user is confined to.
package jurisdiction

import (
	"net/http"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
)

// Resolve reads the district, sub-division, block and GP assignment from
// the profile. Non-positive ids are unset, and the first unset level
// leaves every deeper level unset even when the profile carries a value
// there.
func Resolve(p models.UserProfile) models.JurisdictionScope {
	var scope models.JurisdictionScope

	ids := [...]int64{p.DistrictID, p.SubDivisionID, p.BlockID, p.GPID}
	dst := [...]*models.LocationID{&scope.DistrictID, &scope.SubDivisionID, &scope.BlockID, &scope.GPID}
	for i, raw := range ids {
		id := models.LocationID(raw)
		if !id.IsSet() {
			break
		}
		*dst[i] = id
	}
	return scope
}

// ResolveRequest resolves the scope of the request's signed-in user. The
// second result is false when nobody is signed in.
func ResolveRequest(r *http.Request) (models.JurisdictionScope, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return models.JurisdictionScope{}, false
	}
	return Resolve(u.UserProfile), true
}
