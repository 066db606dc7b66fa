// internal/app/features/userinfo/handler.go
package userinfo

import (
	"encoding/json"
	"net/http"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/auth"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/jurisdiction"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
)

// Handler serves user information for authenticated sessions.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

type userInfo struct {
	IsAuthenticated bool                      `json:"isAuthenticated"`
	UserID          int64                     `json:"user_id,omitempty"`
	Username        string                    `json:"username,omitempty"`
	Name            string                    `json:"name,omitempty"`
	UserType        string                    `json:"user_type,omitempty"`
	Scope           *models.JurisdictionScope `json:"scope,omitempty"`
}

// ServeUserInfo returns JSON with the current user's identity and the
// jurisdiction the filter panels are locked to.
//
// Response format:
//
//	{ "isAuthenticated": bool, "user_id": 7, "name": "...", "user_type": "block",
//	  "scope": { "district_id": 5, "subdivision_id": 12, "block_id": 30, "gp_id": 0 } }
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(userInfo{})
		return
	}

	scope := jurisdiction.Resolve(user.UserProfile)
	_ = json.NewEncoder(w).Encode(userInfo{
		IsAuthenticated: true,
		UserID:          user.UserID,
		Username:        user.Username,
		Name:            user.DisplayName(),
		UserType:        user.UserTypeID.Name(),
		Scope:           &scope,
	})
}
