// internal/domain/models/profile.go
package models

// UserType is the backend's numeric account type.
type UserType int

const (
	UserTypeStateAdmin  UserType = 1
	UserTypeDistrict    UserType = 2
	UserTypeSubDivision UserType = 3
	UserTypeBlock       UserType = 4
	UserTypeGP          UserType = 5
)

// Name returns a short role key for templates and logging.
func (t UserType) Name() string {
	switch t {
	case UserTypeStateAdmin:
		return "state_admin"
	case UserTypeDistrict:
		return "district"
	case UserTypeSubDivision:
		return "subdivision"
	case UserTypeBlock:
		return "block"
	case UserTypeGP:
		return "gp"
	}
	return "unknown"
}

// Label is the display name shown in the user console.
func (t UserType) Label() string {
	switch t {
	case UserTypeStateAdmin:
		return "State Admin"
	case UserTypeDistrict:
		return "District User"
	case UserTypeSubDivision:
		return "Sub-Division User"
	case UserTypeBlock:
		return "Block User"
	case UserTypeGP:
		return "GP User"
	}
	return "Unknown"
}

// Level is the deepest location level an account of this type is bound
// to, or 0 for unknown types.
func (t UserType) Level() Level {
	switch t {
	case UserTypeStateAdmin:
		return LevelState
	case UserTypeDistrict:
		return LevelDistrict
	case UserTypeSubDivision:
		return LevelSubDivision
	case UserTypeBlock:
		return LevelBlock
	case UserTypeGP:
		return LevelGramPanchayat
	}
	return 0
}

// AssignableUserTypes are the account types the user console creates.
var AssignableUserTypes = []UserType{UserTypeDistrict, UserTypeSubDivision, UserTypeBlock, UserTypeGP}

// UserProfile is the account record returned by the backend on login.
// JSON keys follow the backend.
type UserProfile struct {
	UserID        int64    `json:"UserID"`
	Username      string   `json:"Username"`
	FullName      string   `json:"FullName"`
	UserTypeID    UserType `json:"UserTypeID"`
	StateID       int64    `json:"StateID"`
	DistrictID    int64    `json:"DistrictID"`
	SubDivisionID int64    `json:"SubDivisionID"`
	BlockID       int64    `json:"BlockID"`
	GPID          int64    `json:"GPID"`
}

// DisplayName prefers the full name and falls back to the username.
func (p UserProfile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}

// NewUser is the create-user request from the user-management console.
type NewUser struct {
	Username      string
	Password      string
	FullName      string
	UserTypeID    UserType
	StateID       LocationID
	DistrictID    LocationID
	SubDivisionID LocationID
	BlockID       LocationID
	GPID          LocationID
	CreatedBy     int64
}
