// Package accounts wraps the backend's authentication and user
// administration endpoints. Identity lives entirely in the backend; this
// package never sees a password hash.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/timeouts"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.uber.org/zap"
)

// Backend endpoints.
const (
	EndpointLogin      = "auth/login"
	EndpointLogout     = "auth/logout"
	EndpointCreateUser = "user/createUser"
)

// ErrMissingCredentials is returned before any call when the username or
// password is blank.
var ErrMissingCredentials = errors.New("username and password are required")

// ErrInvalidProfile means the backend accepted the login but returned a
// profile without a user id.
var ErrInvalidProfile = errors.New("backend returned an unusable profile")

// Poster is the slice of the backend client the account calls need.
type Poster interface {
	Post(ctx context.Context, endpoint string, reqBody any, out any) error
}

// Client wraps the account endpoints.
type Client struct {
	backend Poster
	log     *zap.Logger
}

// New returns an accounts client.
func New(backend Poster, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{backend: backend, log: logger}
}

// Login verifies the credentials with the backend and returns the profile.
// A wrong password comes back as *backend.RejectionError carrying the
// backend's message.
func (c *Client) Login(ctx context.Context, username, password string) (models.UserProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.UserProfile{}, ErrMissingCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var p models.UserProfile
	body := map[string]string{"username": username, "password": password}
	if err := c.backend.Post(ctx, EndpointLogin, body, &p); err != nil {
		return models.UserProfile{}, fmt.Errorf("login: %w", err)
	}
	if p.UserID <= 0 {
		return models.UserProfile{}, ErrInvalidProfile
	}
	return p, nil
}

// Logout tells the backend the user left. Failures are logged and
// ignored; the local session is cleared either way.
func (c *Client) Logout(ctx context.Context, userID int64) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	if err := c.backend.Post(ctx, EndpointLogout, map[string]int64{"user_id": userID}, nil); err != nil {
		c.log.Warn("backend logout failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

type createUserBody struct {
	Username      string          `json:"Username"`
	Password      string          `json:"Password"`
	FullName      string          `json:"FullName"`
	UserTypeID    models.UserType `json:"UserTypeID"`
	StateID       int64           `json:"StateID"`
	DistrictID    int64           `json:"DistrictID"`
	SubDivisionID int64           `json:"SubDivisionID"`
	BlockID       int64           `json:"BlockID"`
	GPID          int64           `json:"GPID"`
	CreatedBy     int64           `json:"CreatedBy"`
}

// CreateUser registers a new dashboard account. Unset jurisdiction levels
// are sent as 0.
func (c *Client) CreateUser(ctx context.Context, u models.NewUser) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	body := createUserBody{
		Username:      strings.TrimSpace(u.Username),
		Password:      u.Password,
		FullName:      strings.TrimSpace(u.FullName),
		UserTypeID:    u.UserTypeID,
		StateID:       int64(u.StateID),
		DistrictID:    int64(u.DistrictID),
		SubDivisionID: int64(u.SubDivisionID),
		BlockID:       int64(u.BlockID),
		GPID:          int64(u.GPID),
		CreatedBy:     u.CreatedBy,
	}
	if err := c.backend.Post(ctx, EndpointCreateUser, body, nil); err != nil {
		return fmt.Errorf("create user %q: %w", body.Username, err)
	}
	c.log.Info("user created",
		zap.String("username", body.Username),
		zap.String("user_type", u.UserTypeID.Name()),
		zap.Int64("created_by", u.CreatedBy))
	return nil
}
