package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateLoginRecord inserts a login record for user at the given time.
func (f *Fixtures) CreateLoginRecord(ctx context.Context, user models.UserProfile, at time.Time) models.LoginRecord {
	f.t.Helper()

	rec := models.LoginRecord{
		UserID:     user.UserID,
		Username:   user.Username,
		UserTypeID: user.UserTypeID,
		CreatedAt:  at.UTC(),
		IP:         "127.0.0.1",
		Provider:   "backend",
	}
	if _, err := f.db.Collection("login_records").InsertOne(ctx, rec); err != nil {
		f.t.Fatalf("failed to create login record: %v", err)
	}
	return rec
}
