// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"net/http"
	"time"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/ratelimit"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProviderBackend marks sign-ins verified by the survey backend.
const ProviderBackend = "backend"

// Collection holds the sign-in history.
const Collection = "login_records"

// DefaultRecentLimit caps Recent when the caller passes no limit.
const DefaultRecentLimit = 50

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts a LoginRecord. If CreatedAt is zero, it's set to time.Now().UTC().
func (s *Store) Create(ctx context.Context, rec models.LoginRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}

// CreateFrom records a sign-in by p, taking the client IP from the request.
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, p models.UserProfile, provider string) error {
	return s.Create(ctx, models.LoginRecord{
		UserID:     p.UserID,
		Username:   p.Username,
		UserTypeID: p.UserTypeID,
		CreatedAt:  time.Now().UTC(),
		IP:         ratelimit.ClientIP(r),
		Provider:   provider,
	})
}

// Recent returns the latest sign-ins, newest first.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.LoginRecord, error) {
	return s.find(ctx, bson.M{}, limit)
}

// RecentForUser returns the latest sign-ins of one user, newest first.
func (s *Store) RecentForUser(ctx context.Context, userID int64, limit int64) ([]models.LoginRecord, error) {
	return s.find(ctx, bson.M{"user_id": userID}, limit)
}

func (s *Store) find(ctx context.Context, filter bson.M, limit int64) ([]models.LoginRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.LoginRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
