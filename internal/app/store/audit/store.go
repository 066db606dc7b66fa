// Package audit persists security and administration events in MongoDB.
package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Event types
const (
	EventLoginFailed      = "login_failed"
	EventLoginRateLimited = "login_rate_limited"
	EventLogout           = "logout"
	EventUserCreated      = "user_created"
	EventUserCreateFailed = "user_create_failed"
)

// Event is one audit record. UserID is the account acted on and ActorID
// the account that acted; both are backend user ids, 0 when unknown.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	UserID   int64  `bson:"user_id,omitempty"`
	Username string `bson:"username,omitempty"`
	ActorID  int64  `bson:"actor_id,omitempty"`

	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter narrows Query. Zero fields match everything; Since and
// Until bound the timestamp as a half-open range.
type QueryFilter struct {
	Category  string
	EventType string
	ActorID   int64
	Username  string
	Since     time.Time
	Until     time.Time
	Limit     int64
}

func (f QueryFilter) toBSON() bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.EventType != "" {
		q["event_type"] = f.EventType
	}
	if f.ActorID != 0 {
		q["actor_id"] = f.ActorID
	}
	if f.Username != "" {
		q["username"] = f.Username
	}
	ts := bson.M{}
	if !f.Since.IsZero() {
		ts["$gte"] = f.Since.UTC()
	}
	if !f.Until.IsZero() {
		ts["$lt"] = f.Until.UTC()
	}
	if len(ts) > 0 {
		q["timestamp"] = ts
	}
	return q
}

// DefaultLimit caps Query when the filter has no limit.
const DefaultLimit = 100

// Collection holds the events.
const Collection = "audit_events"

// Store reads and writes audit events.
type Store struct {
	c *mongo.Collection
}

// New returns a Store over db's audit collection.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert %s event: %w", event.EventType, err)
	}
	return nil
}

// Query returns matching events, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	events := []Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode audit events: %w", err)
	}
	return events, nil
}

// Recent returns the latest events of one category, newest first.
func (s *Store) Recent(ctx context.Context, category string, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Category: category, Limit: limit})
}
