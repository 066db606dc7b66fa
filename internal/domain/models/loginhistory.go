// internal/domain/models/loginhistory.go
package models

import "time"

// LoginRecord captures a single successful dashboard login.
// CreatedAt is indexed for recent-activity views.
type LoginRecord struct {
	UserID     int64     `bson:"user_id"`
	Username   string    `bson:"username"`
	UserTypeID UserType  `bson:"user_type_id"`
	CreatedAt  time.Time `bson:"created_at"`
	IP         string    `bson:"ip"`
	Provider   string    `bson:"provider"`
}
