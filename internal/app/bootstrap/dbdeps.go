// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/backend"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. The Mongo
// fields are nil when no mongo_uri is configured.
type DBDeps struct {
	Backend *backend.Client

	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}
