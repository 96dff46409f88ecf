package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const (
	collectionStudents      = "students"
	collectionCompanies     = "companies"
	collectionTPOs          = "tpos"
	collectionOpportunities = "opportunities"
	collectionApplications  = "applications"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the indexes every repository relies on. Email is
// unique per role collection only; an application is unique per
// (student, opportunity).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	uniqueEmail := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, name := range []string{collectionStudents, collectionCompanies, collectionTPOs} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, uniqueEmail); err != nil {
			return fmt.Errorf("create %s email index: %w", name, err)
		}
	}

	opportunityIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection(collectionOpportunities).Indexes().CreateMany(ctx, opportunityIndexes); err != nil {
		return fmt.Errorf("create opportunity indexes: %w", err)
	}

	applicationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "opportunity_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_student_opportunity"),
		},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection(collectionApplications).Indexes().CreateMany(ctx, applicationIndexes); err != nil {
		return fmt.Errorf("create application indexes: %w", err)
	}
	return nil
}

// objectID parses a hex id. A malformed id can never match a document, so
// callers report it as not found.
func objectID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// objectIDs parses every valid hex id and silently skips the rest.
func objectIDs(hexes []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if id, ok := objectID(h); ok {
			out = append(out, id)
		}
	}
	return out
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}
