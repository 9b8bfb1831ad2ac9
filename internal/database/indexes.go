package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes back the one-account-per-email and one-profile-per-user rules.
// Called on startup from main after Mongo has connected.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("idx_email_unique").SetUnique(true),
			},
		},
		ProfilesCollection: {
			{
				Keys:    bson.D{{Key: "user", Value: 1}},
				Options: options.Index().SetName("idx_user_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}},
				Options: options.Index().SetName("idx_date"),
			},
		},
		PostsCollection: {
			{
				Keys:    bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}},
				Options: options.Index().SetName("idx_date"),
			},
			{
				Keys:    bson.D{{Key: "user", Value: 1}},
				Options: options.Index().SetName("idx_user"),
			},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}
