package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the handlers query by: a unique email
// per user, one channel per owner, and the video/channel foreign keys.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "likedVideos", Value: 1}}},
		},
		"channels": {
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
		"videos": {
			{Keys: bson.D{{Key: "channel", Value: 1}}},
		},
		"comments": {
			{Keys: bson.D{{Key: "video", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
