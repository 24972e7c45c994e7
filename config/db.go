package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection    = "users"
	ChannelsCollection = "channels"
	VideosCollection   = "videos"
	CommentsCollection = "comments"
)

var (
	db     *mongo.Database
	client *mongo.Client
)

// ConnectDB opens the MongoDB connection and selects the configured database.
func ConnectDB(cfg *Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Connected to MongoDB!")

	client = c
	db = client.Database(cfg.MongoDatabase)
	return db, nil
}

// GetCollection returns a MongoDB collection by name. ConnectDB must have
// been called first.
func GetCollection(name string) *mongo.Collection {
	if db == nil {
		log.Fatal("GetCollection called before ConnectDB")
	}
	return db.Collection(name)
}

// DisconnectDB closes the client opened by ConnectDB.
func DisconnectDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
