package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	Text      string             `bson:"text" json:"text"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CommentView is a comment with its author resolved, as served to clients.
type CommentView struct {
	ID        primitive.ObjectID `json:"_id"`
	User      *UserSummary       `json:"user"`
	Video     primitive.ObjectID `json:"video"`
	Text      string             `json:"text"`
	Timestamp time.Time          `json:"timestamp"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
