package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video represents an uploaded video together with its vote ledger.
type Video struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	VideoLink   string               `bson:"videoLink" json:"videoLink"`
	Thumbnail   string               `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Views       int64                `bson:"views" json:"views"`
	Likes       int64                `bson:"likes" json:"likes"`
	Dislikes    int64                `bson:"dislikes" json:"dislikes"`
	LikedBy     []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	DislikedBy  []primitive.ObjectID `bson:"dislikedBy" json:"dislikedBy"`
	UploadDate  time.Time            `bson:"uploadDate" json:"uploadDate"`
	Category    string               `bson:"category,omitempty" json:"category,omitempty"`
	Channel     primitive.ObjectID   `bson:"channel" json:"channel"`
	Comments    []primitive.ObjectID `bson:"comments" json:"comments"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// NewVideo returns a video with an empty ledger.
func NewVideo(channel primitive.ObjectID, title, videoLink string) Video {
	now := time.Now()
	return Video{
		ID:         primitive.NewObjectID(),
		Title:      title,
		VideoLink:  videoLink,
		LikedBy:    []primitive.ObjectID{},
		DislikedBy: []primitive.ObjectID{},
		Comments:   []primitive.ObjectID{},
		Channel:    channel,
		UploadDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
