package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Channel is a user's publishing space; a user owns at most one.
type Channel struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	ChannelName   string               `bson:"channelName" json:"channelName"`
	Description   string               `bson:"description,omitempty" json:"description,omitempty"`
	ChannelPic    string               `bson:"channelPic,omitempty" json:"channelPic,omitempty"`
	ChannelBanner string               `bson:"channelBanner,omitempty" json:"channelBanner,omitempty"`
	Owner         primitive.ObjectID   `bson:"owner" json:"owner"`
	Subscribers   int64                `bson:"subscribers" json:"subscribers"`
	Videos        []primitive.ObjectID `bson:"videos" json:"videos"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}
