package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username           string               `bson:"username" json:"username"`
	Email              string               `bson:"email" json:"email"`
	Password           string               `bson:"password,omitempty" json:"-"`
	Avatar             string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	LikedVideos        []primitive.ObjectID `bson:"likedVideos" json:"likedVideos"`
	SubscribedChannels []primitive.ObjectID `bson:"subscribedChannels" json:"subscribedChannels"`
	Channel            *primitive.ObjectID  `bson:"channel" json:"channel"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// ChannelID returns the hex id of the user's channel, or nil when the user
// has not created one.
func (u *User) ChannelID() *string {
	if u.Channel == nil || u.Channel.IsZero() {
		return nil
	}
	id := u.Channel.Hex()
	return &id
}

// UserSummary is the public part of a user embedded in comments.
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}
