package repository

import (
	"context"
	"errors"
	"time"

	"youtube-be/models"
	"youtube-be/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoVoteStore persists vote ledgers and liked-video indexes. Saves only
// $set the vote fields so concurrent edits to titles or profiles survive.
type MongoVoteStore struct {
	videos *mongo.Collection
	users  *mongo.Collection
}

func NewMongoVoteStore(videos, users *mongo.Collection) *MongoVoteStore {
	return &MongoVoteStore{videos: videos, users: users}
}

func (s *MongoVoteStore) LoadVideo(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	var video models.Video
	if err := s.videos.FindOne(ctx, bson.M{"_id": id}).Decode(&video); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (s *MongoVoteStore) SaveVideo(ctx context.Context, v *models.Video) error {
	update := bson.M{"$set": bson.M{
		"likes":      v.Likes,
		"dislikes":   v.Dislikes,
		"likedBy":    nonNil(v.LikedBy),
		"dislikedBy": nonNil(v.DislikedBy),
		"updatedAt":  time.Now(),
	}}
	return updateExisting(ctx, s.videos, v.ID, update)
}

func (s *MongoVoteStore) LoadUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoVoteStore) SaveUser(ctx context.Context, u *models.User) error {
	update := bson.M{"$set": bson.M{
		"likedVideos": nonNil(u.LikedVideos),
		"updatedAt":   time.Now(),
	}}
	return updateExisting(ctx, s.users, u.ID, update)
}

// PullLikedVideo removes a deleted video from every user's liked list.
func (s *MongoVoteStore) PullLikedVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	res, err := s.users.UpdateMany(ctx,
		bson.M{"likedVideos": videoID},
		bson.M{"$pull": bson.M{"likedVideos": videoID}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// LikedVideos returns the videos in a user's liked list, in list order.
func (s *MongoVoteStore) LikedVideos(ctx context.Context, userID primitive.ObjectID) ([]models.Video, error) {
	user, err := s.LoadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.LikedVideos) == 0 {
		return []models.Video{}, nil
	}

	cursor, err := s.videos.Find(ctx, bson.M{"_id": bson.M{"$in": user.LikedVideos}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []models.Video
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Video, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	videos := make([]models.Video, 0, len(found))
	for _, id := range user.LikedVideos {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

func updateExisting(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, update bson.M) error {
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func nonNil(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}
